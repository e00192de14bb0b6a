package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

type payrollHandler struct {
	payrollService portssvc.PayrollSvc
}

func registerPayrollRoutes(rg *gin.RouterGroup, ps portssvc.PayrollSvc) {
	h := &payrollHandler{payrollService: ps}
	rg.POST("/payroll-runs", h.postPayrollRun)
}

// postPayrollRun godoc
// @Summary Post a payroll run
// @Description Posts Dr salaries expense against net pay and each statutory payable
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   run body dto.PayrollRunRequest true "Payroll totals"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or totals do not balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Posting period closed"
// @Failure 500 {object} map[string]string "Failed to post payroll run"
// @Security BearerAuth
// @Router /payroll-runs [post]
func (h *payrollHandler) postPayrollRun(c *gin.Context) {
	var req dto.PayrollRunRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.payrollService.PostPayrollRun(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to post payroll run")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
