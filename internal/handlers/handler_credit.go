package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type creditHandler struct {
	creditService portssvc.CreditSvc
}

func registerCreditRoutes(rg *gin.RouterGroup, cs portssvc.CreditSvc) {
	h := &creditHandler{creditService: cs}
	rg.GET("/customers/:id/credit", h.evaluateCredit)
}

// evaluateCredit godoc
// @Summary Evaluate a customer's credit
// @Description Projects the outstanding balance net of unused prepayments plus an optional additional charge
// @Tags customers
// @Produce  json
// @Param   id path int true "Customer ID"
// @Param   additional query string false "Prospective charge" default(0)
// @Success 200 {object} dto.CreditEvaluationResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to evaluate credit"
// @Security BearerAuth
// @Router /customers/{id}/credit [get]
func (h *creditHandler) evaluateCredit(c *gin.Context) {
	customerID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var params dto.EvaluateCreditParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	additional := decimal.Zero
	if params.Additional != "" {
		var err error
		additional, err = decimal.NewFromString(params.Additional)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "additional must be a decimal amount"})
			return
		}
	}

	eval, err := h.creditService.Evaluate(c.Request.Context(), customerID, additional)
	if err != nil {
		respondError(c, err, "Failed to evaluate credit")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditEvaluationResponse(eval))
}
