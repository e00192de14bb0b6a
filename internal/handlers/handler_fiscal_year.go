package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalYearHandler handles HTTP requests for accounting periods.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvc
}

func newFiscalYearHandler(fs portssvc.FiscalYearSvc) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fs}
}

// registerFiscalYearRoutes registers routes related to fiscal years.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fs portssvc.FiscalYearSvc) {
	h := newFiscalYearHandler(fs)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/current", h.getCurrentFiscalYear)
		years.PUT("/:id", h.editFiscalYear)
		years.POST("/:id/set-current", h.setCurrentFiscalYear)
		years.POST("/:id/close", h.closeFiscalYear)
	}
}

// createFiscalYear godoc
// @Summary Create a fiscal year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   year body dto.CreateFiscalYearRequest true "Fiscal year range"
// @Success 201 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Overlaps an existing year or code taken"
// @Failure 500 {object} map[string]string "Failed to create fiscal year"
// @Security BearerAuth
// @Router /fiscal-years [post]
func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	var req dto.CreateFiscalYearRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.Create(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create fiscal year")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year created", slog.String("code", fy.Code))
	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

// listFiscalYears godoc
// @Summary List fiscal years
// @Tags fiscal-years
// @Produce  json
// @Success 200 {array} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fiscal years"
// @Security BearerAuth
// @Router /fiscal-years [get]
func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	years, err := h.fiscalYearService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list fiscal years")
		return
	}
	c.JSON(http.StatusOK, dto.ToListFiscalYearResponse(years))
}

// getCurrentFiscalYear godoc
// @Summary Get the current fiscal year
// @Tags fiscal-years
// @Produce  json
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No current fiscal year"
// @Failure 500 {object} map[string]string "Failed to retrieve fiscal year"
// @Security BearerAuth
// @Router /fiscal-years/current [get]
func (h *fiscalYearHandler) getCurrentFiscalYear(c *gin.Context) {
	fy, err := h.fiscalYearService.GetCurrent(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// editFiscalYear godoc
// @Summary Edit an open fiscal year
// @Tags fiscal-years
// @Accept  json
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Param   year body dto.EditFiscalYearRequest true "New range"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year closed or range overlaps"
// @Failure 500 {object} map[string]string "Failed to edit fiscal year"
// @Security BearerAuth
// @Router /fiscal-years/{id} [put]
func (h *fiscalYearHandler) editFiscalYear(c *gin.Context) {
	var req dto.EditFiscalYearRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.Edit(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to edit fiscal year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// setCurrentFiscalYear godoc
// @Summary Make a fiscal year current
// @Description Exactly one year is current afterwards
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year is closed"
// @Failure 500 {object} map[string]string "Failed to set current fiscal year"
// @Security BearerAuth
// @Router /fiscal-years/{id}/set-current [post]
func (h *fiscalYearHandler) setCurrentFiscalYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.SetCurrent(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to set current fiscal year")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Current fiscal year changed", slog.String("code", fy.Code))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

// closeFiscalYear godoc
// @Summary Close a fiscal year
// @Description Closing is terminal; postings dated in the year are rejected afterwards
// @Tags fiscal-years
// @Produce  json
// @Param   id path string true "Fiscal year ID"
// @Success 200 {object} dto.FiscalYearResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fiscal year not found"
// @Failure 409 {object} map[string]string "Year already closed"
// @Failure 500 {object} map[string]string "Failed to close fiscal year"
// @Security BearerAuth
// @Router /fiscal-years/{id}/close [post]
func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fy, err := h.fiscalYearService.Close(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to close fiscal year")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Fiscal year closed", slog.String("code", fy.Code))
	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}
