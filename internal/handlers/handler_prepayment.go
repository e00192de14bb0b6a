package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// prepaymentHandler handles HTTP requests for customer prepayments.
type prepaymentHandler struct {
	prepaymentService portssvc.PrepaymentSvcFacade
}

func newPrepaymentHandler(ps portssvc.PrepaymentSvcFacade) *prepaymentHandler {
	return &prepaymentHandler{prepaymentService: ps}
}

// registerPrepaymentRoutes registers routes related to prepayments and their applications.
func registerPrepaymentRoutes(rg *gin.RouterGroup, ps portssvc.PrepaymentSvcFacade) {
	h := newPrepaymentHandler(ps)

	prepayments := rg.Group("/prepayments")
	{
		prepayments.POST("", h.createPrepayment)
		prepayments.POST("/reconcile", h.reconcilePrepayments)
		prepayments.GET("/:id", h.getPrepayment)
		prepayments.POST("/:id/applications", h.applyPrepayment)
	}
	rg.POST("/prepayment-applications/:id/reverse", h.reverseApplication)
	rg.GET("/customers/:id/wallet", h.getWallet)
}

// createPrepayment godoc
// @Summary Record a customer prepayment
// @Description Stores the advance and posts Dr cash/bank, Cr the customer's prepayment account
// @Tags prepayments
// @Accept  json
// @Produce  json
// @Param   prepayment body dto.CreatePrepaymentRequest true "Prepayment details"
// @Success 201 {object} dto.PrepaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to record prepayment"
// @Security BearerAuth
// @Router /prepayments [post]
func (h *prepaymentHandler) createPrepayment(c *gin.Context) {
	var req dto.CreatePrepaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to record prepayment", slog.Int64("customer_id", req.CustomerID), slog.String("amount", req.Amount.String()))

	prepayment, err := h.prepaymentService.CreatePrepayment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to record prepayment")
		return
	}

	logger.Info("Prepayment recorded", slog.String("number", prepayment.Number))
	c.JSON(http.StatusCreated, dto.ToPrepaymentResponse(prepayment))
}

// getPrepayment godoc
// @Summary Get a prepayment
// @Description Reconciles the customer's wallet, then returns the prepayment with its applications
// @Tags prepayments
// @Produce  json
// @Param   id path string true "Prepayment ID"
// @Success 200 {object} dto.PrepaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Prepayment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve prepayment"
// @Security BearerAuth
// @Router /prepayments/{id} [get]
func (h *prepaymentHandler) getPrepayment(c *gin.Context) {
	prepayment, err := h.prepaymentService.GetPrepayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve prepayment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrepaymentResponse(prepayment))
}

// applyPrepayment godoc
// @Summary Apply a prepayment to an invoice
// @Tags prepayments
// @Accept  json
// @Produce  json
// @Param   id path string true "Prepayment ID"
// @Param   application body dto.ApplyPrepaymentRequest true "Application details"
// @Success 201 {object} dto.PrepaymentApplicationResponse
// @Failure 400 {object} map[string]string "Invalid input, customer mismatch or amount exceeds the invoice"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Prepayment or invoice not found"
// @Failure 409 {object} map[string]string "Insufficient balance or invoice already settled"
// @Failure 500 {object} map[string]string "Failed to apply prepayment"
// @Security BearerAuth
// @Router /prepayments/{id}/applications [post]
func (h *prepaymentHandler) applyPrepayment(c *gin.Context) {
	var req dto.ApplyPrepaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	prepaymentID := c.Param("id")
	app, err := h.prepaymentService.ApplyPrepayment(c.Request.Context(), prepaymentID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to apply prepayment")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Prepayment applied",
		slog.String("prepayment_id", prepaymentID),
		slog.Int64("invoice_id", req.InvoiceID),
		slog.String("application_id", app.ApplicationID))
	c.JSON(http.StatusCreated, dto.ToPrepaymentApplicationResponse(app))
}

// reverseApplication godoc
// @Summary Reverse a prepayment application
// @Description Appends a compensating negative application; the original is never edited
// @Tags prepayments
// @Produce  json
// @Param   id path string true "Application ID"
// @Success 201 {object} dto.PrepaymentApplicationResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Application not found"
// @Failure 409 {object} map[string]string "Application already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse application"
// @Security BearerAuth
// @Router /prepayment-applications/{id}/reverse [post]
func (h *prepaymentHandler) reverseApplication(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	app, err := h.prepaymentService.ReverseApplication(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err, "Failed to reverse application")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPrepaymentApplicationResponse(app))
}

// reconcilePrepayments godoc
// @Summary Reconcile prepayment usage
// @Description Recomputes used amounts from the application log for one customer, or all when none is given
// @Tags prepayments
// @Accept  json
// @Produce  json
// @Param   request body dto.ReconcilePrepaymentsRequest false "Optional customer scope"
// @Success 200 {object} dto.ReconcilePrepaymentsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Reconciliation already running"
// @Failure 500 {object} map[string]string "Failed to reconcile prepayments"
// @Security BearerAuth
// @Router /prepayments/reconcile [post]
func (h *prepaymentHandler) reconcilePrepayments(c *gin.Context) {
	var req dto.ReconcilePrepaymentsRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	corrected, err := h.prepaymentService.ReconcilePrepayments(c.Request.Context(), req.CustomerID)
	if err != nil {
		respondError(c, err, "Failed to reconcile prepayments")
		return
	}
	c.JSON(http.StatusOK, dto.ReconcilePrepaymentsResponse{Corrected: corrected})
}

// getWallet godoc
// @Summary Get a customer's prepayment wallet
// @Description Reconciles, then returns every prepayment of the customer with the unused balance
// @Tags prepayments
// @Produce  json
// @Param   id path int true "Customer ID"
// @Success 200 {object} dto.WalletResponse
// @Failure 400 {object} map[string]string "Invalid customer ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve wallet"
// @Security BearerAuth
// @Router /customers/{id}/wallet [get]
func (h *prepaymentHandler) getWallet(c *gin.Context) {
	customerID, ok := int64Param(c, "id")
	if !ok {
		return
	}

	wallet, err := h.prepaymentService.GetWallet(c.Request.Context(), customerID)
	if err != nil {
		respondError(c, err, "Failed to retrieve wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}
