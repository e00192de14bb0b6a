package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests for the invoicing flow's ledger side.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvc
}

func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvc) {
	h := &invoiceHandler{invoiceService: is}

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.POST("/:id/payments", h.recordPayment)
		invoices.POST("/:id/cancel", h.cancelInvoice)
	}
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Charges the customer and posts the sale. The credit check is advisory and never blocks.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.CreateInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, eval, err := h.invoiceService.CreateInvoice(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create invoice")
		return
	}

	resp := dto.CreateInvoiceResponse{Invoice: dto.ToInvoiceResponse(invoice)}
	if eval != nil {
		credit := dto.ToCreditEvaluationResponse(eval)
		resp.Credit = &credit
		if eval.ExceedsLimit {
			middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Invoice takes customer over credit limit",
				slog.Int64("customer_id", req.CustomerID),
				slog.String("projected", eval.ProjectedOutstanding.String()))
		}
	}
	c.JSON(http.StatusCreated, resp)
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid invoice ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondError(c, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// recordPayment godoc
// @Summary Record an invoice payment
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input or payment exceeds the balance"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice cancelled or settled"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /invoices/{id}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	invoiceID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	var req dto.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), invoiceID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to record payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// cancelInvoice godoc
// @Summary Cancel an invoice
// @Description Reverses the sale posting. Invoices with payments or applied prepayments cannot be cancelled.
// @Tags invoices
// @Produce  json
// @Param   id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid invoice ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice has settlements or is already cancelled"
// @Failure 500 {object} map[string]string "Failed to cancel invoice"
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	invoiceID, ok := int64Param(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), invoiceID, userID)
	if err != nil {
		respondError(c, err, "Failed to cancel invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
