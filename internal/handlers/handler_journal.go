package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for the journal engine.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, js portssvc.JournalSvcFacade) {
	h := newJournalHandler(js)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.postEntry)
		journals.GET("", h.listEntries)
		journals.GET("/entry", h.getEntry)
		journals.POST("/reverse", h.reverseEntry)
	}
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Validates, numbers and stores a balanced entry. Positive amounts debit, negative amounts credit.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   entry body dto.PostJournalRequest true "Entry draft"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Unbalanced entry, more than 2 decimal places or invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Unknown or inactive account"
// @Failure 409 {object} map[string]string "Posting period closed or number allocation failed"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Security BearerAuth
// @Router /journals [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	var req dto.PostJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to post journal entry", slog.Int("lines", len(req.Lines)))

	entry, err := h.journalService.PostEntry(c.Request.Context(), req.ToEntryDraft(), userID)
	if err != nil {
		respondError(c, err, "Failed to post entry")
		return
	}

	logger.Info("Journal entry posted", slog.String("number", entry.Number))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry by number
// @Tags journals
// @Produce  json
// @Param   number query string true "Entry number, e.g. JV/2024/0001"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Number missing"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /journals/entry [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	number := c.Query("number")
	if number == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "number query parameter required"})
		return
	}

	entry, err := h.journalService.GetEntryByNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err, "Failed to retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Newest first, paginated with an opaque token
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /journals [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// reverseEntry godoc
// @Summary Reverse a journal entry
// @Description Posts the mirror image of an entry. An entry can be reversed once.
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   request body dto.ReverseJournalRequest true "Entry to reverse"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse entry"
// @Security BearerAuth
// @Router /journals/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseJournalRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.journalService.ReverseEntry(c.Request.Context(), req.Number, userID)
	if err != nil {
		respondError(c, err, "Failed to reverse entry")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Journal entry reversed",
		slog.String("original", req.Number), slog.String("reversal", entry.Number))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}
