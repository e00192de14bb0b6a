package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
	balanceService portssvc.BalanceSvc
	journalService portssvc.JournalReaderSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, bs portssvc.BalanceSvc, js portssvc.JournalReaderSvc) *accountHandler {
	return &accountHandler{
		accountService: as,
		balanceService: bs,
		journalService: js,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, bs portssvc.BalanceSvc, js portssvc.JournalReaderSvc) {
	h := newAccountHandler(as, bs, js)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:code", h.getAccount)
		accounts.DELETE("/:code", h.deactivateAccount)
		accounts.POST("/:code/recompute", h.recomputeBalance)
		accounts.GET("/:code/lines", h.listAccountLines)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart. Its current balance starts at the opening balance.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account code already exists"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("category", string(req.Category)))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by code
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{code} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.accountService.GetAccountByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of the chart ordered by code
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var params dto.ListAccountsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Accounts are never deleted; an inactive account rejects new postings
// @Tags accounts
// @Param   code path string true "Account code"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "System accounts cannot be deactivated"
// @Failure 500 {object} map[string]string "Failed to deactivate account"
// @Security BearerAuth
// @Router /accounts/{code} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	code := c.Param("code")
	if err := h.accountService.DeactivateAccount(c.Request.Context(), code, userID); err != nil {
		respondError(c, err, "Failed to deactivate account")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Account deactivated", slog.String("code", code))
	c.Status(http.StatusNoContent)
}

// recomputeBalance godoc
// @Summary Recompute an account balance
// @Description Rebuilds the current balance from the opening balance and every posted line
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Success 200 {object} dto.AccountBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to recompute balance"
// @Security BearerAuth
// @Router /accounts/{code}/recompute [post]
func (h *accountHandler) recomputeBalance(c *gin.Context) {
	account, err := h.balanceService.RecomputeByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to recompute balance")
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID: account.AccountID,
		Code:      account.Code,
		Balance:   account.CurrentBalance,
	})
}

// listAccountLines godoc
// @Summary List lines posted to an account
// @Description Newest first, paginated with an opaque token
// @Tags accounts
// @Produce  json
// @Param   code path string true "Account code"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLinesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to list lines"
// @Security BearerAuth
// @Router /accounts/{code}/lines [get]
func (h *accountHandler) listAccountLines(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListLinesByAccount(c.Request.Context(), c.Param("code"), params)
	if err != nil {
		respondError(c, err, "Failed to list lines")
		return
	}
	c.JSON(http.StatusOK, resp)
}
