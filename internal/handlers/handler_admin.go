package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/backoffice_ledger/internal/core/ports/services"
	"github.com/SscSPs/backoffice_ledger/internal/dto"
	"github.com/SscSPs/backoffice_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler exposes the maintenance operations also available through ledgerctl.
type adminHandler struct {
	balanceService    portssvc.BalanceSvc
	prepaymentService portssvc.PrepaymentReconcilerSvc
}

func registerAdminRoutes(rg *gin.RouterGroup, bs portssvc.BalanceSvc, ps portssvc.PrepaymentReconcilerSvc) {
	h := &adminHandler{balanceService: bs, prepaymentService: ps}

	admin := rg.Group("/admin")
	{
		admin.POST("/balances/recompute-all", h.recomputeAll)
		admin.POST("/prepayments/backfill-postings", h.backfillPostings)
	}
}

// recomputeAll godoc
// @Summary Recompute every account balance
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.RecomputeAllResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A recompute is already running"
// @Failure 500 {object} map[string]string "Failed to recompute balances"
// @Security BearerAuth
// @Router /admin/balances/recompute-all [post]
func (h *adminHandler) recomputeAll(c *gin.Context) {
	n, err := h.balanceService.RecomputeAll(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to recompute balances")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Balances recomputed", slog.Int("accounts", n))
	c.JSON(http.StatusOK, dto.RecomputeAllResponse{Recomputed: n})
}

// backfillPostings godoc
// @Summary Post missing prepayment entries
// @Description Posts the ledger entry of every prepayment recorded under the best_effort policy without one
// @Tags admin
// @Produce  json
// @Success 200 {object} dto.BackfillPostingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "A backfill is already running"
// @Failure 500 {object} map[string]string "Failed to backfill postings"
// @Security BearerAuth
// @Router /admin/prepayments/backfill-postings [post]
func (h *adminHandler) backfillPostings(c *gin.Context) {
	posted, failed, err := h.prepaymentService.BackfillPrepaymentPostings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to backfill postings")
		return
	}
	c.JSON(http.StatusOK, dto.BackfillPostingsResponse{Posted: posted, Failed: failed})
}
