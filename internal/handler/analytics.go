package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stakebook/internal/analytics"
	"stakebook/internal/repository"
	"stakebook/internal/service"
)

type AnalyticsHandler struct {
	Reports *service.ReportService
	Repo    repository.Repository
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/analytics")
	g.GET("/overview", h.overview)
	g.GET("/snapshots", h.snapshots)
}

// overview returns the complete metric table for one
// (bankroll, game, range) selection. Unknown or stale selector values fall
// back to their widest scope; an unresolved bankroll id yields the zeroed
// table, not an error.
func (h *AnalyticsHandler) overview(c *gin.Context) {
	if h.Reports == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	sel := service.ParseBankrollSelection(c.Query("bankroll"))
	game := analytics.ParseGameScope(c.Query("game"))
	rng := analytics.ParseTimeRange(c.Query("range"))

	row, err := h.Reports.Overview(c.Request.Context(), sel, game, rng, time.Now().UTC())
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, row, nil)
}

func (h *AnalyticsHandler) snapshots(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListSnapshotsParams{
		BankrollID: uint64QueryPtr(c, "bankroll_id"),
		Since:      timeQueryPtr(c, "since"),
		Limit:      intQuery(c, "limit", 90),
		Offset:     intQuery(c, "offset", 0),
	}
	items, err := h.Repo.ListBankrollSnapshots(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}
