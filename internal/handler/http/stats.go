package http

import (
	"Pulse-Backend/internal/stats"
	"net/http"

	"go.uber.org/zap"
)

// StatsHandler handles the aggregate statistics endpoints.
type StatsHandler struct {
	stats *stats.Service
	log   *zap.Logger
}

// NewStatsHandler creates the statistics handler.
func NewStatsHandler(statistics *stats.Service, log *zap.Logger) *StatsHandler {
	return &StatsHandler{stats: statistics, log: log}
}

// VisitorStats returns the visitor-level summary.
//
//	@Summary		Visitor statistics
//	@Description	Totals, new/returning split, blog engagement and recent visitors
//	@Tags			Statistics
//	@Produce		json
//	@Success		200	{object}	stats.VisitorStats	"Visitor statistics"
//	@Router			/api/stats/visitors [get]
func (h *StatsHandler) VisitorStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.stats.VisitorStats(r.Context())
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// PageviewStats returns the pageview-log summary.
//
//	@Summary		Pageview statistics
//	@Description	Totals, daily and weekly windows, unique URLs and top pages
//	@Tags			Statistics
//	@Produce		json
//	@Success		200	{object}	stats.PageviewStats	"Pageview statistics"
//	@Router			/api/stats/pageviews [get]
func (h *StatsHandler) PageviewStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.stats.PageviewStats(r.Context())
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// BlogViewGlobalStats returns the session-deduplicated reach summary.
//
//	@Summary		Blog view statistics
//	@Description	Session-deduplicated view totals and top posts
//	@Tags			Statistics
//	@Produce		json
//	@Success		200	{object}	stats.BlogViewGlobalStats	"Blog view statistics"
//	@Router			/api/stats/blog-views [get]
func (h *StatsHandler) BlogViewGlobalStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := h.stats.BlogViewGlobalStats(r.Context())
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
