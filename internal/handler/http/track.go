package http

import (
	"Pulse-Backend/internal/fingerprint"
	"Pulse-Backend/internal/service"
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// TrackHandler handles the tracking write endpoints.
type TrackHandler struct {
	tracker *service.Tracker
	log     *zap.Logger
}

// NewTrackHandler creates the tracking handler.
func NewTrackHandler(tracker *service.Tracker, log *zap.Logger) *TrackHandler {
	return &TrackHandler{tracker: tracker, log: log}
}

// TrackVisitorRequest is the visitor tracking request body. The fingerprint
// signals come from request headers, not the body.
type TrackVisitorRequest struct {
	VisitorID string `json:"visitor_id,omitempty"`
}

// PageviewRequest is the pageview tracking request body.
type PageviewRequest struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Referrer string `json:"referrer,omitempty"`
}

// BlogViewRequest is the blog view tracking request body.
type BlogViewRequest struct {
	Slug      string `json:"slug"`
	Title     string `json:"title,omitempty"`
	SessionID string `json:"session_id"`
	VisitorID string `json:"visitor_id,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
}

// TrackVisitor records a visit.
//
//	@Summary		Track a visitor
//	@Description	Upsert the visitor identified by the supplied id or a header-derived fingerprint
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TrackVisitorRequest	false	"Visitor tracking request"
//	@Success		200		{object}	domain.Visitor		"Tracked visitor record"
//	@Failure		400		{object}	map[string]string	"Invalid request data"
//	@Router			/api/track/visitor [post]
func (h *TrackHandler) TrackVisitor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TrackVisitorRequest
	if r.Body != nil {
		// An empty body is fine; the fingerprint signals carry the identity.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	visitor, err := h.tracker.TrackVisitor(r.Context(), service.TrackVisitorInput{
		VisitorID: req.VisitorID,
		Signals:   extractSignals(r),
		IPAddress: extractIPAddress(r),
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, visitor)
}

// RecordPageview records a pageview event.
//
//	@Summary		Record a pageview
//	@Description	Append a pageview event to the log
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			request	body		PageviewRequest		true	"Pageview event"
//	@Success		201		{object}	domain.Pageview		"Recorded pageview"
//	@Failure		400		{object}	map[string]string	"Invalid request data"
//	@Router			/api/track/pageview [post]
func (h *TrackHandler) RecordPageview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PageviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "invalid request body", http.StatusBadRequest)
		return
	}

	pv, err := h.tracker.RecordPageview(r.Context(), service.PageviewInput{
		URL:       req.URL,
		Title:     req.Title,
		Referrer:  req.Referrer,
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusCreated, pv)
}

// TrackBlogView records a blog view through both counting paths.
//
//	@Summary		Track a blog view
//	@Description	Record a blog view: upserts the visitor, bumps the engagement aggregate and writes the session dedup row
//	@Tags			Tracking
//	@Accept			json
//	@Produce		json
//	@Param			request	body		BlogViewRequest			true	"Blog view event"
//	@Success		200		{object}	service.BlogViewResult	"Tracking outcome"
//	@Failure		400		{object}	map[string]string		"Invalid request data"
//	@Router			/api/track/blog-view [post]
func (h *TrackHandler) TrackBlogView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BlogViewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.tracker.TrackBlogView(r.Context(), service.BlogViewInput{
		Slug:      req.Slug,
		Title:     req.Title,
		VisitorID: req.VisitorID,
		SessionID: req.SessionID,
		Signals:   extractSignals(r),
		IPAddress: extractIPAddress(r),
		Referrer:  req.Referrer,
	})
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// extractSignals collects the fingerprint signal bundle from request headers.
func extractSignals(r *http.Request) fingerprint.Signals {
	return fingerprint.Signals{
		UserAgent:        r.UserAgent(),
		AcceptLanguage:   r.Header.Get("Accept-Language"),
		ScreenResolution: r.Header.Get("X-Screen-Resolution"),
		Timezone:         r.Header.Get("X-Timezone"),
		Platform:         r.Header.Get("X-Platform"),
	}
}

// extractIPAddress extracts the client IP, honoring proxy headers in priority
// order.
func extractIPAddress(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// X-Forwarded-For may hold a comma-separated chain
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	if ip := r.Header.Get("X-Client-IP"); ip != "" {
		return strings.TrimSpace(ip)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
