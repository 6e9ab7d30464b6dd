package http

import (
	"Pulse-Backend/internal/domain"
	"Pulse-Backend/internal/service"
	"Pulse-Backend/internal/stats"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BlogHandler handles blog metadata management and per-post analytics.
type BlogHandler struct {
	tracker *service.Tracker
	stats   *stats.Service
	log     *zap.Logger
}

// NewBlogHandler creates the blog handler.
func NewBlogHandler(tracker *service.Tracker, statistics *stats.Service, log *zap.Logger) *BlogHandler {
	return &BlogHandler{tracker: tracker, stats: statistics, log: log}
}

// CreateBlogPostRequest is the metadata creation request body.
type CreateBlogPostRequest struct {
	Slug            string   `json:"slug"`
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt,omitempty"`
	PublishedAt     string   `json:"published_at,omitempty"` // RFC 3339
	ReadTime        int      `json:"read_time,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Category        string   `json:"category,omitempty"`
	Status          string   `json:"status,omitempty"`
	Author          string   `json:"author,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
}

// HandleCollection routes /api/blog: GET lists posts, POST creates one.
func (h *BlogHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPosts(w, r)
	case http.MethodPost:
		h.createPost(w, r)
	default:
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandlePost routes /api/blog/{slug} plus the /views and /analytics
// sub-resources.
func (h *BlogHandler) HandlePost(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/blog/")
	slug, sub := rest, ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		slug, sub = rest[:i], rest[i+1:]
	}
	if slug == "" {
		writeError(w, h.log, "missing slug", http.StatusBadRequest)
		return
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.getPost(w, r, slug)
	case sub == "" && r.Method == http.MethodDelete:
		h.deletePost(w, r, slug)
	case sub == "views" && r.Method == http.MethodGet:
		h.viewCount(w, r, slug)
	case sub == "analytics" && r.Method == http.MethodGet:
		h.analytics(w, r, slug)
	default:
		writeError(w, h.log, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// createPost creates blog metadata.
//
//	@Summary		Create a blog post
//	@Description	Store blog metadata together with its zero-valued analytics row
//	@Tags			Blog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateBlogPostRequest	true	"Blog post metadata"
//	@Success		201		{object}	domain.BlogMetadata		"Created metadata"
//	@Failure		400		{object}	map[string]string		"Invalid request data"
//	@Failure		409		{object}	map[string]string		"Slug already exists"
//	@Router			/api/blog [post]
func (h *BlogHandler) createPost(w http.ResponseWriter, r *http.Request) {
	var req CreateBlogPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, "invalid request body", http.StatusBadRequest)
		return
	}

	meta := &domain.BlogMetadata{
		Slug:     req.Slug,
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		ReadTime: req.ReadTime,
		Tags:     req.Tags,
		Category: req.Category,
		Status:   req.Status,
	}
	if req.PublishedAt != "" {
		publishedAt, err := time.Parse(time.RFC3339, req.PublishedAt)
		if err != nil {
			writeError(w, h.log, "invalid published_at, expected RFC 3339", http.StatusBadRequest)
			return
		}
		meta.PublishedAt = publishedAt
	}
	if req.Author != "" {
		meta.Author = &req.Author
	}
	if req.MetaTitle != "" {
		meta.MetaTitle = &req.MetaTitle
	}
	if req.MetaDescription != "" {
		meta.MetaDescription = &req.MetaDescription
	}

	if err := h.tracker.CreateBlogPost(r.Context(), meta); err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusCreated, meta)
}

// listPosts lists blog metadata, optionally filtered by ?status=.
//
//	@Summary		List blog posts
//	@Tags			Blog
//	@Produce		json
//	@Param			status	query		string					false	"Filter by status (published or draft)"
//	@Success		200		{array}		domain.BlogMetadata		"Blog posts"
//	@Router			/api/blog [get]
func (h *BlogHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.tracker.ListBlogPosts(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}
	if posts == nil {
		posts = []*domain.BlogMetadata{}
	}

	writeJSON(w, h.log, http.StatusOK, posts)
}

// getPost returns the metadata for one post.
//
//	@Summary		Get a blog post
//	@Tags			Blog
//	@Produce		json
//	@Param			slug	path		string					true	"Post slug"
//	@Success		200		{object}	domain.BlogMetadata		"Blog post"
//	@Failure		404		{object}	map[string]string		"Unknown slug"
//	@Router			/api/blog/{slug} [get]
func (h *BlogHandler) getPost(w http.ResponseWriter, r *http.Request, slug string) {
	meta, err := h.tracker.GetBlogPost(r.Context(), slug)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, meta)
}

// deletePost removes a post and its analytics row.
//
//	@Summary		Delete a blog post
//	@Tags			Blog
//	@Param			slug	path	string	true	"Post slug"
//	@Success		204		"Deleted"
//	@Failure		404		{object}	map[string]string	"Unknown slug"
//	@Router			/api/blog/{slug} [delete]
func (h *BlogHandler) deletePost(w http.ResponseWriter, r *http.Request, slug string) {
	if err := h.tracker.DeleteBlogPost(r.Context(), slug); err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// viewCount returns the engagement summary for one post.
//
//	@Summary		Blog post view counts
//	@Description	Engagement totals partitioned by current visitor status
//	@Tags			Blog
//	@Produce		json
//	@Param			slug	path		string					true	"Post slug"
//	@Success		200		{object}	stats.BlogViewCount		"View counts"
//	@Router			/api/blog/{slug}/views [get]
func (h *BlogHandler) viewCount(w http.ResponseWriter, r *http.Request, slug string) {
	result, err := h.stats.BlogViewCount(r.Context(), slug)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}

// analytics returns the per-post counters.
//
//	@Summary		Blog post analytics counters
//	@Tags			Blog
//	@Produce		json
//	@Param			slug	path		string					true	"Post slug"
//	@Success		200		{object}	domain.BlogAnalytics	"Analytics counters"
//	@Failure		404		{object}	map[string]string		"Unknown slug"
//	@Router			/api/blog/{slug}/analytics [get]
func (h *BlogHandler) analytics(w http.ResponseWriter, r *http.Request, slug string) {
	result, err := h.tracker.GetBlogAnalytics(r.Context(), slug)
	if err != nil {
		writeDomainError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, http.StatusOK, result)
}
