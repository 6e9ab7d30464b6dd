package http

import (
	"Pulse-Backend/internal/service"
	"Pulse-Backend/internal/stats"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Server wires the HTTP handlers for the tracking and statistics API.
type Server struct {
	trackHandler  *TrackHandler
	statsHandler  *StatsHandler
	blogHandler   *BlogHandler
	healthHandler *HealthHandler
	log           *zap.Logger
}

// NewServer creates the HTTP server facade. tiers maps each entity family to
// the storage tier its hybrid adapter was pinned to, for diagnostics.
func NewServer(
	tracker *service.Tracker,
	statistics *stats.Service,
	tiers map[string]string,
	log *zap.Logger,
) *Server {
	return &Server{
		trackHandler:  NewTrackHandler(tracker, log),
		statsHandler:  NewStatsHandler(statistics, log),
		blogHandler:   NewBlogHandler(tracker, statistics, log),
		healthHandler: NewHealthHandler(tiers, log),
		log:           log,
	}
}

// SetupRoutes builds the route table.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Health checks
	mux.HandleFunc("/health", s.healthHandler.Health)
	mux.HandleFunc("/ready", s.healthHandler.Ready)

	// Swagger documentation
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	// Tracking endpoints
	mux.HandleFunc("/api/track/visitor", s.withCORS(s.trackHandler.TrackVisitor))
	mux.HandleFunc("/api/track/pageview", s.withCORS(s.trackHandler.RecordPageview))
	mux.HandleFunc("/api/track/blog-view", s.withCORS(s.trackHandler.TrackBlogView))

	// Statistics endpoints
	mux.HandleFunc("/api/stats/visitors", s.withCORS(s.statsHandler.VisitorStats))
	mux.HandleFunc("/api/stats/pageviews", s.withCORS(s.statsHandler.PageviewStats))
	mux.HandleFunc("/api/stats/blog-views", s.withCORS(s.statsHandler.BlogViewGlobalStats))

	// Blog metadata and per-post analytics
	mux.HandleFunc("/api/blog", s.withCORS(s.blogHandler.HandleCollection))
	mux.HandleFunc("/api/blog/", s.withCORS(s.blogHandler.HandlePost))

	return mux
}

// withCORS adds permissive CORS headers; the tracking API is called from
// arbitrary site origins.
func (s *Server) withCORS(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, X-Screen-Resolution, X-Timezone, X-Platform")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		handler(w, r)
	}
}
