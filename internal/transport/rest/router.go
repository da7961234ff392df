package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"creativemastery/internal/config"
	_ "creativemastery/internal/docs"
	"creativemastery/internal/metrics"
	"creativemastery/internal/service"
	"creativemastery/internal/transport/rest/handler"
	"creativemastery/internal/transport/rest/middleware"
	"creativemastery/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	QuizService    *service.QuizService
	SessionService *service.SessionService
	WSHub          *ws.Hub
	CORS           config.CORSConfig
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer             // nil disables /metrics
	Ping           func(ctx context.Context) error // health dependency check, optional
	Logger         *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(c.QuizService, logger)
	sessionHandler := handler.NewSessionHandler(c.SessionService, logger)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService, c.CORS.AllowedOrigins, logger)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))
	r.Use(middleware.Instrument(c.Metrics, logger))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Catalog and stateless engine routes
	v1.HandleFunc("/dimensions", quizHandler.Dimensions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/questions", quizHandler.Questions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/mastery/options", quizHandler.MasteryOptions).Methods("GET", "OPTIONS")
	v1.HandleFunc("/results", quizHandler.Results).Methods("POST", "OPTIONS")
	v1.HandleFunc("/insights", quizHandler.Insights).Methods("POST", "OPTIONS")

	v1.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	v1.HandleFunc("/stats/profiles", sessionHandler.Stats).Methods("GET", "OPTIONS")
	v1.HandleFunc("/stats/profiles/{key}", sessionHandler.ProfileRank).Methods("GET", "OPTIONS")

	// WebSocket route
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Session routes, addressed by path id or by X-Session-ID on /session
	sessionRoutes := v1.NewRoute().Subrouter()
	sessionRoutes.Use(middleware.RequireSession)
	for _, prefix := range []string{"/sessions/{id}", "/session"} {
		sessionRoutes.HandleFunc(prefix, sessionHandler.Get).Methods("GET", "OPTIONS")
		sessionRoutes.HandleFunc(prefix, sessionHandler.Delete).Methods("DELETE", "OPTIONS")
		sessionRoutes.HandleFunc(prefix+"/answers/{questionId}", sessionHandler.Answer).Methods("PUT", "OPTIONS")
		sessionRoutes.HandleFunc(prefix+"/mastery", sessionHandler.Mastery).Methods("PUT", "OPTIONS")
		sessionRoutes.HandleFunc(prefix+"/results", sessionHandler.Results).Methods("GET", "OPTIONS")
		sessionRoutes.HandleFunc(prefix+"/insights", sessionHandler.Insights).Methods("GET", "OPTIONS")
		sessionRoutes.HandleFunc(prefix+"/progress", sessionHandler.Progress).Methods("GET", "OPTIONS")
	}

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if c.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := c.Ping(ctx); err != nil {
				logger.Warn("health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"unavailable"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// OpenAPI document
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			logger.Error("failed to render api doc", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	if c.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")
	}

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	anyOrigin := len(cfg.AllowedOrigins) == 0
	origins := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			anyOrigin = true
		}
		origins[o] = true
	}
	allowedMethods := joinOr(cfg.AllowedMethods, "GET, POST, PUT, DELETE, OPTIONS")
	allowedHeaders := joinOr(cfg.AllowedHeaders, "Content-Type, "+middleware.SessionIDHeader)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch origin := r.Header.Get("Origin"); {
			case anyOrigin:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origins[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}
