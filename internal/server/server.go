// Package server provides the HTTP API for the interview assistant.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonkmatsumo/interview-agent/internal/cms"
	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/db"
	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/server/middleware"
	"github.com/jonkmatsumo/interview-agent/internal/server/ratelimit"
	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// ContentStore persists committed content records.
type ContentStore interface {
	SaveContent(ctx context.Context, contentType types.ContentType, data map[string]any) (uuid.UUID, error)
	FindSimilar(ctx context.Context, contentType types.ContentType, name string) (*db.ContentRecord, error)
}

// SnapshotSource provides the portfolio context for system prompts.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) (*cms.ContextSnapshot, error)
}

// snapshotTTL bounds how stale the cached portfolio snapshot may get.
const snapshotTTL = 5 * time.Minute

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       ContentStore
	snapshots   SnapshotSource
	model       llm.Client
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService

	snapMu      sync.Mutex
	cachedSnap  *cms.ContextSnapshot
	snapFetched time.Time

	closers []func()
}

// Config holds server configuration
type Config struct {
	Port        int
	DatabaseURL string
	CMSBaseURL  string
	CMSAPIKey   string
	Provider    llm.Provider
	APIKey      string
}

// New creates a new server instance, connecting to the database, the CMS,
// and the configured LLM provider.
func New(cfg Config) (*Server, error) {
	ctx := context.Background()

	if cfg.CMSBaseURL == "" {
		return nil, fmt.Errorf("CMS base URL is required")
	}
	cmsClient := cms.NewClient(cfg.CMSBaseURL, cms.WithAPIKey(cfg.CMSAPIKey))

	model, err := llm.NewClient(ctx, llm.ConfigForProvider(cfg.Provider), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var store ContentStore
	var closers []func()
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			model.Close() //nolint:errcheck
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		store = database
		closers = append(closers, database.Close)
	}
	closers = append(closers, func() { model.Close() }) //nolint:errcheck

	s := newServer(store, cmsClient, model)
	s.closers = closers

	// Token auth is enabled when a JWT secret is configured.
	if jwtConfig, err := config.NewJWTConfig(); err == nil {
		s.jwtService = NewJWTService(jwtConfig)
	} else {
		log.Printf("[server] JWT auth disabled: %v", err)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for streamed replies
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// newServer wires the routing and middleware around the given dependencies.
func newServer(store ContentStore, snapshots SnapshotSource, model llm.Client) *Server {
	return &Server{
		store:       store,
		snapshots:   snapshots,
		model:       model,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}
}

// Handler builds the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/interview/{mode}", s.handleInterview)
	mux.HandleFunc("POST /api/content", s.handleCommitContent)
	mux.HandleFunc("GET /api/modes", s.handleModes)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.withRateLimit(s.withLogging(s.withCORS(s.withAuth(mux))))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	for _, closeFn := range s.closers {
		closeFn()
	}
	log.Println("Server stopped")
	return nil
}

// withAuth requires a bearer token on /api/ routes when auth is configured.
// The health endpoint stays open for probes.
func (s *Server) withAuth(next http.Handler) http.Handler {
	if s.jwtService == nil {
		return next
	}
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}
		authed.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// snapshot returns the cached portfolio snapshot, refreshing it when stale.
func (s *Server) snapshot(ctx context.Context) (*cms.ContextSnapshot, error) {
	s.snapMu.Lock()
	defer s.snapMu.Unlock()

	if s.cachedSnap != nil && time.Since(s.snapFetched) < snapshotTTL {
		return s.cachedSnap, nil
	}

	snap, err := s.snapshots.FetchSnapshot(ctx)
	if err != nil {
		// A stale snapshot beats no snapshot.
		if s.cachedSnap != nil {
			log.Printf("[server] snapshot refresh failed, serving stale: %v", err)
			return s.cachedSnap, nil
		}
		return nil, &ErrUpstream{Service: "cms", Err: err}
	}

	s.cachedSnap = snap
	s.snapFetched = time.Now()
	return snap, nil
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
