package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexusnext/nexusnext/web/pages"
	"github.com/nexusnext/nexusnext/web/waitlist"
)

// Server is the brand site: the landing page, the waitlist API, and a
// liveness route.
type Server interface {
	// Handler returns the server's HTTP handler, primarily for tests.
	//
	// Returns:
	//   - http.Handler: the routing handler
	Handler() http.Handler

	// Run listens on the configured port until ctx is cancelled, then shuts
	// down gracefully.
	//
	// Parameters:
	//   - ctx: cancelling this context begins graceful shutdown
	//
	// Returns:
	//   - error: error if listening or shutdown fails
	Run(ctx context.Context) error
}

// server implements the Server interface.
type server struct {
	log    *zap.Logger
	port   int
	store  waitlist.Store
	mailer waitlist.Mailer

	mux *http.ServeMux
}

var _ Server = &server{}

// NewServer creates the web server with the provided options. A store must be
// configured; the mailer defaults to a no-op and the logger to a nop logger.
//
// Parameters:
//   - options: variadic list of ServerBuilderOption functions to configure the server
//
// Returns:
//   - Server: the configured server
func NewServer(options ...ServerBuilderOption) Server {
	s := &server{
		log:    zap.NewNop(),
		port:   3001,
		mailer: waitlist.NewNopMailer(),
	}
	for _, opt := range options {
		opt(s)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /{$}", s.handleRoot)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("POST /api/waitlist", s.handleWaitlist)
	return s
}

func (s *server) Handler() http.Handler {
	return s.mux
}

func (s *server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("web server listening", zap.Int("port", s.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down web server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown web server: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

// handleRoot serves the landing page to browsers and a liveness line to
// everything else, keyed off the Accept header.
func (s *server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pages.Landing().Render(w); err != nil {
			s.log.Error("render landing page", zap.Error(err))
		}
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Nexusnext API is live")
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// waitlistRequest is the JSON body accepted by the waitlist endpoint.
type waitlistRequest struct {
	Email string `json:"email"`
}

// handleWaitlist records a signup. Accepts both the JSON API shape and the
// landing page's form post. Duplicates are reported as success; the mailer is
// only invoked for genuinely new entries and its failures are logged, never
// surfaced.
func (s *server) handleWaitlist(w http.ResponseWriter, r *http.Request) {
	email, ok := s.decodeEmail(r)
	if !ok || !waitlist.ValidEmail(email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid email address"})
		return
	}

	created, err := s.store.Add(r.Context(), email)
	if err != nil {
		s.log.Error("add waitlist entry", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to add to waitlist."})
		return
	}

	if created {
		if err := s.mailer.SendConfirmation(r.Context(), email); err != nil {
			s.log.Warn("send confirmation email", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "You're on the list. We'll be in touch."})
}

// decodeEmail pulls the address out of a JSON body or a form post.
func (s *server) decodeEmail(r *http.Request) (string, bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return "", false
		}
		return r.PostFormValue("email"), true
	}

	var req waitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", false
	}
	return req.Email, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
