// Package httpapi exposes the TodoVault server over a JSON HTTP API.
// Authentication is a bearer JWT in the Authorization header; every
// todo and profile route resolves the acting user from the token, never
// from the request body.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/server/images"
	"github.com/todovault/todovault/internal/server/todos"
	"github.com/todovault/todovault/internal/server/users"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr         string
	logger       logging.Logger
	userService  *users.Service
	todoService  *todos.Service
	imageService *images.Service
	secretKey    []byte
}

func NewServer(addr string, logger logging.Logger, us *users.Service, ts *todos.Service,
	is *images.Service, secretKey string) *Server {
	return &Server{
		addr:         addr,
		logger:       logger,
		userService:  us,
		todoService:  ts,
		imageService: is,
		secretKey:    []byte(secretKey),
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.healthHandler).Methods("GET")

	r.HandleFunc("/api/register", s.registerHandler).Methods("POST")
	r.HandleFunc("/api/login", s.loginHandler).Methods("POST")
	r.HandleFunc("/api/username/check", s.checkUsernameHandler).Methods("POST")
	r.HandleFunc("/api/recovery/verify", s.verifyRecoveryHandler).Methods("POST")
	r.HandleFunc("/api/recovery/reset", s.resetPasswordHandler).Methods("POST")

	auth := r.PathPrefix("/api").Subrouter()
	auth.Use(s.authMiddleware)

	auth.HandleFunc("/profile", s.getProfileHandler).Methods("GET")
	auth.HandleFunc("/profile", s.updateProfileHandler).Methods("PUT")
	auth.HandleFunc("/profile", s.deleteAccountHandler).Methods("DELETE")

	auth.HandleFunc("/todos", s.listTodosHandler).Methods("GET")
	auth.HandleFunc("/todos", s.addTodoHandler).Methods("POST")
	// registered before {id} so "completed" is never taken for a todo id
	auth.HandleFunc("/todos/completed", s.clearCompletedHandler).Methods("DELETE")
	auth.HandleFunc("/todos/{id}", s.setCompletedHandler).Methods("PATCH")
	auth.HandleFunc("/todos/{id}", s.deleteTodoHandler).Methods("DELETE")

	auth.HandleFunc("/images/upload-url", s.imageUploadURLHandler).Methods("POST")
	auth.HandleFunc("/images/url", s.imageGetURLHandler).Methods("GET")

	return r
}

// Run serves until ctx is cancelled, then shuts down draining in-flight
// requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
