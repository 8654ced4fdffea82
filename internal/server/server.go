package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"gitlab-time-tracker/internal/storage"
)

// Server is the timer session backend. It holds exactly one piece of state
// per token: the timestamp at which the timer was started. Everything else
// the tracker shows comes straight from GitLab.
type Server struct {
	router chi.Router
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

// New assembles the HTTP server on top of the given session store.
func New(store storage.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger, now: time.Now}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(s.logRequests)

	r.Get("/health", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Use(requireBearer)
		r.Get("/timestamp", s.getTimestamp)
		r.Post("/timestamp", s.startTimestamp)
		r.Delete("/timestamp", s.deleteTimestamp)
	})

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on the given port until the listener fails.
func (s *Server) Run(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("timestamp service listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status_code", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

// timestampKey namespaces session keys in shared stores (Redis).
func timestampKey(token string) string {
	return "timestamp:" + token
}

func (s *Server) getTimestamp(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())
	value, err := s.store.Get(r.Context(), timestampKey(token))
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("reading timestamp", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	fmt.Fprint(w, value)
}

func (s *Server) startTimestamp(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())
	value := strconv.FormatInt(s.now().UnixMilli(), 10)
	if err := s.store.Set(r.Context(), timestampKey(token), value); err != nil {
		s.logger.Error("storing timestamp", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	fmt.Fprint(w, value)
}

func (s *Server) deleteTimestamp(w http.ResponseWriter, r *http.Request) {
	token := tokenFrom(r.Context())
	err := s.store.Delete(r.Context(), timestampKey(token))
	if errors.Is(err, storage.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("deleting timestamp", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
