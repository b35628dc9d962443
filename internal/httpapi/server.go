// Package httpapi exposes the party games over HTTP/JSON.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/xtding233/party-lottery/internal/party"
)

// maxBodyBytes caps POST bodies; participant lists are small.
const maxBodyBytes = 64 << 10

// Server maps HTTP routes onto a party.Hall.
type Server struct {
	hall *party.Hall
	log  *slog.Logger
}

// NewRouter builds the chi router with all routes and middleware.
// An empty origins list allows any origin.
func NewRouter(hall *party.Hall, log *slog.Logger, origins []string) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s := &Server{hall: hall, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	// bingo
	r.Get("/next_number", s.handleNextNumber)
	r.Post("/reset", s.handleReset)
	r.Get("/bingo", s.handleBingo)

	// amida
	r.Get("/amida", s.handleGetAmida)
	r.Post("/amida", s.handleSetAmida)
	r.Get("/amida/result", s.handleAmidaResult)

	// misc
	r.Get("/seed", s.handleSeed)
	r.Get("/export.xlsx", s.handleExport)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			s.log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
