package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kintai-assist/kintai-backend-go/internal/config"
	"github.com/kintai-assist/kintai-backend-go/internal/handler/http/middleware"
	"github.com/kintai-assist/kintai-backend-go/internal/pkg/jwt"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, attendanceHandler AttendanceHandler, eventsHandler EventsHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kintai-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	// The popup and the injected panel run in browser extension contexts.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"chrome-extension://*", "http://localhost:*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// The SSE stream authenticates via query param on its own.
		r.Get("/events", eventsHandler.Stream)

		r.Group(func(r chi.Router) {
			if cfg.Auth.Enabled {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			}

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/today", attendanceHandler.GetToday)
				r.Get("/missed", attendanceHandler.GetMissedPunches)
				r.Get("/overtime", attendanceHandler.GetOvertime)
				r.Delete("/cache", attendanceHandler.InvalidateCache)
			})

			r.Get("/workday", attendanceHandler.GetWorkdayVerdict)
		})
	})
	return r
}
