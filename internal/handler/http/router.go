package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/config"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

const appVersion = "v1.0.0"

// NewLogger builds the JSON logger in ECS format shared by the request
// logger and the rest of the application.
func NewLogger(out io.Writer, app config.AppConfig, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-dashboard"),
		slog.String("version", appVersion),
		slog.String("env", app.Env),
	)
}

func NewRouter(app config.AppConfig, logger *slog.Logger, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees/{employeeID}/attendance", func(r chi.Router) {
			r.Get("/dashboard", attendanceHandler.GetDashboard)
			r.Get("/month", attendanceHandler.GetMonth)
			r.Get("/summary", attendanceHandler.GetSummary)

			r.Route("/week", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetWeek)
				r.Get("/export", attendanceHandler.ExportWeek)
			})

			r.Route("/check-in", func(r chi.Router) {
				r.Get("/", attendanceHandler.GetCheckIn)
				r.Post("/", attendanceHandler.ToggleCheckIn)
				r.Get("/stream", attendanceHandler.StreamCheckIn)
			})
		})
	})
	return r
}
