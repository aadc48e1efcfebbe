package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GregMSThompson/task-tracker/internal/handlers"
	"github.com/GregMSThompson/task-tracker/internal/middleware"
)

func NewRouter(deps *handlers.Deps, auth *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)

	r.Get("/health", health(deps.Log))
	r.Handle("/metrics", promhttp.Handler())

	ah := handlers.NewAuthHandlers(deps)
	ph := handlers.NewProfileHandlers(deps)
	th := handlers.NewTaskHandlers(deps)

	r.Mount("/auth", ah.AuthRoutes(auth.FirebaseAuth))

	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/tasks", th.TaskRoutes())
		r.Mount("/profile", ph.ProfileRoutes())
	})
	return r
}

func health(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Warn("failed to write health response", "error", err)
		}
	}
}
