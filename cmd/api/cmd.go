package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/task-tracker/internal/bootstrap"
	"github.com/GregMSThompson/task-tracker/internal/config"
	"github.com/GregMSThompson/task-tracker/internal/handlers"
	"github.com/GregMSThompson/task-tracker/internal/middleware"
	"github.com/GregMSThompson/task-tracker/internal/response"
	"github.com/GregMSThompson/task-tracker/internal/router"
	"github.com/GregMSThompson/task-tracker/internal/services"
	"github.com/GregMSThompson/task-tracker/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Firestore)
	tstore := store.NewTaskStore(bs.Firestore)

	// services
	authserv := services.NewAuthService(bs.Identity, ustore)
	profserv := services.NewProfileService(ustore, bs.Identity)
	taskserv := services.NewTaskService(tstore)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.AuthSvc = authserv
	deps.ProfileSvc = profserv
	deps.TaskSvc = taskserv
	deps.LiveTasks = tstore
	deps.AllowedOrigin = cfg.AllowedOrigin

	// router
	mw := middleware.NewMiddleware(bs.Identity, rh)
	r := router.NewRouter(deps, mw)

	bs.Log.Info("listening", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
