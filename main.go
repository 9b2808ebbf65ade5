package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/config"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/db"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/handler"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/logger"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/repository"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/router"
	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/service"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	closer := logger.Init(cfg.Log)
	defer closer.Close()

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		slog.Error("connect database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer db.Close(gdb)
	if err := repository.Migrate(gdb); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}
	slog.Info("database ready", "driver", cfg.Database.Driver)

	// Repositories
	userRepo := repository.NewUserRepo(gdb)
	vesselRepo := repository.NewVesselRepo(gdb)
	manualRepo := repository.NewManualRepo(gdb)
	templateRepo := repository.NewTemplateRepo(gdb)
	subRepo := repository.NewSubmissionRepo(gdb)

	// Services
	authSvc := service.NewAuthService(userRepo, vesselRepo, cfg.JWTSecret, cfg.TokenTTL)
	vesselSvc := service.NewVesselService(vesselRepo, userRepo)
	manualSvc := service.NewManualService(manualRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	subSvc := service.NewSubmissionService(subRepo, templateRepo, vesselRepo, userRepo)
	uploadSvc := service.NewUploadService(cfg.UploadDir, "/files")
	dashSvc := service.NewDashboardService(templateRepo, manualRepo, vesselRepo, subRepo, subSvc)

	if err := authSvc.SeedAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPass); err != nil {
		slog.Warn("seed admin", "error", err)
	}

	r := router.New(router.Options{
		JWTSecret:   cfg.JWTSecret,
		Users:       userRepo,
		UploadDir:   cfg.UploadDir,
		CORSOrigins: cfg.CORSOrigins,
	}, router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Vessels:     handler.NewVesselHandler(vesselSvc),
		Manuals:     handler.NewManualHandler(manualSvc),
		Templates:   handler.NewTemplateHandler(templateSvc),
		Submissions: handler.NewSubmissionHandler(subSvc),
		Uploads:     handler.NewUploadHandler(uploadSvc),
		Dashboard:   handler.NewDashboardHandler(dashSvc),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("fleetdocs server starting", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown", "error", err)
	}
	slog.Info("server stopped")
}
