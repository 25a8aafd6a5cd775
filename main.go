package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"wellness-backend/config"
	"wellness-backend/controllers"
	"wellness-backend/routes"
	"wellness-backend/services"
	"wellness-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn(".env not found, continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		logrus.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	logrus.Info("database connection established, migrations applied")

	exportDir := utils.EnvOrDefault("EXPORT_DIR", "storage/exports")

	dispatcher := services.NewSideEffectDispatcher(64)
	dispatcher.Start()

	exportSvc := services.NewExportService(exportDir)
	notifySvc := services.NewNotifyService(db)
	bookingSvc := services.NewBookingService(db, exportSvc, notifySvc, dispatcher)
	statusSvc := services.NewStatusService(db)
	companySvc := services.NewCompanyService(db)
	officeSvc := services.NewOfficeService(db)
	userSvc := services.NewCompanyUserService(db)
	settingSvc := services.NewSettingService(db)

	router := routes.SetupRouter(
		controllers.NewBookingController(bookingSvc, statusSvc),
		controllers.NewCompanyController(companySvc),
		controllers.NewOfficeController(officeSvc),
		controllers.NewCompanyUserController(userSvc),
		controllers.NewSettingsController(settingSvc),
		exportDir,
		os.Getenv("API_KEY"),
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logrus.Infof("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server forced to shutdown: %v", err)
	}

	// drain queued notifications before exiting
	dispatcher.Stop()

	logrus.Info("server stopped gracefully")
}
