package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	// Application Layer
	appService "tattooage/internal/application/service"

	// Infrastructure Layer
	"tattooage/internal/infrastructure/database/sqlite"
	"tattooage/internal/infrastructure/notification"

	// Interfaces Layer
	"tattooage/internal/interfaces/api/handler"
	"tattooage/internal/interfaces/api/router"

	// Packages
	appLogger "tattooage/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, registry *notification.Registry, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the notification registry first so no reminder fires mid-shutdown
	log.Println("Stopping notification registry...")
	registry.Stop()
	log.Println("Notification registry stopped.")

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	// Load Environment Variables (using autoload)
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // Default port
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}
	// Other env vars (DB_URL, LINE secrets) are loaded by their respective modules

	// --- Infrastructure ---
	db := sqlite.NewDB()
	appointmentRepo := sqlite.NewAppointmentRepository(db)
	appLog.Info("Database and repositories initialized.")

	sender := notification.NewLineSender(appLog)
	registry := notification.NewRegistry(sender, appLog)
	gate := notification.NewPermissionGate(sender, appLog)

	// --- Application Services ---
	reminderSvc := appService.NewReminderService(appointmentRepo, registry, gate, appLog)
	appointmentSvc := appService.NewAppointmentService(appointmentRepo, reminderSvc, appLog)
	appLog.Info("Application services initialized.")

	// --- Restore Schedules ---
	appLog.Info("Restoring reminder schedules...")
	if err := reminderSvc.RestoreSchedules(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to restore schedules on startup", err)
	} else {
		appLog.Info("Reminder schedules restored.")
	}

	// --- API Handlers ---
	appointmentHandler := handler.NewAppointmentHandler(appointmentSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		AppointmentHandler: appointmentHandler,
		Logger:             appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, registry, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
