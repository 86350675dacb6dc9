package router

import (
	"fmt"
	"net/http"

	"tattooage/internal/interfaces/api/handler"
	"tattooage/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	AppointmentHandler *handler.AppointmentHandler
	Logger             logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	appointments := e.Group("/appointments")
	appointments.POST("", cfg.AppointmentHandler.Create)
	appointments.GET("", cfg.AppointmentHandler.List)
	appointments.GET("/:id", cfg.AppointmentHandler.Get)
	appointments.PATCH("/:id/schedule", cfg.AppointmentHandler.Reschedule)
	appointments.POST("/:id/confirm", cfg.AppointmentHandler.Confirm)
	appointments.POST("/:id/cancel", cfg.AppointmentHandler.Cancel)
	appointments.POST("/:id/complete", cfg.AppointmentHandler.Complete)
	appointments.DELETE("/:id", cfg.AppointmentHandler.Delete)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
