package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/22303425alamin/Railway-Ticket-Management-System/config"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/consumer"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/handler"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/middleware"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/scheduler"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/service"
	"github.com/22303425alamin/Railway-Ticket-Management-System/internal/session"
	"github.com/22303425alamin/Railway-Ticket-Management-System/pkg/database"
	"github.com/22303425alamin/Railway-Ticket-Management-System/pkg/logger"
	"github.com/22303425alamin/Railway-Ticket-Management-System/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type services struct {
	search   service.SearchService
	bookings service.BookingService
	trains   service.TrainService
}

func main() {
	cfg := config.Load()
	logger.Setup(cfg.LogFile, cfg.LogLevel)

	db := database.NewPostgresDB(cfg.DSN())
	repos := service.NewRepositories(db)

	window := service.BookingWindow{
		Clock: service.SystemClock(cfg.Location()),
		Days:  cfg.BookingWindowDays,
	}
	sessions := session.NewStore(cfg.SessionTTL)

	// RabbitMQ is optional: bookings still work without the event feed
	var events service.EventPublisher
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq publisher unavailable, booking events will not be published")
	} else {
		defer publisher.Close()
		events = publisher
	}

	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, rabbitmq.ScheduleQueue, rabbitmq.ScheduleBindingKey)
	if err != nil {
		logrus.WithError(err).Warn("rabbitmq consumer unavailable, schedule overrides must be set through the admin API")
	} else {
		defer mqConsumer.Close()
		msgs, err := mqConsumer.Consume()
		if err != nil {
			logrus.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewScheduleConsumer(repos.Trains, repos.Schedules).Start(msgs)
	}

	jobs := scheduler.New(scheduler.Config{
		SessionSweep:  cfg.SessionSweepSchedule,
		OverridePurge: cfg.OverridePurgeSchedule,
		Location:      cfg.Location(),
	}, sessions, repos.Schedules)
	if err := jobs.Start(); err != nil {
		logrus.Fatalf("failed to start scheduler: %v", err)
	}
	defer jobs.Stop()

	e := newServer(cfg, services{
		search: service.NewSearchService(repos, window, sessions),
		bookings: service.NewBookingService(repos, service.BookingOptions{
			Window:    window,
			Attempts:  cfg.ReferenceAttempts,
			Publisher: events,
		}),
		trains: service.NewTrainService(repos),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("railway service starting on :%s", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}

func newServer(cfg *config.Config, svcs services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = middleware.NewValidator()

	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			entry := logrus.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
				"ip":      v.RemoteIP,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(echoMw.Recover())
	e.Use(echoMw.CORSWithConfig(echoMw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	api := e.Group("/api/v1")
	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "railway-service"})
	})

	handler.NewSearchHandler(svcs.search).RegisterRoutes(api, middleware.SearchRateLimiter(cfg.SearchRateLimit))

	auth := middleware.RequireAuth(cfg.JWTSecret)
	handler.NewBookingHandler(svcs.bookings).RegisterRoutes(api.Group("/bookings", auth))
	handler.NewAdminHandler(svcs.trains).RegisterRoutes(api.Group("/admin", auth, middleware.RequireRole(middleware.RoleAdmin)))

	return e
}
