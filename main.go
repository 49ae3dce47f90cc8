// File: bookable/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bookable/config"
	"bookable/handlers"
	"bookable/middleware"
	"bookable/routes"
	"bookable/services/booking"
	"bookable/services/calendar"
	"bookable/services/notification"
	"bookable/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: invalid configuration: %v", err)
	}
	utils.InitializeLogger(cfg.Env)
	logger := utils.GetLogger()

	ctx := context.Background()
	provider, err := calendar.NewGoogleProvider(ctx, cfg.GoogleCredentialsFile, cfg.GoogleCalendarID, cfg.Location())
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize calendar provider: %v", err)
	}

	var notifier notification.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifier, err = notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.Location())
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize telegram notifier: %v", err)
		}
	} else {
		logger.Sugar().Info("main: telegram not configured, booking notifications disabled")
	}

	var lock utils.BookingLock = &utils.LocalLock{}
	if cfg.RedisAddr != "" {
		redisLock, err := utils.NewRedisLock(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisLockDB)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize booking lock: %v", err)
		}
		lock = redisLock
	}

	bookingService := &booking.DefaultBookingService{
		Cfg:      cfg,
		Calendar: provider,
		Notifier: notifier,
		Lock:     lock,
	}
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	router.Use(cors.Default())

	routes.RegisterRoutes(router, bookingHandler)

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting booking server on %s (owner: %s, hours %02d:00-%02d:00, %d min slots)",
		srv.Addr, cfg.OwnerName, cfg.WorkingHoursStart, cfg.WorkingHoursEnd, cfg.SlotDurationMinutes)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
