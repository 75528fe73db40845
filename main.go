// File: therabook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"therabook/config"
	"therabook/cron"
	"therabook/database"
	bookingRepoPkg "therabook/database/repository/booking"
	scheduleRepoPkg "therabook/database/repository/schedule"
	"therabook/handlers"
	"therabook/middleware"
	"therabook/routes"
	"therabook/services/availability"
	"therabook/services/booking"
	"therabook/services/schedule"
	"therabook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()
	if err := schedRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure schedule indexes: %v", err)
	}
	if err := bookRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// Task queue client for availability cache refreshes.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	availabilityService := &availability.DefaultAvailabilityService{
		ScheduleRepo: schedRepo,
		BookingRepo:  bookRepo,
		Cache:        utils.GetCacheClient(),
		Calc:         availability.SlotCalculator{SlotDuration: config.AppConfig.SlotDurationMinutes},
		CacheTTL:     time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second,
		WarmDays:     config.AppConfig.CacheWarmDays,
	}
	scheduleService := &schedule.DefaultScheduleService{
		Repo:  schedRepo,
		Queue: queueClient,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:         bookRepo,
		Availability: availabilityService,
		Queue:        queueClient,
	}

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	bookingHandler := handlers.NewBookingHandler(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetDayAvailabilityHandler:   availabilityHandler.GetDayAvailabilityHandler,
		GetRangeAvailabilityHandler: availabilityHandler.GetRangeAvailabilityHandler,

		GetScheduleHandler: scheduleHandler.GetScheduleHandler,
		SetScheduleHandler: scheduleHandler.SetScheduleHandler,

		CreateBookingHandler:        bookingHandler.CreateBookingHandler,
		CancelBookingHandler:        bookingHandler.CancelBookingHandler,
		UpdateBookingStatusHandler:  bookingHandler.UpdateBookingStatusHandler,
		ListProviderBookingsHandler: bookingHandler.ListProviderBookingsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers and health monitoring.
	cron.InitRefreshWorker(availabilityService, schedRepo)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
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

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
