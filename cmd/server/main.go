package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-room-allocator/internal/allocator"
	"github.com/iliyamo/hotel-room-allocator/internal/config"
	"github.com/iliyamo/hotel-room-allocator/internal/handler"
	"github.com/iliyamo/hotel-room-allocator/internal/inventory"
	"github.com/iliyamo/hotel-room-allocator/internal/middleware"
	"github.com/iliyamo/hotel-room-allocator/internal/queue"
	"github.com/iliyamo/hotel-room-allocator/internal/router"
	"github.com/iliyamo/hotel-room-allocator/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional

	cfg := config.Load()
	logger, err := config.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	hotel, err := config.LoadHotelConfig()
	if err != nil {
		logger.Fatal("invalid hotel configuration", zap.Error(err))
	}
	inv := inventory.New(hotel.Floors, hotel.RoomsPerFloor)
	alloc := allocator.New(inv,
		allocator.WithCostModel(allocator.CostModel{VStep: hotel.VStep, HStep: hotel.HStep}),
		allocator.WithLogger(logger.Named("allocator")),
	)
	logger.Info("inventory ready", zap.Int("floors", hotel.Floors), zap.Int("rooms", inv.Len()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var publisher handler.BookingPublisher
	if cfg.QueueEnabled {
		qp := service.NewQueuePublisher(cfg.AMQPURL, logger.Named("publisher"))
		defer qp.Close()
		publisher = qp
		consumer := &queue.Consumer{URL: cfg.AMQPURL, LogDir: "logs", Log: logger.Named("booking-consumer")}
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("booking consumer stopped", zap.Error(err))
			}
		}()
	}

	rdb := config.NewRedisClient(logger)
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger.Named("http")))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, &handler.AuthHandler{
		AdminUser:         cfg.AdminUser,
		AdminPasswordHash: cfg.AdminPasswordHash,
		JWTSecret:         cfg.JWTSecret,
		AccessTTLMin:      cfg.AccessTTLMin,
		Log:               logger.Named("auth"),
	})
	router.RegisterPublic(e,
		&handler.RoomsHandler{Alloc: alloc},
		handler.NewBookingHandler(alloc, publisher, logger.Named("booking")),
		cacheMW, limitMW,
	)
	router.RegisterAdmin(e, &handler.AdminHandler{
		Alloc:              alloc,
		DefaultProbability: hotel.Probability,
		Log:                logger.Named("admin"),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
