package main // Entry point package

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flight-booking-session/internal/booking"
	"github.com/iliyamo/flight-booking-session/internal/config"
	"github.com/iliyamo/flight-booking-session/internal/database"
	"github.com/iliyamo/flight-booking-session/internal/handler"
	"github.com/iliyamo/flight-booking-session/internal/middleware"
	"github.com/iliyamo/flight-booking-session/internal/queue"
	"github.com/iliyamo/flight-booking-session/internal/repository"
	"github.com/iliyamo/flight-booking-session/internal/router"
	queuepublisher "github.com/iliyamo/flight-booking-session/internal/service"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	defer db.Close()

	rdb, err := config.NewRedisClient()
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer rdb.Close()

	// Ledgers and stores.
	seatLedger := repository.NewSeatLedgerRepo(db)
	inventory := repository.NewServiceInventoryRepo(db)
	flights := repository.NewFlightRepo(db)
	offers := repository.NewServiceOfferRepo(db)
	sessions := repository.NewSessionRepo(rdb)

	// Booking core.
	sessionTTL := time.Duration(cfg.SessionTTLMin) * time.Minute
	holdWindow := time.Duration(cfg.HoldTTLMin) * time.Minute
	manager := booking.NewManager(sessions, seatLedger, inventory, flights, sessionTTL,
		booking.EventPublisherFunc(queuepublisher.PublishSessionClosed))
	seatSelector := booking.NewSeatSelector(manager, seatLedger, holdWindow)
	serviceSelector := booking.NewServiceSelector(manager, inventory, offers)

	// Background workers: the reaper reclaims expired holds and
	// sessions; the consumer mirrors close events into logs/session.log.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reaper := booking.NewReaper(manager, seatLedger, sessions, time.Duration(cfg.ReaperIntervalSec)*time.Second)
	go reaper.Run(ctx)
	go func() {
		if err := queue.StartSessionConsumer(); err != nil {
			log.Printf("session-consumer stopped: %v", err)
		}
	}()

	// HTTP surface.
	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterPublic(e, handler.NewPublicHandler(seatLedger, offers))
	router.RegisterSessions(e,
		handler.NewSessionHandler(manager),
		handler.NewSeatSelectionHandler(seatSelector),
		handler.NewServiceSelectionHandler(serviceSelector),
		middleware.OptionalAuth(cfg.JWTSecret),
		middleware.NewFixedWindow(config.LoadRateLimitConfig(), rdb),
	)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, hold=%dm, session=%dm)", addr, cfg.Env, cfg.HoldTTLMin, cfg.SessionTTLMin)

	go func() {
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
