package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cinehub/ticket-booking/internal/booking"
	"github.com/cinehub/ticket-booking/internal/config"
	"github.com/cinehub/ticket-booking/internal/database"
	"github.com/cinehub/ticket-booking/internal/handler"
	"github.com/cinehub/ticket-booking/internal/queue"
	"github.com/cinehub/ticket-booking/internal/repository"
	"github.com/cinehub/ticket-booking/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments use the environment

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	seats := repository.NewSeatRepo(db)
	members := repository.NewMemberRepo(db)
	records := repository.NewBookingRepo(db)
	showings := repository.NewShowingRepo(db)
	catalog := repository.NewCatalogRepo(db)
	tokens := repository.NewTokenRepo(db)

	coordinator := booking.NewCoordinator(db, seats, members, records, nil)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e, cfg, rdb,
		handler.NewAuthHandler(cfg, members, tokens),
		&handler.PublicHandler{Showings: showings, Seats: seats},
		handler.NewBookingHandler(coordinator, records),
		handler.NewWalletHandler(members),
		handler.NewCatalogHandler(catalog),
		handler.NewAdminHandler(showings, seats),
	)

	go func() {
		if err := queue.StartConsumer(); err != nil {
			log.Printf("booking-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
