package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Domenick1991/airtickets/api"
	"github.com/Domenick1991/airtickets/config"
	"github.com/Domenick1991/airtickets/internal/auth"
	"github.com/Domenick1991/airtickets/internal/bootstrap"
	"github.com/Domenick1991/airtickets/internal/cache"
	"github.com/Domenick1991/airtickets/internal/kafka"
	"github.com/Domenick1991/airtickets/internal/mail"
	"github.com/Domenick1991/airtickets/internal/repository"
	"github.com/Domenick1991/airtickets/internal/service/account"
	"github.com/Domenick1991/airtickets/internal/service/flights"
	"github.com/Domenick1991/airtickets/internal/service/tickets"
	"github.com/Domenick1991/airtickets/internal/template"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	renderer, err := template.NewHTMLRenderer()
	if err != nil {
		logger.Fatal("load templates", zap.Error(err))
	}
	mailer := mail.NewSMTPDispatcher(cfg.SMTP, logger)
	verifier := auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.TokenTTL())

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	flightService := flights.NewFlightService(flightRepo, seatRepo, redisCache, cfg.Flights.SeatPlan, logger)
	ticketService := tickets.NewTicketService(flightRepo, renderer, mailer, producer, cfg.Kafka.NotificationsTopic, logger)
	accountService := account.NewAccountService(userRepo, renderer, mailer, producer, cfg.Kafka.NotificationsTopic, logger)

	router := api.NewRouter(verifier, cfg.Auth.RequiredRole, flightService, ticketService, accountService)

	if err := bootstrap.Run(ctx, cfg, logger, router); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
