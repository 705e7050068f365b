package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/Domenick1991/flightdesk/api"
	"github.com/Domenick1991/flightdesk/config"
	"github.com/Domenick1991/flightdesk/internal/bootstrap"
	"github.com/Domenick1991/flightdesk/internal/cache"
	"github.com/Domenick1991/flightdesk/internal/catalog"
	"github.com/Domenick1991/flightdesk/internal/generator"
	"github.com/Domenick1991/flightdesk/internal/kafka"
	"github.com/Domenick1991/flightdesk/internal/pricing"
	"github.com/Domenick1991/flightdesk/internal/repository"
	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/wallet"
	"github.com/Domenick1991/flightdesk/internal/store"
	"github.com/Domenick1991/flightdesk/internal/worker"
)

func main() {
	_ = godotenv.Load(".env")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	localStore, err := store.New(cfg.Store.Path, cfg.Wallet.InitialBalance)
	if err != nil {
		log.Fatalf("open local store: %v", err)
	}
	defer localStore.Close()

	var sessions flights.SessionCache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, cfg.Search.SessionTTL())
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		sessions = redisCache
	} else {
		log.Printf("redis not configured, keeping search sessions in memory")
		sessions = cache.NewMemoryCache(cfg.Search.SessionTTL())
	}

	flightService := flights.NewFlightService(
		sessions,
		generator.New(nil, catalog.Airlines()),
		flights.WithPolicy(pricing.PolicyFromConfig(cfg.Pricing)),
		flights.WithCounts(cfg.Search.DefaultCount, cfg.Search.MaxCount),
	)

	var walletOpts []wallet.WalletServiceOption
	var bookingOpts []booking.BookingServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		walletOpts = append(walletOpts, wallet.WithProducer(producer, cfg.Kafka.WalletTopic))
		bookingOpts = append(bookingOpts,
			booking.WithProducer(producer, cfg.Kafka.BookingTopic),
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		)
	}

	if cfg.Database.Enabled() {
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("connect postgres: %v", err)
		}
		defer pool.Close()
		if err := repository.Migrate(ctx, pool); err != nil {
			log.Printf("WARNING: %v", err)
		}
		bookingOpts = append(bookingOpts, booking.WithRemote(repository.NewBookingRepository(pool)))
	}

	walletService := wallet.NewWalletService(localStore, walletOpts...)
	bookingOpts = append(bookingOpts, booking.WithWalletEvents(walletService))
	bookingService := booking.NewBookingService(localStore, flightService, bookingOpts...)

	limiter := api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	limiter.StartJanitor(ctx, 2*time.Minute)
	router := api.NewRouter(flightService, bookingService, walletService, limiter)

	go worker.RunRemoteSync(ctx, time.Duration(cfg.Worker.RemoteSyncMinutes)*time.Minute, bookingService)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
