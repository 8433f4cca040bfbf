package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naturalclinic/flightbooking/config"
	"github.com/naturalclinic/flightbooking/internal/bootstrap"
	"github.com/naturalclinic/flightbooking/internal/cache"
	"github.com/naturalclinic/flightbooking/internal/geoip"
	"github.com/naturalclinic/flightbooking/internal/i18n"
	"github.com/naturalclinic/flightbooking/internal/kafka"
	"github.com/naturalclinic/flightbooking/internal/locale"
	"github.com/naturalclinic/flightbooking/internal/payment"
	"github.com/naturalclinic/flightbooking/internal/prefs"
	"github.com/naturalclinic/flightbooking/internal/service/booking"
	"github.com/naturalclinic/flightbooking/internal/service/flights"
	"github.com/naturalclinic/flightbooking/internal/upstream"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	texts, err := i18n.NewService(cfg.Locale.DefaultLocale)
	if err != nil {
		log.Fatalf("load translations: %v", err)
	}

	prefStore := prefs.NewRedisStore(cfg.Redis)
	geoClient := geoip.NewClient(cfg.Locale.GeoEndpoint, time.Duration(cfg.Locale.GeoTimeoutSeconds)*time.Second)
	resolver := locale.NewResolver(prefStore, geoClient, cfg.Locale.DefaultLocale, cfg.Locale.DefaultCurrency)

	searchCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.SearchCacheTTL)*time.Second)
	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, time.Duration(cfg.Upstream.TimeoutSeconds)*time.Second)
	flightService := flights.NewFlightService(upstreamClient, searchCache)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	processor := payment.NewSimulator(time.Duration(cfg.Booking.PaymentLatencySeconds) * time.Second)
	bookingService := booking.NewSessionService(
		processor,
		cfg.Booking.ReferencePrefix,
		booking.WithProducer(producer),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, flightService, bookingService, resolver, texts); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
