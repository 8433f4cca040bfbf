package bootstrap

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/naturalclinic/flightbooking/api"
	"github.com/naturalclinic/flightbooking/config"
	"github.com/naturalclinic/flightbooking/internal/i18n"
	"github.com/naturalclinic/flightbooking/internal/locale"
	"github.com/naturalclinic/flightbooking/internal/service/booking"
	"github.com/naturalclinic/flightbooking/internal/service/flights"
)

// Run starts the HTTP server and the idle-session sweeper and blocks until
// the context is canceled or the server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	flightSvc flights.FlightUseCase,
	bookingSvc booking.BookingUseCase,
	resolver locale.ResolverUseCase,
	texts *i18n.Service,
) error {
	router := gin.Default()

	api.NewLocaleHandler(resolver).Register(router.Group("/locale"))

	flightHandler := api.NewFlightHandler(flightSvc)
	flightHandler.Register(router.Group("/flights"))
	flightHandler.RegisterAirports(router.Group("/airports"))

	api.NewSessionHandler(bookingSvc, resolver, texts).Register(router.Group("/bookings/sessions"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	sweepInterval := time.Duration(cfg.Booking.SweepMinutes) * time.Minute
	sessionTTL := time.Duration(cfg.Booking.SessionTTLMinutes) * time.Minute
	go sweepSessions(ctx, bookingSvc, sweepInterval, sessionTTL)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func sweepSessions(ctx context.Context, bookingSvc booking.BookingUseCase, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := bookingSvc.ExpireIdleSessions(ctx, ttl); removed > 0 {
				log.Printf("expired %d idle booking sessions", removed)
			}
		case <-ctx.Done():
			return
		}
	}
}
