package flights

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/upstream"
)

type FlightUseCase interface {
	Search(ctx context.Context, params upstream.SearchParams) ([]domain.FlightOffer, error)
	Airports(ctx context.Context, query string) ([]domain.Airport, error)
}

type Cache interface {
	GetOffers(ctx context.Context, key string) ([]domain.FlightOffer, error)
	SetOffers(ctx context.Context, key string, offers []domain.FlightOffer) error
}

type FlightService struct {
	api   upstream.API
	cache Cache
}

func NewFlightService(api upstream.API, cache Cache) *FlightService {
	return &FlightService{api: api, cache: cache}
}

// Search proxies the upstream search with a cache-aside lookup keyed by the
// search parameters. Cache failures are ignored; the upstream answer wins.
func (s *FlightService) Search(ctx context.Context, params upstream.SearchParams) ([]domain.FlightOffer, error) {
	key := searchKey(params)
	if s.cache != nil {
		if cached, err := s.cache.GetOffers(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	offers, err := s.api.SearchFlights(ctx, params)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetOffers(ctx, key, offers)
	}
	return offers, nil
}

func (s *FlightService) Airports(ctx context.Context, query string) ([]domain.Airport, error) {
	return s.api.SearchAirports(ctx, query)
}

func searchKey(p upstream.SearchParams) string {
	raw := fmt.Sprintf("%s:%s:%s:%s:%s:%d:%d:%d:%s",
		p.OriginCode, p.DestinationCode, p.DepartureDate, p.ReturnDate,
		p.TripType, p.Adults, p.Children, p.Infants, p.CabinClass)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:16])
}

var _ FlightUseCase = (*FlightService)(nil)
