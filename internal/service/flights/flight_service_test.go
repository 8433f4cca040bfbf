package flights

import (
	"context"
	"errors"
	"testing"

	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) SearchFlights(ctx context.Context, params upstream.SearchParams) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

func (m *MockAPI) SearchAirports(ctx context.Context, query string) ([]domain.Airport, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Airport), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetOffers(ctx context.Context, key string) ([]domain.FlightOffer, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FlightOffer), args.Error(1)
}

func (m *MockCache) SetOffers(ctx context.Context, key string, offers []domain.FlightOffer) error {
	args := m.Called(ctx, key, offers)
	return args.Error(0)
}

func sampleOffers() []domain.FlightOffer {
	return []domain.FlightOffer{{ID: "offer-1", Price: domain.Price{Total: "285.00", Currency: "USD"}}}
}

func sampleParams() upstream.SearchParams {
	return upstream.SearchParams{OriginCode: "IST", DestinationCode: "LHR", DepartureDate: "2026-09-14", TripType: "one_way", Adults: 1}
}

func TestSearch_CacheHit(t *testing.T) {
	api := &MockAPI{}
	cache := &MockCache{}
	cache.On("GetOffers", mock.Anything, mock.Anything).Return(sampleOffers(), nil)

	svc := NewFlightService(api, cache)
	offers, err := svc.Search(context.Background(), sampleParams())

	assert.NoError(t, err)
	assert.Len(t, offers, 1)
	api.AssertNotCalled(t, "SearchFlights", mock.Anything, mock.Anything)
}

func TestSearch_CacheMissHitsUpstream(t *testing.T) {
	api := &MockAPI{}
	cache := &MockCache{}
	cache.On("GetOffers", mock.Anything, mock.Anything).Return(nil, nil)
	api.On("SearchFlights", mock.Anything, sampleParams()).Return(sampleOffers(), nil)
	cache.On("SetOffers", mock.Anything, mock.Anything, sampleOffers()).Return(nil)

	svc := NewFlightService(api, cache)
	offers, err := svc.Search(context.Background(), sampleParams())

	assert.NoError(t, err)
	assert.Equal(t, "offer-1", offers[0].ID)
	cache.AssertExpectations(t)
}

func TestSearch_CacheFailureFallsThrough(t *testing.T) {
	api := &MockAPI{}
	cache := &MockCache{}
	cache.On("GetOffers", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	api.On("SearchFlights", mock.Anything, mock.Anything).Return(sampleOffers(), nil)
	cache.On("SetOffers", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := NewFlightService(api, cache)
	offers, err := svc.Search(context.Background(), sampleParams())

	assert.NoError(t, err)
	assert.Len(t, offers, 1)
}

func TestSearch_UpstreamError(t *testing.T) {
	api := &MockAPI{}
	api.On("SearchFlights", mock.Anything, mock.Anything).Return(nil, errors.New("upstream down"))

	svc := NewFlightService(api, nil)
	_, err := svc.Search(context.Background(), sampleParams())

	assert.Error(t, err)
}

func TestSearchKey_DependsOnParams(t *testing.T) {
	a := searchKey(sampleParams())

	other := sampleParams()
	other.ReturnDate = "2026-09-21"
	other.TripType = "round_trip"

	assert.NotEqual(t, a, searchKey(other))
	assert.Equal(t, a, searchKey(sampleParams()))
}

func TestAirports(t *testing.T) {
	api := &MockAPI{}
	api.On("SearchAirports", mock.Anything, "ist").Return([]domain.Airport{{IATACode: "IST", City: "Istanbul"}}, nil)

	svc := NewFlightService(api, nil)
	airports, err := svc.Airports(context.Background(), "ist")

	assert.NoError(t, err)
	assert.Equal(t, "IST", airports[0].IATACode)
}
