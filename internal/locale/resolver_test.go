package locale

import (
	"context"
	"errors"
	"testing"

	"github.com/naturalclinic/flightbooking/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Preference(ctx context.Context, visitorID string) (*prefs.Preference, error) {
	args := m.Called(ctx, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prefs.Preference), args.Error(1)
}

func (m *MockStore) Save(ctx context.Context, visitorID string, pref prefs.Preference) error {
	args := m.Called(ctx, visitorID, pref)
	return args.Error(0)
}

type MockGeo struct {
	mock.Mock
}

func (m *MockGeo) CountryCode(ctx context.Context, ip string) (string, error) {
	args := m.Called(ctx, ip)
	return args.String(0), args.Error(1)
}

func TestResolver_StoredPreferenceWins(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(&prefs.Preference{Locale: "de", Currency: "EUR"}, nil)

	r := NewResolver(store, geo, "en", "USD")
	res := r.Resolve(context.Background(), "v1", Signals{BrowserLanguage: "tr-TR", TimezoneID: "Europe/Istanbul"})

	assert.Equal(t, Resolved{Locale: "de", Currency: "EUR"}, res)
	// stored preference skips all signal collection, including the lookup
	geo.AssertNotCalled(t, "CountryCode", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolver_GeoLookupAuthoritative(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil)
	geo.On("CountryCode", mock.Anything, "1.2.3.4").Return("TR", nil)
	store.On("Save", mock.Anything, "v1", prefs.Preference{Locale: "tr", Currency: "TRY"}).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	// timezone would say GB, but the lookup outranks it
	res := r.Resolve(context.Background(), "v1", Signals{ClientIP: "1.2.3.4", TimezoneID: "Europe/London"})

	assert.Equal(t, Resolved{Locale: "tr", Currency: "TRY"}, res)
	store.AssertExpectations(t)
}

func TestResolver_GeoFailureFallsBackToTimezone(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil)
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("", errors.New("timeout"))
	store.On("Save", mock.Anything, "v1", prefs.Preference{Locale: "tr", Currency: "TRY"}).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	res := r.Resolve(context.Background(), "v1", Signals{TimezoneID: "Europe/Istanbul", BrowserLanguage: "en-GB"})

	assert.Equal(t, Resolved{Locale: "tr", Currency: "TRY"}, res)
}

func TestResolver_UnsupportedLocaleKeepsCurrency(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, mock.Anything).Return(nil, nil)
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("", errors.New("unreachable"))
	store.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	// Paris maps to FR: currency EUR, locale table says "en" for FR, so the
	// supported-set collapse never fires here; use a french browser tag with
	// no country to exercise it instead.
	res := r.Resolve(context.Background(), "v1", Signals{TimezoneID: "Europe/Paris"})
	assert.Equal(t, Resolved{Locale: "en", Currency: "EUR"}, res)

	res2 := r.Resolve(context.Background(), "v2", Signals{BrowserLanguage: "fr-FR"})
	assert.Equal(t, Resolved{Locale: "en", Currency: "USD"}, res2)
}

func TestResolver_BrowserLanguageFallback(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil)
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("", errors.New("down"))
	store.On("Save", mock.Anything, "v1", prefs.Preference{Locale: "ru", Currency: "USD"}).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	res := r.Resolve(context.Background(), "v1", Signals{BrowserLanguage: "ru-RU", TimezoneID: "Antarctica/Troll"})

	assert.Equal(t, Resolved{Locale: "ru", Currency: "USD"}, res)
	store.AssertExpectations(t)
}

func TestResolver_NoSignalsDefaultsStillPersisted(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil)
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("", errors.New("down"))
	store.On("Save", mock.Anything, "v1", prefs.Preference{Locale: "en", Currency: "USD"}).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	res := r.Resolve(context.Background(), "v1", Signals{})

	assert.Equal(t, Resolved{Locale: "en", Currency: "USD"}, res)
	store.AssertExpectations(t)
}

func TestResolver_StoreFailuresAreContained(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, errors.New("redis down"))
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("", errors.New("down"))
	store.On("Save", mock.Anything, "v1", mock.Anything).Return(errors.New("redis down"))

	r := NewResolver(store, geo, "en", "USD")
	res := r.Resolve(context.Background(), "v1", Signals{})

	assert.Equal(t, Resolved{Locale: "en", Currency: "USD"}, res)
}

func TestResolver_SecondCallUsesCache(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil).Once()
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("TR", nil).Once()
	store.On("Save", mock.Anything, "v1", mock.Anything).Return(nil).Once()

	r := NewResolver(store, geo, "en", "USD")
	first := r.Resolve(context.Background(), "v1", Signals{})
	second := r.Resolve(context.Background(), "v1", Signals{TimezoneID: "Europe/London"})

	assert.Equal(t, first, second)
	geo.AssertNumberOfCalls(t, "CountryCode", 1)
}

func TestResolver_ForgetClearsCachedDecision(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Preference", mock.Anything, "v1").Return(nil, nil)
	geo.On("CountryCode", mock.Anything, mock.Anything).Return("TR", nil)
	store.On("Save", mock.Anything, "v1", mock.Anything).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	r.Resolve(context.Background(), "v1", Signals{})
	r.Forget("v1")
	r.Resolve(context.Background(), "v1", Signals{})

	geo.AssertNumberOfCalls(t, "CountryCode", 2)
}

func TestResolver_OverrideSharesWritePath(t *testing.T) {
	store := &MockStore{}
	geo := &MockGeo{}
	store.On("Save", mock.Anything, "v1", prefs.Preference{Locale: "ar", Currency: "AED"}).Return(nil)

	r := NewResolver(store, geo, "en", "USD")
	err := r.Override(context.Background(), "v1", Resolved{Locale: "ar", Currency: "AED"})

	assert.NoError(t, err)
	// the override is now the cached session decision
	res := r.Resolve(context.Background(), "v1", Signals{TimezoneID: "Europe/Moscow"})
	assert.Equal(t, Resolved{Locale: "ar", Currency: "AED"}, res)
	store.AssertExpectations(t)
	geo.AssertNotCalled(t, "CountryCode", mock.Anything, mock.Anything)
}
