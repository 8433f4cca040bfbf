// Package locale resolves the display language and currency for a visitor
// from layered, partially unreliable signals. Detection is best effort; it
// never blocks or errors the booking flow.
package locale

import (
	"context"
	"log"
	"sync"

	"github.com/naturalclinic/flightbooking/internal/prefs"
)

// Resolved is the final decision for a session. Locale is always a member of
// the supported set; Currency is whatever was resolved and is never validated
// against a supported list.
type Resolved struct {
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
}

type ResolverUseCase interface {
	Resolve(ctx context.Context, visitorID string, signals Signals) Resolved
	Override(ctx context.Context, visitorID string, res Resolved) error
	Forget(visitorID string)
}

type Resolver struct {
	store           prefs.Store
	detectors       []detector
	defaultLocale   string
	defaultCurrency string

	mu    sync.Mutex
	cache map[string]Resolved
}

func NewResolver(store prefs.Store, geo GeoLookup, defaultLocale, defaultCurrency string) *Resolver {
	return &Resolver{
		store:           store,
		detectors:       []detector{geoDetector(geo), timezoneDetector},
		defaultLocale:   defaultLocale,
		defaultCurrency: defaultCurrency,
		cache:           make(map[string]Resolved),
	}
}

// Resolve picks the (locale, currency) pair for the visitor. The first call
// in a session does the work; subsequent calls return the cached decision
// without collecting signals again. Resolve never fails: every error path
// collapses to the configured defaults.
func (r *Resolver) Resolve(ctx context.Context, visitorID string, signals Signals) Resolved {
	r.mu.Lock()
	if cached, ok := r.cache[visitorID]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	res, fromStore := r.resolve(ctx, visitorID, signals)
	if !fromStore {
		// Persist even a default decision so the next session short-circuits.
		if err := r.store.Save(ctx, visitorID, prefs.Preference{Locale: res.Locale, Currency: res.Currency}); err != nil {
			log.Printf("persist locale preference for %s: %v", visitorID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// A session that ended while signals were being collected must not be
	// revived by a stale result.
	if cached, ok := r.cache[visitorID]; ok {
		return cached
	}
	r.cache[visitorID] = res
	return res
}

func (r *Resolver) resolve(ctx context.Context, visitorID string, signals Signals) (Resolved, bool) {
	// Tier 1: an explicit stored preference wins outright and skips all
	// signal collection, network lookup included.
	stored, err := r.store.Preference(ctx, visitorID)
	if err != nil {
		log.Printf("read locale preference for %s: %v", visitorID, err)
	}
	if stored != nil {
		return Resolved{Locale: stored.Locale, Currency: stored.Currency}, true
	}

	// Tier 2: country detection, first satisfied detector wins entirely.
	country := ""
	for _, detect := range r.detectors {
		if c, ok := detect(ctx, signals); ok {
			country = c
			break
		}
	}

	// Tier 3: map the country through the static tables. When no signal
	// produced a country, or the table has no opinion, the browser language
	// prefix stands in as the locale candidate.
	localeCode := countryLocale[country]
	if localeCode == "" {
		localeCode = languagePrefix(signals.BrowserLanguage)
	}
	currency := countryCurrency[country]
	if currency == "" {
		currency = r.defaultCurrency
	}

	// Language support and currency support are independent: an unsupported
	// locale collapses to the default while the resolved currency stays.
	if !IsSupported(localeCode) {
		localeCode = r.defaultLocale
	}

	return Resolved{Locale: localeCode, Currency: currency}, false
}

// Override is the explicit-choice path used by the locale/currency selector.
// It shares the persistence write with automatic resolution.
func (r *Resolver) Override(ctx context.Context, visitorID string, res Resolved) error {
	if err := r.store.Save(ctx, visitorID, prefs.Preference{Locale: res.Locale, Currency: res.Currency}); err != nil {
		return err
	}
	r.mu.Lock()
	r.cache[visitorID] = res
	r.mu.Unlock()
	return nil
}

// Forget drops the cached decision when the visitor's session ends.
func (r *Resolver) Forget(visitorID string) {
	r.mu.Lock()
	delete(r.cache, visitorID)
	r.mu.Unlock()
}

var _ ResolverUseCase = (*Resolver)(nil)
