// Package prefs persists a visitor's explicit locale/currency choice.
package prefs

import (
	"context"
	"fmt"

	"github.com/naturalclinic/flightbooking/config"
	"github.com/redis/go-redis/v9"
)

// Preference is the stored (locale, currency) pair. Both entries must be
// present for a stored preference to count; a partial write reads as absent
// and heals on the next full resolution.
type Preference struct {
	Locale   string
	Currency string
}

type Store interface {
	Preference(ctx context.Context, visitorID string) (*Preference, error)
	Save(ctx context.Context, visitorID string, pref Preference) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
	}
}

// Preference returns the stored pair, or nil when either key is missing.
func (s *RedisStore) Preference(ctx context.Context, visitorID string) (*Preference, error) {
	values, err := s.client.MGet(ctx, localeKey(visitorID), currencyKey(visitorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read preference: %w", err)
	}

	locale, lok := values[0].(string)
	currency, cok := values[1].(string)
	if !lok || !cok || locale == "" || currency == "" {
		return nil, nil
	}
	return &Preference{Locale: locale, Currency: currency}, nil
}

// Save writes both keys independently, last write wins. There is deliberately
// no transaction across the two keys.
func (s *RedisStore) Save(ctx context.Context, visitorID string, pref Preference) error {
	if err := s.client.Set(ctx, localeKey(visitorID), pref.Locale, 0).Err(); err != nil {
		return fmt.Errorf("save preferred locale: %w", err)
	}
	if err := s.client.Set(ctx, currencyKey(visitorID), pref.Currency, 0).Err(); err != nil {
		return fmt.Errorf("save preferred currency: %w", err)
	}
	return nil
}

func localeKey(visitorID string) string {
	return fmt.Sprintf("prefs:%s:preferredLocale", visitorID)
}

func currencyKey(visitorID string) string {
	return fmt.Sprintf("prefs:%s:preferredCurrency", visitorID)
}

var _ Store = (*RedisStore)(nil)
