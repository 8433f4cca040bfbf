// Package i18n exposes the translation lookup and currency formatting tied
// to a resolved locale.
package i18n

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

//go:embed messages/*.toml
var messagesFS embed.FS

var currencySymbols = map[string]string{
	"TRY": "₺",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"AED": "د.إ",
	"SAR": "﷼",
	"RUB": "₽",
}

// Symbol returns the display symbol for a currency code. An unknown code is
// its own symbol; currencies are never validated against a supported set.
func Symbol(code string) string {
	if sym, ok := currencySymbols[code]; ok {
		return sym
	}
	return code
}

// Service owns the message bundle, loaded once at startup and never mutated.
type Service struct {
	bundle        *i18n.Bundle
	defaultLocale string
}

func NewService(defaultLocale string) (*Service, error) {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := messagesFS.ReadDir("messages")
	if err != nil {
		return nil, fmt.Errorf("list message files: %w", err)
	}
	for _, entry := range entries {
		data, err := messagesFS.ReadFile("messages/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read message file %s: %w", entry.Name(), err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, entry.Name()); err != nil {
			return nil, fmt.Errorf("parse message file %s: %w", entry.Name(), err)
		}
	}

	return &Service{bundle: bundle, defaultLocale: defaultLocale}, nil
}

// ForLocale builds a Translator bound to the session's resolved locale and
// currency.
func (s *Service) ForLocale(locale, currency string) *Translator {
	return &Translator{
		localizer: i18n.NewLocalizer(s.bundle, locale, s.defaultLocale),
		locale:    locale,
		currency:  currency,
	}
}

type Translator struct {
	localizer *i18n.Localizer
	locale    string
	currency  string
}

// Translate looks the key up in the session locale, then the default locale,
// and finally returns the key itself. It never returns an empty string.
func (t *Translator) Translate(key string) string {
	msg, _ := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if msg == "" {
		return key
	}
	return msg
}

// FormatPrice renders an amount with exactly two fraction digits and the
// conventional symbol for the currency. When currencyCode is empty the
// session's resolved currency is used. Turkish sessions get Turkish digit
// grouping; every other locale formats the en-US way.
func (t *Translator) FormatPrice(amount float64, currencyCode string) string {
	code := currencyCode
	if code == "" {
		code = t.currency
	}

	tag := language.AmericanEnglish
	if t.locale == "tr" {
		tag = language.Turkish
	}
	p := message.NewPrinter(tag)
	formatted := p.Sprint(number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))

	if sym, ok := currencySymbols[code]; ok {
		return sym + formatted
	}
	return code + " " + formatted
}

// Locale returns the locale the translator is bound to.
func (t *Translator) Locale() string { return t.locale }

// Currency returns the session currency used when no explicit code is given.
func (t *Translator) Currency() string { return t.currency }
