package locale

// The mapping tables are static and total over a finite key set; a missing
// key means the signal has no opinion, not that resolution failed.

var countryLocale = map[string]string{
	"TR": "tr",
	"US": "en",
	"GB": "en",
	"AU": "en",
	"CA": "en",
	"DE": "de",
	"AT": "de",
	"CH": "de",
	"FR": "en", // no French translations yet
	"AE": "ar",
	"SA": "ar",
	"RU": "ru",
}

var countryCurrency = map[string]string{
	"TR": "TRY",
	"US": "USD",
	"GB": "GBP",
	"DE": "EUR",
	"FR": "EUR",
	"IT": "EUR",
	"ES": "EUR",
	"NL": "EUR",
	"BE": "EUR",
	"AT": "EUR",
	"AE": "AED",
	"SA": "SAR",
	"RU": "RUB",
}

// timezoneCountry maps a city substring of an IANA timezone id to a country.
// Evaluated in order, first match wins.
var timezoneCountry = []struct {
	substr  string
	country string
}{
	{"Istanbul", "TR"},
	{"Turkey", "TR"},
	{"London", "GB"},
	{"Berlin", "DE"},
	{"Vienna", "DE"},
	{"Zurich", "DE"},
	{"Paris", "FR"},
	{"Dubai", "AE"},
	{"Riyadh", "SA"},
	{"Moscow", "RU"},
	{"New_York", "US"},
	{"Los_Angeles", "US"},
	{"Chicago", "US"},
}

var supportedLocales = map[string]bool{
	"en": true,
	"tr": true,
	"de": true,
	"ar": true,
	"ru": true,
}

// IsSupported reports whether translations exist for the given locale code.
func IsSupported(code string) bool {
	return supportedLocales[code]
}

// SupportedLocales lists the locale codes the translation tables cover.
func SupportedLocales() []string {
	return []string{"en", "tr", "de", "ar", "ru"}
}
