package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naturalclinic/flightbooking/internal/i18n"
	"github.com/naturalclinic/flightbooking/internal/locale"
)

type LocaleHandler struct {
	resolver locale.ResolverUseCase
}

type localeResponse struct {
	Locale           string   `json:"locale"`
	Currency         string   `json:"currency"`
	CurrencySymbol   string   `json:"currency_symbol"`
	SupportedLocales []string `json:"supported_locales"`
}

type overrideRequest struct {
	Locale   string `json:"locale" binding:"required"`
	Currency string `json:"currency" binding:"required"`
}

func NewLocaleHandler(resolver locale.ResolverUseCase) *LocaleHandler {
	return &LocaleHandler{resolver: resolver}
}

func (h *LocaleHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.resolve)
	router.PUT("/", h.override)
}

func (h *LocaleHandler) resolve(c *gin.Context) {
	res := h.resolver.Resolve(c.Request.Context(), visitorID(c), requestSignals(c))
	c.JSON(http.StatusOK, localeResponse{
		Locale:           res.Locale,
		Currency:         res.Currency,
		CurrencySymbol:   i18n.Symbol(res.Currency),
		SupportedLocales: locale.SupportedLocales(),
	})
}

// override is the selector UI's explicit-choice path. The locale must be a
// supported code; the currency is taken as given.
func (h *LocaleHandler) override(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !locale.IsSupported(req.Locale) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported locale"})
		return
	}

	res := locale.Resolved{Locale: req.Locale, Currency: req.Currency}
	if err := h.resolver.Override(c.Request.Context(), visitorID(c), res); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, localeResponse{
		Locale:           res.Locale,
		Currency:         res.Currency,
		CurrencySymbol:   i18n.Symbol(res.Currency),
		SupportedLocales: locale.SupportedLocales(),
	})
}
