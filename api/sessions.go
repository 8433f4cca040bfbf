package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/i18n"
	"github.com/naturalclinic/flightbooking/internal/locale"
	"github.com/naturalclinic/flightbooking/internal/service/booking"
)

type SessionHandler struct {
	service  booking.BookingUseCase
	resolver locale.ResolverUseCase
	texts    *i18n.Service
}

type startSessionRequest struct {
	OfferToken string `json:"offer_token"`
}

type passengersRequest struct {
	Passengers []domain.PassengerRecord `json:"passengers" binding:"required"`
}

type priceView struct {
	Base                float64 `json:"base"`
	TaxesAndFees        float64 `json:"taxes_and_fees"`
	Total               float64 `json:"total"`
	Currency            string  `json:"currency"`
	BaseDisplay         string  `json:"base_display"`
	TaxesAndFeesDisplay string  `json:"taxes_and_fees_display"`
	TotalDisplay        string  `json:"total_display"`
}

type sessionResponse struct {
	ID              string                   `json:"id"`
	Step            booking.Step             `json:"step"`
	CanContinue     bool                     `json:"can_continue"`
	PaymentInFlight bool                     `json:"payment_in_flight"`
	LastError       booking.ErrorKind        `json:"last_error,omitempty"`
	ErrorMessage    string                   `json:"error_message,omitempty"`
	Reference       string                   `json:"reference,omitempty"`
	Offer           *domain.FlightOffer      `json:"offer,omitempty"`
	Passengers      []domain.PassengerRecord `json:"passengers"`
	Price           *priceView               `json:"price,omitempty"`
}

func NewSessionHandler(service booking.BookingUseCase, resolver locale.ResolverUseCase, texts *i18n.Service) *SessionHandler {
	return &SessionHandler{service: service, resolver: resolver, texts: texts}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.start)
	router.GET("/:id", h.get)
	router.PUT("/:id/passengers", h.setPassengers)
	router.POST("/:id/continue", h.continueToPayment)
	router.POST("/:id/back", h.back)
	router.POST("/:id/payment", h.pay)
	router.DELETE("/:id", h.destroy)
}

func (h *SessionHandler) start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.service.StartSession(c.Request.Context(), req.OfferToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, h.view(c, sess))
}

func (h *SessionHandler) get(c *gin.Context) {
	sess, err := h.service.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, sess))
}

func (h *SessionHandler) setPassengers(c *gin.Context) {
	var req passengersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.service.SetPassengers(c.Request.Context(), c.Param("id"), req.Passengers)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, sess))
}

func (h *SessionHandler) continueToPayment(c *gin.Context) {
	sess, err := h.service.ContinueToPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, sess))
}

func (h *SessionHandler) back(c *gin.Context) {
	sess, err := h.service.BackToPassengers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, sess))
}

func (h *SessionHandler) pay(c *gin.Context) {
	sess, err := h.service.SubmitPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.view(c, sess))
}

func (h *SessionHandler) destroy(c *gin.Context) {
	if err := h.service.DestroySession(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	h.resolverForgetIfLast(c)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) resolverForgetIfLast(c *gin.Context) {
	// Leaving the flow ends the session context; the cached locale decision
	// goes with it so the next visit resolves fresh.
	h.resolver.Forget(visitorID(c))
}

func (h *SessionHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrIncompletePassengers):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrPaymentInFlight), errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

// view renders the session with display strings in the visitor's resolved
// locale and currency.
func (h *SessionHandler) view(c *gin.Context, sess *booking.Session) sessionResponse {
	res := h.resolver.Resolve(c.Request.Context(), visitorID(c), requestSignals(c))
	tr := h.texts.ForLocale(res.Locale, res.Currency)

	out := sessionResponse{
		ID:              sess.ID,
		Step:            sess.Step,
		CanContinue:     sess.CanContinue(),
		PaymentInFlight: sess.PaymentInFlight,
		LastError:       sess.LastError,
		Reference:       sess.Reference,
		Offer:           sess.Offer,
		Passengers:      sess.Passengers,
	}

	switch sess.LastError {
	case booking.ErrorOfferMalformed:
		out.ErrorMessage = tr.Translate("invalidFlightData")
	case booking.ErrorPaymentFailed:
		out.ErrorMessage = tr.Translate("paymentFailed")
	}

	if sess.Offer != nil {
		b := booking.Breakdown(sess.Offer.Price)
		out.Price = &priceView{
			Base:                b.Base,
			TaxesAndFees:        b.TaxesAndFees,
			Total:               b.Total,
			Currency:            b.Currency,
			BaseDisplay:         tr.FormatPrice(b.Base, b.Currency),
			TaxesAndFeesDisplay: tr.FormatPrice(b.TaxesAndFees, b.Currency),
			TotalDisplay:        tr.FormatPrice(b.Total, b.Currency),
		}
	}
	return out
}
