package booking

import (
	"regexp"
	"testing"

	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
)

func completePassenger() domain.PassengerRecord {
	return domain.PassengerRecord{
		FirstName:   "Ada",
		LastName:    "Yilmaz",
		Email:       "ada@example.com",
		Phone:       "+90 555 123 4567",
		DateOfBirth: "1990-04-12",
	}
}

func TestAllComplete(t *testing.T) {
	first := completePassenger()
	second := completePassenger()

	assert.True(t, AllComplete([]domain.PassengerRecord{first, second}))

	// the guard covers every passenger, not just the primary one
	second.Email = ""
	assert.False(t, AllComplete([]domain.PassengerRecord{first, second}))

	assert.False(t, AllComplete(nil))
	assert.False(t, AllComplete([]domain.PassengerRecord{{}}))
}

func TestAllComplete_OptionalFieldsMayBeEmpty(t *testing.T) {
	p := completePassenger()
	p.PassportNumber = ""
	p.Nationality = ""

	assert.True(t, AllComplete([]domain.PassengerRecord{p}))
}

func TestTransition_ContinueGuard(t *testing.T) {
	s := Session{Step: StepPassengerInfo, Passengers: []domain.PassengerRecord{completePassenger()}}

	next, err := Transition(s, EventContinue)
	assert.NoError(t, err)
	assert.Equal(t, StepPayment, next.Step)

	incomplete := completePassenger()
	incomplete.DateOfBirth = ""
	s.Passengers = append(s.Passengers, incomplete)

	refused, err := Transition(s, EventContinue)
	assert.ErrorIs(t, err, ErrIncompletePassengers)
	assert.Equal(t, StepPassengerInfo, refused.Step)
}

func TestTransition_BackIsUnconditionalWhileNotInFlight(t *testing.T) {
	s := Session{Step: StepPayment}

	next, err := Transition(s, EventBack)
	assert.NoError(t, err)
	assert.Equal(t, StepPassengerInfo, next.Step)

	s.PaymentInFlight = true
	_, err = Transition(s, EventBack)
	assert.ErrorIs(t, err, ErrPaymentInFlight)
}

func TestTransition_PaymentSucceeded(t *testing.T) {
	s := Session{Step: StepPayment}

	next, err := Transition(s, EventPaymentSucceeded)
	assert.NoError(t, err)
	assert.Equal(t, StepConfirmed, next.Step)
}

func TestTransition_TerminalStates(t *testing.T) {
	for _, step := range []Step{StepNoOffer, StepConfirmed} {
		for _, ev := range []Event{EventContinue, EventBack, EventPaymentSucceeded} {
			s := Session{Step: step}
			next, err := Transition(s, ev)
			assert.ErrorIs(t, err, ErrInvalidTransition, "step %s event %s", step, ev)
			assert.Equal(t, step, next.Step)
		}
	}
}

func TestTransition_SkippingForwardIsRefused(t *testing.T) {
	s := Session{Step: StepPassengerInfo, Passengers: []domain.PassengerRecord{completePassenger()}}

	_, err := Transition(s, EventPaymentSucceeded)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCanContinue(t *testing.T) {
	s := Session{Step: StepPassengerInfo, Passengers: []domain.PassengerRecord{completePassenger()}}
	assert.True(t, s.CanContinue())

	s.Step = StepPayment
	assert.False(t, s.CanContinue())
}

func TestBreakdown(t *testing.T) {
	b := Breakdown(domain.Price{Base: "250.00", Total: "285.00", Currency: "USD"})

	assert.InDelta(t, 250.0, b.Base, 1e-9)
	assert.InDelta(t, 35.0, b.TaxesAndFees, 1e-9)
	assert.InDelta(t, 285.0, b.Total, 1e-9)
	assert.Equal(t, "USD", b.Currency)
}

func TestBreakdown_UnparsableAmountsCountAsZero(t *testing.T) {
	b := Breakdown(domain.Price{Base: "n/a", Total: "285.00", Currency: "USD"})

	assert.InDelta(t, 0.0, b.Base, 1e-9)
	assert.InDelta(t, 285.0, b.TaxesAndFees, 1e-9)
	assert.InDelta(t, 285.0, b.Total, 1e-9)
}

func TestNewReference(t *testing.T) {
	pattern := regexp.MustCompile(`^NC[A-Z0-9]{6}$`)
	for i := 0; i < 50; i++ {
		assert.Regexp(t, pattern, NewReference("NC"))
	}
}
