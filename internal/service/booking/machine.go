package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/naturalclinic/flightbooking/internal/domain"
)

type Step string

const (
	// StepNoOffer is the terminal error state entered when no offer token is
	// present or the token is malformed. The only exit is leaving the flow.
	StepNoOffer       Step = "NO_OFFER"
	StepPassengerInfo Step = "PASSENGER_INFO"
	StepPayment       Step = "PAYMENT"
	StepConfirmed     Step = "CONFIRMED"
)

type Event string

const (
	EventContinue         Event = "CONTINUE"
	EventBack             Event = "BACK"
	EventPaymentSucceeded Event = "PAYMENT_SUCCEEDED"
)

type ErrorKind string

const (
	ErrorOfferMalformed ErrorKind = "OFFER_MALFORMED"
	ErrorPaymentFailed  ErrorKind = "PAYMENT_FAILED"
)

var (
	ErrSessionNotFound      = errors.New("booking session not found")
	ErrIncompletePassengers = errors.New("passenger details are incomplete")
	ErrPaymentInFlight      = errors.New("payment already in flight")
	ErrInvalidTransition    = errors.New("invalid transition")
)

// Session is the aggregate the booking flow owns: the immutable selected
// offer, the passenger list, and the current step. It is created when an
// offer token crosses the navigation boundary and destroyed when the visitor
// leaves the flow.
type Session struct {
	ID              string                   `json:"id"`
	Offer           *domain.FlightOffer      `json:"offer,omitempty"`
	Passengers      []domain.PassengerRecord `json:"passengers"`
	Step            Step                     `json:"step"`
	PaymentInFlight bool                     `json:"paymentInFlight"`
	Reference       string                   `json:"reference,omitempty"`
	LastError       ErrorKind                `json:"lastError,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// CanContinue is the PassengerInfo→Payment guard: every passenger on the
// list must be complete, not just the primary one. It is a pure function of
// current state, recomputed on every read.
func (s *Session) CanContinue() bool {
	return s.Step == StepPassengerInfo && AllComplete(s.Passengers)
}

func (s *Session) clone() *Session {
	out := *s
	out.Passengers = append([]domain.PassengerRecord(nil), s.Passengers...)
	return &out
}

// AllComplete reports whether every passenger record satisfies the
// mandatory-field invariant. An empty list has no one to fly and fails.
func AllComplete(passengers []domain.PassengerRecord) bool {
	if len(passengers) == 0 {
		return false
	}
	for _, p := range passengers {
		if !p.Complete() {
			return false
		}
	}
	return true
}

// Transition is the pure state-transition function. It either returns the
// next state or refuses with an error, leaving the input untouched. NoOffer
// and Confirmed are terminal; every event is refused there.
func Transition(s Session, ev Event) (Session, error) {
	switch s.Step {
	case StepPassengerInfo:
		if ev == EventContinue {
			if !AllComplete(s.Passengers) {
				return s, ErrIncompletePassengers
			}
			s.Step = StepPayment
			return s, nil
		}
	case StepPayment:
		switch ev {
		case EventBack:
			if s.PaymentInFlight {
				return s, ErrPaymentInFlight
			}
			s.Step = StepPassengerInfo
			return s, nil
		case EventPaymentSucceeded:
			s.Step = StepConfirmed
			return s, nil
		}
	}
	return s, fmt.Errorf("%w: %s in step %s", ErrInvalidTransition, ev, s.Step)
}
