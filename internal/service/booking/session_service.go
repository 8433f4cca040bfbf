package booking

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naturalclinic/flightbooking/internal/domain"
	"github.com/naturalclinic/flightbooking/internal/kafka"
	"github.com/naturalclinic/flightbooking/internal/offer"
	"github.com/naturalclinic/flightbooking/internal/payment"
)

type BookingUseCase interface {
	StartSession(ctx context.Context, offerToken string) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	SetPassengers(ctx context.Context, id string, passengers []domain.PassengerRecord) (*Session, error)
	ContinueToPayment(ctx context.Context, id string) (*Session, error)
	BackToPassengers(ctx context.Context, id string) (*Session, error)
	SubmitPayment(ctx context.Context, id string) (*Session, error)
	DestroySession(ctx context.Context, id string) error
	ExpireIdleSessions(ctx context.Context, olderThan time.Duration) int
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// SessionService owns the live booking sessions. Transitions are processed
// one at a time under the service mutex; the PaymentInFlight flag is the
// single-slot exclusion for the charge itself, which runs outside the lock.
type SessionService struct {
	processor          payment.Processor
	producer           Producer
	notificationsTopic string
	referencePrefix    string

	mu       sync.Mutex
	sessions map[string]*Session
}

type SessionServiceOption func(*SessionService)

func WithProducer(producer Producer) SessionServiceOption {
	return func(s *SessionService) {
		s.producer = producer
	}
}

func WithNotificationsTopic(topic string) SessionServiceOption {
	return func(s *SessionService) {
		s.notificationsTopic = topic
	}
}

func NewSessionService(processor payment.Processor, referencePrefix string, opts ...SessionServiceOption) *SessionService {
	service := &SessionService{
		processor:       processor,
		referencePrefix: referencePrefix,
		sessions:        make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// StartSession decodes the offer token into a new session. A missing or
// malformed token yields a NoOffer session rather than an error: the flow
// must render the failure, never a partially populated offer.
func (s *SessionService) StartSession(ctx context.Context, offerToken string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	decoded, err := offer.Decode(offerToken)
	if err != nil {
		log.Printf("start session: %v", err)
		sess.Step = StepNoOffer
		sess.LastError = ErrorOfferMalformed
	} else {
		sess.Step = StepPassengerInfo
		sess.Offer = decoded
		sess.Passengers = []domain.PassengerRecord{{}}
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess.clone(), nil
}

func (s *SessionService) GetSession(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.clone(), nil
}

// SetPassengers replaces the passenger list. Allowed only while the flow is
// on the passenger step; the continue guard is recomputed from the new list
// on every read.
func (s *SessionService) SetPassengers(ctx context.Context, id string, passengers []domain.PassengerRecord) (*Session, error) {
	if len(passengers) == 0 {
		return nil, errors.New("at least one passenger is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Step != StepPassengerInfo {
		return nil, ErrInvalidTransition
	}

	sess.Passengers = append([]domain.PassengerRecord(nil), passengers...)
	sess.UpdatedAt = time.Now()
	return sess.clone(), nil
}

func (s *SessionService) ContinueToPayment(ctx context.Context, id string) (*Session, error) {
	return s.apply(id, EventContinue)
}

func (s *SessionService) BackToPassengers(ctx context.Context, id string) (*Session, error) {
	return s.apply(id, EventBack)
}

func (s *SessionService) apply(id string, ev Event) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	next, err := Transition(*sess, ev)
	if err != nil {
		return sess.clone(), err
	}
	next.UpdatedAt = time.Now()
	*sess = next
	return sess.clone(), nil
}

// SubmitPayment runs the charge and, on success, moves the session to
// Confirmed. A submission while a charge is already in flight is dropped,
// not queued: it returns the current state with no second charge attempt.
func (s *SessionService) SubmitPayment(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if sess.Step != StepPayment {
		out := sess.clone()
		s.mu.Unlock()
		return out, ErrInvalidTransition
	}
	if sess.PaymentInFlight {
		out := sess.clone()
		s.mu.Unlock()
		return out, nil
	}
	sess.PaymentInFlight = true
	breakdown := Breakdown(sess.Offer.Price)
	s.mu.Unlock()

	chargeErr := s.processor.Charge(ctx, breakdown.Total, breakdown.Currency)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok = s.sessions[id]
	if !ok {
		// The visitor left the flow while the charge was pending; the result
		// is discarded rather than applied to a dead session.
		return nil, ErrSessionNotFound
	}
	sess.PaymentInFlight = false
	sess.UpdatedAt = time.Now()

	if chargeErr != nil {
		// Stay on the payment step with the passenger data intact; retry is
		// a manual re-submission.
		sess.LastError = ErrorPaymentFailed
		return sess.clone(), nil
	}

	next, err := Transition(*sess, EventPaymentSucceeded)
	if err != nil {
		return sess.clone(), err
	}
	next.Reference = NewReference(s.referencePrefix)
	next.LastError = ""
	*sess = next

	s.publishConfirmation(ctx, sess)
	return sess.clone(), nil
}

func (s *SessionService) DestroySession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// ExpireIdleSessions drops sessions untouched for longer than olderThan and
// returns how many were removed. Sessions are never persisted, so abandoned
// flows only ever cost memory.
func (s *SessionService) ExpireIdleSessions(ctx context.Context, olderThan time.Duration) int {
	deadline := time.Now().Add(-olderThan)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(deadline) && !sess.PaymentInFlight {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionService) publishConfirmation(ctx context.Context, sess *Session) {
	if s.producer == nil || s.notificationsTopic == "" {
		return
	}
	contactEmail := ""
	if len(sess.Passengers) > 0 {
		contactEmail = sess.Passengers[0].Email
	}
	event := kafka.ConfirmationEvent{
		Type:        "booking_confirmed",
		Reference:   sess.Reference,
		OfferID:     sess.Offer.ID,
		Email:       contactEmail,
		Passengers:  len(sess.Passengers),
		Total:       sess.Offer.Price.Total,
		Currency:    sess.Offer.Price.Currency,
		ConfirmedAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.notificationsTopic, sess.Reference, event); err != nil {
		log.Printf("WARNING: failed to publish booking_confirmed event for %s: %v", sess.Reference, err)
	}
}

var _ BookingUseCase = (*SessionService)(nil)
