package email

import (
	"context"
	"fmt"

	"github.com/naturalclinic/flightbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.ConfirmationEvent) error {
	fmt.Printf("send e-ticket to %s for booking %s (%s %s)\n", event.Email, event.Reference, event.Total, event.Currency)
	return nil
}
