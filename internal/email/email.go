package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airschedule/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("notify %s about %s for flight %d (%s)\n", event.PassengerName, event.Type, event.FlightID, event.Reference)
	return nil
}
