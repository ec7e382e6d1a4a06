package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/Domenick1991/airschedule/internal/kafka"
	"github.com/Domenick1991/airschedule/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, flightID int64, input CreateBookingInput) (*domain.Booking, error)
	ListForFlight(ctx context.Context, flightID int64) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, flightID, bookingID int64) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	flights            repository.FlightRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type CreateBookingInput struct {
	PassengerName string `json:"passenger_name"`
	SeatClass     string `json:"seat_class"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateBooking admits a booking against the flight's remaining capacity.
// Shape validation runs before any admission attempt: a malformed request
// never consumes a capacity slot.
func (s *BookingService) CreateBooking(ctx context.Context, flightID int64, input CreateBookingInput) (*domain.Booking, error) {
	if !domain.ValidPassengerName(input.PassengerName) {
		return nil, domain.NewValidationError("passenger_name", "must be 1-100 letters, spaces or ,.'- characters")
	}
	seatClass, ok := domain.ParseSeatClass(input.SeatClass)
	if !ok {
		return nil, domain.NewValidationError("seat_class", "must be Economy, Business, or First Class")
	}

	flight, err := s.flights.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		FlightID:      flight.ID,
		Reference:     uuid.NewString(),
		PassengerName: input.PassengerName,
		SeatClass:     seatClass,
	}
	if err := s.bookings.CreateConfirmed(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrCapacityExceeded) {
			return nil, fmt.Errorf("%w: flight %d is at full capacity", domain.ErrCapacityExceeded, flight.ID)
		}
		return nil, err
	}

	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("failed to publish booking_created event for booking %s: %v", booking.Reference, err)
	}
	return booking, nil
}

// ListForFlight returns the flight's bookings in creation order. An unknown
// flight is an error; a flight with no bookings yields an empty list.
func (s *BookingService) ListForFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	if _, err := s.flights.GetByID(ctx, flightID); err != nil {
		return nil, err
	}
	return s.bookings.ListByFlight(ctx, flightID)
}

// CancelBooking removes the booking matching both ids, freeing one capacity
// slot. A mismatched pair is reported as not found regardless of whether the
// booking exists under another flight.
func (s *BookingService) CancelBooking(ctx context.Context, flightID, bookingID int64) error {
	booking, err := s.bookings.Delete(ctx, flightID, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			return fmt.Errorf("%w: booking %d on flight %d", domain.ErrBookingNotFound, bookingID, flightID)
		}
		return err
	}

	if err := s.publish(ctx, "booking_cancelled", booking); err != nil {
		log.Printf("failed to publish booking_cancelled event for booking %s: %v", booking.Reference, err)
	}
	return nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:          eventType,
		Reference:     booking.Reference,
		BookingID:     booking.ID,
		FlightID:      booking.FlightID,
		PassengerName: booking.PassengerName,
		SeatClass:     string(booking.SeatClass),
		Status:        string(booking.Status),
		OccurredAt:    time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
