package flights

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/Domenick1991/airschedule/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error)
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error)
	Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Flight, error)
}

type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type FlightService struct {
	repo  repository.FlightRepository
	cache FlightCache
}

type CreateFlightInput struct {
	FlightNumber  string
	Origin        string
	Destination   string
	DepartureTime time.Time
	ArrivalTime   time.Time
	Capacity      int
}

// UpdateFlightInput is a partial update: nil fields keep their prior values.
type UpdateFlightInput struct {
	FlightNumber  *string
	Origin        *string
	Destination   *string
	DepartureTime *time.Time
	ArrivalTime   *time.Time
	Capacity      *int
	Status        *domain.FlightStatus
}

func NewFlightService(repo repository.FlightRepository, cache FlightCache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if err := validateSchedule(input.DepartureTime, input.ArrivalTime); err != nil {
		return nil, err
	}
	if err := s.checkSameDayConflict(ctx, input.FlightNumber, input.DepartureTime, 0); err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		Origin:        input.Origin,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime.UTC(),
		ArrivalTime:   input.ArrivalTime.UTC(),
		Capacity:      input.Capacity,
		Status:        domain.FlightStatusScheduled,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input UpdateFlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *flight
	if input.FlightNumber != nil {
		merged.FlightNumber = *input.FlightNumber
	}
	if input.Origin != nil {
		merged.Origin = *input.Origin
	}
	if input.Destination != nil {
		merged.Destination = *input.Destination
	}
	if input.DepartureTime != nil {
		merged.DepartureTime = input.DepartureTime.UTC()
	}
	if input.ArrivalTime != nil {
		merged.ArrivalTime = input.ArrivalTime.UTC()
	}
	if input.Capacity != nil {
		merged.Capacity = *input.Capacity
	}
	if input.Status != nil {
		merged.Status = *input.Status
	}

	// Time invariants are checked against the merged schedule, not just the
	// supplied fields.
	if input.DepartureTime != nil || input.ArrivalTime != nil {
		if err := validateSchedule(merged.DepartureTime, merged.ArrivalTime); err != nil {
			return nil, err
		}
	}
	if input.FlightNumber != nil || input.DepartureTime != nil {
		if err := s.checkSameDayConflict(ctx, merged.FlightNumber, merged.DepartureTime, merged.ID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, &merged); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &merged, nil
}

// UpdateStatus is the status-only transition path: no schedule revalidation,
// the only failure is an unknown flight.
func (s *FlightService) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error) {
	flight, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Search(ctx context.Context, filter repository.SearchFilter) ([]domain.Flight, error) {
	if filter.Empty() {
		return s.List(ctx)
	}
	return s.repo.Search(ctx, filter)
}

func validateSchedule(departure, arrival time.Time) error {
	if !arrival.After(departure) {
		return fmt.Errorf("%w: arrival time must be after departure time", domain.ErrInvalidSchedule)
	}
	return nil
}

func (s *FlightService) checkSameDayConflict(ctx context.Context, flightNumber string, departure time.Time, excludeID int64) error {
	dayStart := domain.StartOfDayUTC(departure)
	count, err := s.repo.CountSameDay(ctx, flightNumber, dayStart, dayStart.Add(24*time.Hour), excludeID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: flight number %s already exists on %s", domain.ErrScheduleConflict, flightNumber, dayStart.Format("2006-01-02"))
	}
	return nil
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
