package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchFilter holds the optional flight search constraints. Zero values
// mean "no constraint"; supplied filters are ANDed together.
type SearchFilter struct {
	Origin       string
	Destination  string
	FlightNumber string
	Status       string
	Date         *time.Time
}

func (f SearchFilter) Empty() bool {
	return f.Origin == "" && f.Destination == "" && f.FlightNumber == "" && f.Status == "" && f.Date == nil
}

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error)
	CountSameDay(ctx context.Context, flightNumber string, dayStart, dayEnd time.Time, excludeID int64) (int, error)
	Search(ctx context.Context, filter SearchFilter) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, origin, destination, departure_time, arrival_time, capacity, status, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.FlightNumber, &f.Origin, &f.Destination, &f.DepartureTime, &f.ArrivalTime, &f.Capacity, &f.Status, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, origin, destination, departure_time, arrival_time, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.Capacity, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return mapScheduleConflict(err)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET flight_number=$1, origin=$2, destination=$3, departure_time=$4, arrival_time=$5, capacity=$6, status=$7, updated_at=now()
		WHERE id=$8
		RETURNING updated_at`,
		flight.FlightNumber, flight.Origin, flight.Destination, flight.DepartureTime, flight.ArrivalTime, flight.Capacity, flight.Status, flight.ID)
	if err := row.Scan(&flight.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFlightNotFound
		}
		return mapScheduleConflict(err)
	}
	return nil
}

func (r *PGFlightRepository) UpdateStatus(ctx context.Context, id int64, status domain.FlightStatus) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights SET status=$1, updated_at=now() WHERE id=$2 RETURNING `+flightColumns, status, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) CountSameDay(ctx context.Context, flightNumber string, dayStart, dayEnd time.Time, excludeID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM flights WHERE flight_number=$1 AND departure_time >= $2 AND departure_time < $3 AND id <> $4`,
		flightNumber, dayStart, dayEnd, excludeID).Scan(&count)
	return count, err
}

func (r *PGFlightRepository) Search(ctx context.Context, filter SearchFilter) ([]domain.Flight, error) {
	query, args := buildSearchQuery(filter)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// buildSearchQuery composes the WHERE clause from the supplied filters.
// The date filter matches departures within [date 00:00:00, date+24h) UTC.
func buildSearchQuery(filter SearchFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Origin != "" {
		add("origin=$%d", filter.Origin)
	}
	if filter.Destination != "" {
		add("destination=$%d", filter.Destination)
	}
	if filter.FlightNumber != "" {
		add("flight_number=$%d", filter.FlightNumber)
	}
	if filter.Status != "" {
		add("status=$%d", filter.Status)
	}
	if filter.Date != nil {
		start := domain.StartOfDayUTC(*filter.Date)
		add("departure_time >= $%d", start)
		add("departure_time < $%d", start.Add(24*time.Hour))
	}

	query := `SELECT ` + flightColumns + ` FROM flights`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY departure_time`
	return query, args
}

// mapScheduleConflict translates a violation of the unique same-day index
// into the domain error so the store itself backstops the invariant.
func mapScheduleConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrScheduleConflict
	}
	return err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
