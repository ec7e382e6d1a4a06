package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	CreateConfirmed(ctx context.Context, booking *domain.Booking) error
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error)
	Delete(ctx context.Context, flightID, bookingID int64) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

const (
	flightCapacityLockQuery = `SELECT capacity FROM flights WHERE id=$1 FOR UPDATE`
	confirmedCountQuery     = `SELECT count(*) FROM bookings WHERE flight_id=$1 AND status=$2`
	insertBookingQuery      = `INSERT INTO bookings (flight_id, reference, passenger_name, seat_class, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
)

// admitBooking is the capacity rule: one more booking is allowed only while
// the confirmed count sits strictly below the flight's capacity.
func admitBooking(confirmed, capacity int) error {
	if confirmed >= capacity {
		return domain.ErrCapacityExceeded
	}
	return nil
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// CreateConfirmed admits a booking against the flight's capacity. The count
// and insert run in one transaction with the flight row locked, so two
// concurrent requests for the same flight serialize here and the confirmed
// count can never pass the capacity.
func (r *PGBookingRepository) CreateConfirmed(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var capacity int
	if err := tx.QueryRow(ctx, flightCapacityLockQuery, booking.FlightID).Scan(&capacity); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrFlightNotFound
		}
		return err
	}

	var confirmed int
	if err := tx.QueryRow(ctx, confirmedCountQuery, booking.FlightID, domain.BookingStatusConfirmed).Scan(&confirmed); err != nil {
		return err
	}
	if err := admitBooking(confirmed, capacity); err != nil {
		return err
	}

	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, insertBookingQuery, booking.FlightID, booking.Reference, booking.PassengerName, booking.SeatClass, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, flight_id, reference, passenger_name, seat_class, status, created_at FROM bookings WHERE flight_id=$1 ORDER BY id`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.FlightID, &b.Reference, &b.PassengerName, &b.SeatClass, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Delete removes a booking matched by both ids. A booking that exists under
// a different flight is reported as not found, never leaked.
func (r *PGBookingRepository) Delete(ctx context.Context, flightID, bookingID int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `DELETE FROM bookings WHERE id=$1 AND flight_id=$2
		RETURNING id, flight_id, reference, passenger_name, seat_class, status, created_at`, bookingID, flightID)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.FlightID, &b.Reference, &b.PassengerName, &b.SeatClass, &b.Status, &b.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
