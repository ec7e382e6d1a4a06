package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "Confirmed"
)

type SeatClass string

const (
	SeatClassEconomy    SeatClass = "Economy"
	SeatClassBusiness   SeatClass = "Business"
	SeatClassFirstClass SeatClass = "First Class"
)

type Booking struct {
	ID            int64         `json:"id"`
	FlightID      int64         `json:"flight_id"`
	Reference     string        `json:"reference"`
	PassengerName string        `json:"passenger_name"`
	SeatClass     SeatClass     `json:"seat_class"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}
