package domain

import "time"

type FlightStatus string

const (
	FlightStatusScheduled FlightStatus = "Scheduled"
	FlightStatusDelayed   FlightStatus = "Delayed"
	FlightStatusCancelled FlightStatus = "Cancelled"
	FlightStatusBoarding  FlightStatus = "Boarding"
	FlightStatusDeparted  FlightStatus = "Departed"
	FlightStatusArrived   FlightStatus = "Arrived"
)

type Flight struct {
	ID            int64        `json:"id"`
	FlightNumber  string       `json:"flight_number"`
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	DepartureTime time.Time    `json:"departure_time"`
	ArrivalTime   time.Time    `json:"arrival_time"`
	Capacity      int          `json:"capacity"`
	Status        FlightStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// StartOfDayUTC returns the start of the UTC calendar day containing t.
// The duplicate-schedule window is [start, start+24h): a departure exactly
// at midnight belongs to that day, not the prior one.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
