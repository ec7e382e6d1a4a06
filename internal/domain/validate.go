package domain

import (
	"regexp"
	"strings"
)

var (
	flightNumberRe  = regexp.MustCompile(`^[A-Za-z0-9-]{3,8}$`)
	airportCodeRe   = regexp.MustCompile(`^[A-Za-z]{3,4}$`)
	passengerNameRe = regexp.MustCompile(`^[A-Za-z ,.'-]+$`)
)

func ValidFlightNumber(s string) bool { return flightNumberRe.MatchString(s) }

func ValidAirportCode(s string) bool { return airportCodeRe.MatchString(s) }

func ValidPassengerName(s string) bool {
	return s != "" && len(s) <= 100 && passengerNameRe.MatchString(s)
}

// ParseSeatClass maps case-insensitive input to the canonical storage form.
func ParseSeatClass(s string) (SeatClass, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "economy":
		return SeatClassEconomy, true
	case "business":
		return SeatClassBusiness, true
	case "first class":
		return SeatClassFirstClass, true
	}
	return "", false
}

func ParseFlightStatus(s string) (FlightStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scheduled":
		return FlightStatusScheduled, true
	case "delayed":
		return FlightStatusDelayed, true
	case "cancelled":
		return FlightStatusCancelled, true
	case "boarding":
		return FlightStatusBoarding, true
	case "departed":
		return FlightStatusDeparted, true
	case "arrived":
		return FlightStatusArrived, true
	}
	return "", false
}
