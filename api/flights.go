package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/Domenick1991/airschedule/internal/repository"
	"github.com/Domenick1991/airschedule/internal/service/flights"
	"github.com/gin-gonic/gin"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	FlightNumber  string     `json:"flight_number"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Capacity      int        `json:"capacity"`
}

type updateFlightRequest struct {
	FlightNumber  *string    `json:"flight_number"`
	Origin        *string    `json:"origin"`
	Destination   *string    `json:"destination"`
	DepartureTime *time.Time `json:"departure_time"`
	ArrivalTime   *time.Time `json:"arrival_time"`
	Capacity      *int       `json:"capacity"`
	Status        *string    `json:"status"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup, createLimit gin.HandlerFunc) {
	router.GET("", h.list)
	router.POST("", createLimit, h.create)
	router.GET("/:id", h.get)
	router.PATCH("/:id", h.update)
	router.PATCH("/:id/status", h.updateStatus)
}

func (h *FlightHandler) list(c *gin.Context) {
	filter, err := parseSearchFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		FlightNumber:  req.FlightNumber,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: *req.DepartureTime,
		ArrivalTime:   *req.ArrivalTime,
		Capacity:      req.Capacity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateFlightRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) updateStatus(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req updateStatusRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, ok := domain.ParseFlightStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be one of: Scheduled, Delayed, Cancelled, Boarding, Departed, Arrived"})
		return
	}

	flight, err := h.service.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (r createFlightRequest) validate() error {
	if !domain.ValidFlightNumber(r.FlightNumber) {
		return domain.NewValidationError("flight_number", "must be 3-8 alphanumeric characters or hyphens (e.g. JB-202)")
	}
	if !domain.ValidAirportCode(r.Origin) {
		return domain.NewValidationError("origin", "must be a 3-4 letter IATA/ICAO code")
	}
	if !domain.ValidAirportCode(r.Destination) {
		return domain.NewValidationError("destination", "must be a 3-4 letter IATA/ICAO code")
	}
	if r.DepartureTime == nil {
		return domain.NewValidationError("departure_time", "is required")
	}
	if r.ArrivalTime == nil {
		return domain.NewValidationError("arrival_time", "is required")
	}
	if r.Capacity < 1 || r.Capacity > 1000 {
		return domain.NewValidationError("capacity", "must be between 1 and 1000")
	}
	return nil
}

func (r updateFlightRequest) toInput() (flights.UpdateFlightInput, error) {
	var input flights.UpdateFlightInput

	if r.FlightNumber != nil {
		if !domain.ValidFlightNumber(*r.FlightNumber) {
			return input, domain.NewValidationError("flight_number", "must be 3-8 alphanumeric characters or hyphens (e.g. JB-202)")
		}
		input.FlightNumber = r.FlightNumber
	}
	if r.Origin != nil {
		if !domain.ValidAirportCode(*r.Origin) {
			return input, domain.NewValidationError("origin", "must be a 3-4 letter IATA/ICAO code")
		}
		input.Origin = r.Origin
	}
	if r.Destination != nil {
		if !domain.ValidAirportCode(*r.Destination) {
			return input, domain.NewValidationError("destination", "must be a 3-4 letter IATA/ICAO code")
		}
		input.Destination = r.Destination
	}
	if r.Capacity != nil {
		if *r.Capacity < 1 || *r.Capacity > 1000 {
			return input, domain.NewValidationError("capacity", "must be between 1 and 1000")
		}
		input.Capacity = r.Capacity
	}
	if r.Status != nil {
		status, ok := domain.ParseFlightStatus(*r.Status)
		if !ok {
			return input, domain.NewValidationError("status", "must be one of: Scheduled, Delayed, Cancelled, Boarding, Departed, Arrived")
		}
		input.Status = &status
	}
	input.DepartureTime = r.DepartureTime
	input.ArrivalTime = r.ArrivalTime
	return input, nil
}

func parseSearchFilter(c *gin.Context) (repository.SearchFilter, error) {
	var filter repository.SearchFilter

	if origin := c.Query("origin"); origin != "" {
		if !domain.ValidAirportCode(origin) {
			return filter, domain.NewValidationError("origin", "must be a 3-4 letter IATA/ICAO code")
		}
		filter.Origin = origin
	}
	if destination := c.Query("destination"); destination != "" {
		if !domain.ValidAirportCode(destination) {
			return filter, domain.NewValidationError("destination", "must be a 3-4 letter IATA/ICAO code")
		}
		filter.Destination = destination
	}
	if number := c.Query("flight_number"); number != "" {
		if !domain.ValidFlightNumber(number) {
			return filter, domain.NewValidationError("flight_number", "must be 3-8 alphanumeric characters or hyphens")
		}
		filter.FlightNumber = number
	}
	if status := c.Query("status"); status != "" {
		parsed, ok := domain.ParseFlightStatus(status)
		if !ok {
			return filter, domain.NewValidationError("status", "must be one of: Scheduled, Delayed, Cancelled, Boarding, Departed, Arrived")
		}
		filter.Status = string(parsed)
	}
	if date := c.Query("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.UTC)
		if err != nil {
			return filter, domain.NewValidationError("date", "must be a yyyy-mm-dd date")
		}
		filter.Date = &parsed
	}
	return filter, nil
}

func parseID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
