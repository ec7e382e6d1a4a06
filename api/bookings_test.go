package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/Domenick1991/airschedule/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, flightID int64, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, flightID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListForFlight(ctx context.Context, flightID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, flightID, bookingID int64) error {
	args := m.Called(ctx, flightID, bookingID)
	return args.Error(0)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"passenger_name":"John Doe","seat_class":"Economy"}`
	c.Request = httptest.NewRequest("POST", "/api/flights/4/bookings", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	created := &domain.Booking{
		ID:            1,
		FlightID:      4,
		Reference:     "ref-1",
		PassengerName: "John Doe",
		SeatClass:     domain.SeatClassEconomy,
		Status:        domain.BookingStatusConfirmed,
	}
	mockService.On("CreateBooking", c.Request.Context(), int64(4), booking.CreateBookingInput{
		PassengerName: "John Doe",
		SeatClass:     "Economy",
	}).Return(created, nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response domain.Booking
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ref-1", response.Reference)
	assert.Equal(t, domain.BookingStatusConfirmed, response.Status)
	assert.Equal(t, int64(4), response.FlightID)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_FlightNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"passenger_name":"John Doe","seat_class":"Economy"}`
	c.Request = httptest.NewRequest("POST", "/api/flights/99/bookings", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	mockService.On("CreateBooking", c.Request.Context(), int64(99), mock.Anything).
		Return(nil, domain.ErrFlightNotFound).Once()

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_CapacityExceeded(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"passenger_name":"John Doe","seat_class":"Economy"}`
	c.Request = httptest.NewRequest("POST", "/api/flights/4/bookings", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	mockService.On("CreateBooking", c.Request.Context(), int64(4), mock.Anything).
		Return(nil, domain.ErrCapacityExceeded).Once()

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_create_RejectsUnknownFields(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"passenger_name":"John Doe","seat_class":"Economy","meal":"vegetarian"}`
	c.Request = httptest.NewRequest("POST", "/api/flights/4/bookings", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateBooking")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/flights/4/bookings", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}}

	mockService.On("ListForFlight", c.Request.Context(), int64(4)).Return([]domain.Booking{}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flights/4/bookings/11", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}, {Key: "bookingId", Value: "11"}}

	mockService.On("CancelBooking", c.Request.Context(), int64(4), int64(11)).Return(nil).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking canceled successfully")
	mockService.AssertExpectations(t)
}

func TestBookingHandler_cancel_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("DELETE", "/api/flights/4/bookings/11", nil)
	c.Params = gin.Params{{Key: "id", Value: "4"}, {Key: "bookingId", Value: "11"}}

	mockService.On("CancelBooking", c.Request.Context(), int64(4), int64(11)).
		Return(domain.ErrBookingNotFound).Once()

	handler.cancel(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}
