package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Domenick1991/airschedule/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP status codes. Anything outside
// the domain taxonomy is a storage or infrastructure fault and surfaces as
// a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrFlightNotFound), errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrScheduleConflict),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// bindStrict decodes the request body rejecting unknown fields.
func bindStrict(c *gin.Context, dst interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
