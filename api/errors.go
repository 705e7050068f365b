package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Domenick1991/flightdesk/internal/domain"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
)

// writeError maps domain errors to a status code. Anything unrecognised is a 500.
func writeError(c *gin.Context, err error) {
	var (
		validation   *domain.ValidationError
		invalid      *domain.InvalidAmountError
		insufficient *domain.InsufficientBalanceError
		notFound     *domain.NotFoundError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation), errors.As(err, &invalid):
		status = http.StatusBadRequest
	case errors.As(err, &insufficient):
		status = http.StatusPaymentRequired
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.Is(err, flights.ErrSessionBusy):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
