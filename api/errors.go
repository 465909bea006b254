package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightdeck/internal/domain"
	"github.com/gin-gonic/gin"
)

// respondError is the single place the failure taxonomy turns into HTTP.
// The message always carries the specific reason so clients can tell,
// say, "sold out" from "already cancelled".
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidSeatCount),
		errors.Is(err, domain.ErrRouteEndpoints):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrOperatorRequired):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSoldOut),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrSeatNotHeld),
		errors.Is(err, domain.ErrTotalBelowHeld),
		errors.Is(err, domain.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrTicketIssuance):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
