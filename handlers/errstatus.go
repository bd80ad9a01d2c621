package handlers

import (
	"errors"
	"net/http"

	"canteen-api/services"
	"canteen-api/statemachine"

	"github.com/gin-gonic/gin"
)

// fail translates a service error into an HTTP response. The service layer
// never formats user-facing text beyond the sentinel's message.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrResetRequestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicateEmail):
		status = http.StatusConflict
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden),
		errors.Is(err, services.ErrNotOwner),
		errors.Is(err, services.ErrCannotDeleteSelf):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrWeakSecret):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrItemUnavailable),
		errors.Is(err, services.ErrCancelWindowClosed),
		errors.Is(err, services.ErrNotSettleable),
		errors.Is(err, statemachine.ErrTerminalState),
		errors.Is(err, statemachine.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
