package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"ev-marketplace/internal/marketerrors"
	"ev-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	UserIDKey = "userID"
	RoleKey   = "role"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, marketerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, marketerrors.ErrFavoriteNotFound):
		return http.StatusNotFound, "favorite not found"
	case errors.Is(err, marketerrors.ErrOrderNotFound):
		return http.StatusNotFound, "order not found"
	case errors.Is(err, marketerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, marketerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, marketerrors.ErrUserExists):
		return http.StatusConflict, "email is already registered"
	case errors.Is(err, marketerrors.ErrBadCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, marketerrors.ErrUnauthorized):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, marketerrors.ErrForbidden):
		return http.StatusForbidden, "not allowed"
	case errors.Is(err, marketerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, marketerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, marketerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, marketerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// HandleServiceError writes the mapped error envelope and logs it.
func HandleServiceError(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)

	fields := map[string]any{"handler": handlerName, "status": status, "error": err.Error()}
	for k, v := range ctx {
		fields[k] = v
	}
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
	} else {
		utils.Warn(handlerName+": request rejected", fields)
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// UserID returns the authenticated caller set by the auth middleware.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}
