package marketerrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kinds of client-side failure. Typed errors below match these with errors.Is.
var (
	ErrNetwork         = errors.New("network unreachable")
	ErrHTTP            = errors.New("http error")
	ErrDecode          = errors.New("malformed response body")
	ErrValidation      = errors.New("validation failed")
	ErrExternalService = errors.New("external service failed")
	ErrUnauthorized    = errors.New("not authenticated")
)

// Stub backend errors
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrBadCredentials   = errors.New("invalid email or password")
	ErrInvalidBid       = errors.New("invalid bid")
	ErrBidTooLow        = errors.New("bid amount too low")
	ErrAuctionClosed    = errors.New("auction is not active")
	ErrNoBids           = errors.New("no bids found for auction")
	ErrForbidden        = errors.New("not allowed")
	ErrInvalidInput     = errors.New("invalid input")
)

// NetworkError means no response was received.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// HTTPError is a 4xx/5xx answer or an envelope with success=false.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Is(target error) bool {
	switch target {
	case ErrHTTP:
		return true
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// ServerFault reports a 5xx status.
func (e *HTTPError) ServerFault() bool { return e.Status >= 500 }

// DecodeError means the body did not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode response: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// ValidationError lists the required fields that are missing or invalid.
// It is produced before any request is made.
type ValidationError struct {
	Fields []string
	// Reason, when set, replaces the generic "missing fields" wording.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return "invalid " + strings.Join(e.Fields, ", ") + ": " + e.Reason
	}
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ExternalKind classifies failures of the third-party pricing API.
type ExternalKind string

const (
	ExternalRateLimited         ExternalKind = "rate_limited"
	ExternalInvalidKey          ExternalKind = "invalid_key"
	ExternalMalformedCompletion ExternalKind = "malformed_completion"
	ExternalUnavailable         ExternalKind = "unavailable"
)

// ExternalServiceError wraps a failure of the generative pricing API.
type ExternalServiceError struct {
	Kind ExternalKind
	Err  error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("pricing service %s: %v", e.Kind, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Is(target error) bool { return target == ErrExternalService }

// UserMessage turns an error into a short sentence for a dismissible notification.
func UserMessage(err error) string {
	var (
		httpErr *HTTPError
		valErr  *ValidationError
		extErr  *ExternalServiceError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &valErr):
		if valErr.Reason != "" {
			return strings.ToUpper(valErr.Reason[:1]) + valErr.Reason[1:] + "."
		}
		return "Please fill in: " + strings.Join(valErr.Fields, ", ")
	case errors.As(err, &extErr):
		switch extErr.Kind {
		case ExternalRateLimited:
			return "The pricing assistant is busy, try again in a minute."
		case ExternalInvalidKey:
			return "The pricing assistant is not configured correctly."
		case ExternalMalformedCompletion:
			return "The pricing assistant returned an unreadable answer."
		default:
			return "The pricing assistant is unavailable."
		}
	case errors.Is(err, ErrUnauthorized):
		return "Your session has expired, please log in again."
	case errors.As(err, &httpErr):
		if httpErr.ServerFault() {
			return "The marketplace is having trouble, try again later."
		}
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return http.StatusText(httpErr.Status)
	case errors.Is(err, ErrNetwork):
		return "Cannot reach the marketplace, check your connection."
	case errors.Is(err, ErrDecode):
		return "The marketplace sent an unexpected response."
	}
	return err.Error()
}
