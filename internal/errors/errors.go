package errors

import (
	"errors"
	"fmt"
)

// Common error types for the redirect relay
var (
	// Client errors, answered with 400
	ErrMalformedRequest = errors.New("malformed request")
	ErrMissingClientURI = errors.New("missing client_uri")

	// Authorization errors
	ErrMissingCode        = errors.New("missing code in request")
	ErrTokenTransport     = errors.New("token exchange transport failure")
	ErrTokenRejected      = errors.New("token exchange rejected by provider")
	ErrMissingAccessToken = errors.New("token response has no access_token")

	// Analytics errors are logged, never returned to the caller
	ErrAnalyticsDelivery = errors.New("analytics delivery failed")

	// Startup errors
	ErrMissingConfig = errors.New("missing configuration")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
