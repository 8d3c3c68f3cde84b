package helpers

import (
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Custom Error Types
// -----------------------------------------------------------------------------

type EstimatorError struct {
	Message string
	Cause   error
}

func (e *EstimatorError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EstimatorError) Unwrap() error {
	return e.Cause
}

// Distinct error types for type assertions.
// ValidationError: an input (e.g. a price outside the sanity bound) was
// rejected rather than coerced. ConfigurationError: caller-supplied constants
// form an unusable vesting window or term.
type ConfigurationError struct{ EstimatorError }
type NetworkError struct{ EstimatorError }
type DatabaseError struct{ EstimatorError }
type ValidationError struct{ EstimatorError }

// -----------------------------------------------------------------------------

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{EstimatorError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------

func NewConfigurationError(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{EstimatorError{Message: fmt.Sprintf(format, args...)}}
}

// -----------------------------------------------------------------------------
// Retry Logic
// -----------------------------------------------------------------------------

// RetryWithBackoff attempts fn up to maxRetries times with exponential backoff.
func RetryWithBackoff(operation string, maxRetries int, baseDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if attempt == maxRetries-1 {
			break
		}

		delay := baseDelay * (1 << attempt)
		fmt.Printf("Warning: Attempt %d/%d failed for %s: %v. Retrying in %v\n", attempt+1, maxRetries, operation, lastErr, delay)
		time.Sleep(delay)
	}

	return &NetworkError{EstimatorError{Message: fmt.Sprintf("%s failed after %d attempts", operation, maxRetries), Cause: lastErr}}
}
