package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeTimeout represents navigation or request timeouts
	ErrorTypeTimeout ErrorType = "timeout"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeBrowser represents headless browser failures
	ErrorTypeBrowser ErrorType = "browser"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeNotification represents notification delivery errors
	ErrorTypeNotification ErrorType = "notification"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// CheckError represents a failure while checking or reporting one target
type CheckError struct {
	Type    ErrorType
	Target  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *CheckError) Error() string {
	if e.Target == "" {
		if e.Err != nil {
			return fmt.Sprintf("[%s] %s - %v", e.Type, e.Message, e.Err)
		}
		return fmt.Sprintf("[%s] %s", e.Type, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Target, e.Message)
}

// Unwrap returns the underlying error
func (e *CheckError) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether the error was caused by an exceeded deadline
func (e *CheckError) IsTimeout() bool {
	if e.Type == ErrorTypeTimeout {
		return true
	}
	return stderrors.Is(e.Err, context.DeadlineExceeded)
}

// New creates a new CheckError
func New(errType ErrorType, target, message string, err error) *CheckError {
	return &CheckError{
		Type:    errType,
		Target:  target,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(target, message string, err error) *CheckError {
	return New(ErrorTypeNetwork, target, message, err)
}

// NewTimeout creates a new timeout error
func NewTimeout(target string, limit time.Duration, err error) *CheckError {
	return New(ErrorTypeTimeout, target, fmt.Sprintf("exceeded %v", limit), err)
}

// NewParsing creates a new parsing error
func NewParsing(target, message string, err error) *CheckError {
	return New(ErrorTypeParsing, target, message, err)
}

// NewBrowser creates a new browser error
func NewBrowser(target, message string, err error) *CheckError {
	return New(ErrorTypeBrowser, target, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(target string, duration time.Duration) *CheckError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, target, message, nil)
}

// NewNotification creates a new notification error
func NewNotification(channel, message string, err error) *CheckError {
	return New(ErrorTypeNotification, channel, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *CheckError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// TypeOf returns the ErrorType of the first CheckError in err's chain, or "" if there is none
func TypeOf(err error) ErrorType {
	var ce *CheckError
	if stderrors.As(err, &ce) {
		return ce.Type
	}
	return ""
}

// IsDeadline reports whether err was caused by an exceeded deadline anywhere in its chain
func IsDeadline(err error) bool {
	var ce *CheckError
	if stderrors.As(err, &ce) && ce.IsTimeout() {
		return true
	}
	return stderrors.Is(err, context.DeadlineExceeded)
}

// Is forwards to the standard library
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As forwards to the standard library
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// Join forwards to the standard library
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
