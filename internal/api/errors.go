package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// Kind is the category of a failed API operation
type Kind int

const (
	// KindValidation indicates a local precondition failed and no request was sent
	KindValidation Kind = iota
	// KindServer indicates the server answered with a non-2xx status
	KindServer
	// KindNetwork indicates no response was received (refused, unreachable, DNS)
	KindNetwork
	// KindTimeout indicates the request did not complete in time
	KindTimeout
	// KindRequest indicates the request could not be constructed
	KindRequest
	// KindParse indicates a 2xx response whose body could not be decoded
	KindParse
	// KindCanceled indicates the caller canceled the context
	KindCanceled
)

// String returns a human-readable name for the error kind
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation Error"
	case KindServer:
		return "Server Error"
	case KindNetwork:
		return "Network Error"
	case KindTimeout:
		return "Timeout"
	case KindRequest:
		return "Request Error"
	case KindParse:
		return "Parse Error"
	case KindCanceled:
		return "Canceled"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// NetworkCause gives a finer classification of KindNetwork and KindTimeout errors
type NetworkCause int

const (
	CauseGeneral NetworkCause = iota
	CauseTimeout
	CauseConnectionRefused
	CauseDNS
	CauseHostUnreachable
	CauseNetworkUnreachable
)

// Error describes why an operation failed. It is carried in Response.Err;
// operations never return it as a Go error.
type Error struct {
	Kind       Kind         // Category of error
	Op         string       // Operation name, e.g. "check_status_by_phone"
	Message    string       // User-facing (Thai) message
	StatusCode int          // HTTP status code for KindServer
	Cause      NetworkCause // Finer network classification
	Err        error        // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := e.Kind.String()
	if e.Op != "" {
		prefix = e.Op + ": " + prefix
	}
	if e.StatusCode != 0 {
		prefix = fmt.Sprintf("%s (HTTP %d)", prefix, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error from http.Client.Do onto a Kind
// and NetworkCause. The returned error carries no Message; callers fill it in.
func ClassifyNetworkError(op string, err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindCanceled, Op: op, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &Error{Kind: KindTimeout, Op: op, Cause: CauseTimeout, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Kind: KindNetwork, Op: op, Cause: CauseDNS, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			return &Error{Kind: KindNetwork, Op: op, Cause: CauseConnectionRefused, Err: err}
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			return &Error{Kind: KindNetwork, Op: op, Cause: CauseHostUnreachable, Err: err}
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			return &Error{Kind: KindNetwork, Op: op, Cause: CauseNetworkUnreachable, Err: err}
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		// Recursively classify the underlying error
		return ClassifyNetworkError(op, urlErr.Err)
	}

	return &Error{Kind: KindNetwork, Op: op, Cause: CauseGeneral, Err: err}
}

// NewValidationError creates a local validation error
func NewValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// NewServerError creates an error for a non-2xx response
func NewServerError(op string, statusCode int, message string) *Error {
	return &Error{Kind: KindServer, Op: op, Message: message, StatusCode: statusCode}
}

// NewRequestError creates an error for a request that could not be built
func NewRequestError(op string, err error) *Error {
	return &Error{Kind: KindRequest, Op: op, Message: MsgRequestSetup, Err: err}
}

// NewParseError creates an error for an undecodable response body
func NewParseError(op string, statusCode int, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Message: MsgUnexpectedResponse, StatusCode: statusCode, Err: err}
}

func kindOf(err error) (Kind, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind, true
	}
	return 0, false
}

// IsValidationError reports whether err is a local validation failure
func IsValidationError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindValidation
}

// IsServerError reports whether err came from a non-2xx response
func IsServerError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindServer
}

// IsNetworkError reports whether no response was received (including timeouts)
func IsNetworkError(err error) bool {
	k, ok := kindOf(err)
	return ok && (k == KindNetwork || k == KindTimeout)
}

// IsTimeoutError reports whether the request timed out
func IsTimeoutError(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindTimeout
}

// IsCanceled reports whether the caller canceled the request
func IsCanceled(err error) bool {
	k, ok := kindOf(err)
	return ok && k == KindCanceled
}

// GetShortErrorMessage returns a concise English description for logs and
// CLI diagnostics. The user-facing text is Error.Message.
func GetShortErrorMessage(err error) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Kind {
	case KindTimeout:
		return "API not responding (timeout)"
	case KindNetwork:
		switch apiErr.Cause {
		case CauseConnectionRefused:
			return "API refused connection"
		case CauseDNS:
			return "Cannot resolve API hostname"
		case CauseHostUnreachable:
			return "API host unreachable"
		case CauseNetworkUnreachable:
			return "Network unreachable - check internet connection"
		default:
			return "Network error - check connection"
		}
	case KindServer:
		return fmt.Sprintf("API error (HTTP %d)", apiErr.StatusCode)
	case KindParse:
		return "Failed to parse API response"
	case KindRequest:
		return "Failed to build request"
	case KindCanceled:
		return "Request canceled"
	default:
		return apiErr.Message
	}
}
