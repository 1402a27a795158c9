package types

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrOffline         = errors.New("offline")
	ErrValidation      = errors.New("validation failed")
	ErrTransport       = errors.New("transport failure")
	ErrApplication     = errors.New("application error")
	ErrDecode          = errors.New("response could not be decoded")
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrDataStoreAccess = errors.New("data store read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}

// ValidationError is raised before any network attempt when a payload is incomplete.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// TransportError means no response was obtained at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ApplicationError carries a non-2xx response. Body is the raw response body, verbatim.
type ApplicationError struct {
	StatusCode int
	Body       string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("application: status %d: %s", e.StatusCode, e.Body)
}

// Is matches ErrApplication, and ErrNotFound for a 404 so callers can tell a missing record
// apart from a transient failure.
func (e *ApplicationError) Is(target error) bool {
	switch target {
	case ErrApplication:
		return true
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// DecodeError means a payload did not parse into the expected shape.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
