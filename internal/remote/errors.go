package remote

import (
	"errors"
	"fmt"
)

var (
	ErrNetworkUnreachable   = errors.New("network unreachable")
	ErrHTTP                 = errors.New("http error")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrRejected             = errors.New("request rejected")
)

// ErrorKind classifies transport failures.
type ErrorKind int

const (
	KindNetwork ErrorKind = iota
	KindHTTP
	KindMalformed
	KindConfig
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http"
	case KindMalformed:
		return "malformed"
	case KindConfig:
		return "config"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Error is the single error shape returned by Client. Message is what the
// operator sees; Status is set only for HTTP errors.
type Error struct {
	Kind    ErrorKind
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("api %s returned status %d", e.Path, e.Status)
	case KindMalformed:
		return fmt.Sprintf("decode response from %s: %s", e.Path, e.Message)
	case KindNetwork:
		return fmt.Sprintf("execute request %s: %s", e.Path, e.Message)
	default:
		if e.Path != "" {
			return fmt.Sprintf("%s: %s", e.Path, e.Message)
		}
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is maps the kind onto the package sentinels so callers can use errors.Is.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetworkUnreachable:
		return e.Kind == KindNetwork
	case ErrHTTP:
		return e.Kind == KindHTTP
	case ErrMalformedResponse:
		return e.Kind == KindMalformed
	case ErrInvalidConfiguration:
		return e.Kind == KindConfig
	case ErrRejected:
		return e.Kind == KindRejected
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or zero.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Message returns the operator-facing text for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
