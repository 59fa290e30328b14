package search

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Sentinel targets for errors.Is matching across the typed errors below.
var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsageLimitExceeded = errors.New("usage limit exceeded")
	ErrBadRequest         = errors.New("bad request")
)

// MissingCredentialsError is returned at construction time when neither an
// explicit credential nor the documented environment variable is set.
type MissingCredentialsError struct {
	Provider string
	EnvVar   string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("%s: no API key provided, set %s or pass it in the config", e.Provider, e.EnvVar)
}

func (e *MissingCredentialsError) Is(target error) bool {
	return target == ErrMissingCredentials
}

// InvalidCredentialsError is surfaced when a provider reports unauthorized.
type InvalidCredentialsError struct {
	Provider string
}

func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("%s: invalid API key", e.Provider)
}

func (e *InvalidCredentialsError) Is(target error) bool {
	return target == ErrInvalidCredentials
}

// UsageLimitError is surfaced on rate-limit or quota responses. Callers are
// expected to back off; the library does not retry internally except where a
// provider exposes explicit retry configuration.
type UsageLimitError struct {
	Provider string
	Detail   string
}

func (e *UsageLimitError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = "too many requests"
	}
	return fmt.Sprintf("%s: %s", e.Provider, detail)
}

func (e *UsageLimitError) Is(target error) bool {
	return target == ErrUsageLimitExceeded
}

// BadRequestError is surfaced when the provider rejects a malformed request.
type BadRequestError struct {
	Provider string
	Detail   string
}

func (e *BadRequestError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = "the request was invalid or cannot be served"
	}
	return fmt.Sprintf("%s: %s", e.Provider, detail)
}

func (e *BadRequestError) Is(target error) bool {
	return target == ErrBadRequest
}

// TransportError carries a non-2xx HTTP status that did not match a more
// specific error kind.
type TransportError struct {
	Provider string
	Status   int
	Message  string
}

func (e *TransportError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: http %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Provider, e.Status, e.Message)
}

// ValidationError reports a caller-supplied argument violating a documented
// precondition. It is returned before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// errorDetail extracts a provider error message from bodies shaped like
// {"detail": {"error": "..."}}.
func errorDetail(body []byte) string {
	var payload struct {
		Detail struct {
			Error string `json:"error"`
		} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail.Error
}

// classifyStatus maps a non-2xx status to the error taxonomy. 400 is left to
// the generic transport error here; providers that document a bad-request
// contract (Tavily extract) special-case it before calling this.
func classifyStatus(provider string, status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized:
		return &InvalidCredentialsError{Provider: provider}
	case http.StatusTooManyRequests:
		return &UsageLimitError{Provider: provider, Detail: errorDetail(body)}
	default:
		return &TransportError{Provider: provider, Status: status, Message: string(body)}
	}
}

func checkStatus(provider string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return classifyStatus(provider, status, body)
}
