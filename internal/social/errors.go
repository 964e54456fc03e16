package social

import (
	"strings"

	json "github.com/goccy/go-json"
)

// Kind discriminates failure categories surfaced to the user.
type Kind int

const (
	// KindBadRequest is a 400 with a field-level message extracted from the body.
	KindBadRequest Kind = iota
	// KindUnauthorized is a 401; the body is ignored.
	KindUnauthorized
	// KindUnknown is any other non-2xx response.
	KindUnknown
	// KindTransport covers network failures, decode failures, and malformed
	// error bodies. The message is the per-operation fallback.
	KindTransport
)

// Fixed user-facing messages for statuses whose bodies carry no usable detail.
const (
	unauthorizedMessage = "Invalid username or password or you do not have an account yet!"
	unknownMessage      = "Unknown error! Please retry later."
)

// Error is the failure half of every client operation: a discriminated kind
// plus the single message shown to the user. The wrapped cause is for logs
// only and never reaches the error area.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

type badRequestBody struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
}

// Normalize maps an HTTP response to a user-facing failure. A 2xx status
// yields nil. A 400 body that does not match the documented error shape is
// classified as transport with an empty message; the caller substitutes its
// own fallback.
func Normalize(status int, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}
	switch status {
	case 400:
		var decoded badRequestBody
		if err := json.Unmarshal(body, &decoded); err != nil {
			return &Error{Kind: KindTransport, Status: status, cause: err}
		}
		if len(decoded.Errors) == 0 || strings.TrimSpace(decoded.Errors[0].Message) == "" {
			return &Error{Kind: KindTransport, Status: status}
		}
		return &Error{Kind: KindBadRequest, Status: status, Message: decoded.Errors[0].Message}
	case 401:
		return &Error{Kind: KindUnauthorized, Status: status, Message: unauthorizedMessage}
	default:
		return &Error{Kind: KindUnknown, Status: status, Message: unknownMessage}
	}
}

// NormalizeMessage returns only the user message for a response; empty for 2xx.
func NormalizeMessage(status int, body []byte) string {
	e := Normalize(status, body)
	if e == nil {
		return ""
	}
	return e.Message
}

// UserMessage extracts the displayable message from any error returned by a
// client operation, substituting fallback when the error carries none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := err.(*Error); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
