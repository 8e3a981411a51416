package paintapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized matches any 401 answer. Callers drop the admin session.
	ErrUnauthorized = errors.New("paintapi: unauthorized")
	// ErrTimeout is returned when the request deadline passed.
	ErrTimeout = errors.New("paintapi: request timed out")
	// ErrNoResponse is returned when the server could not be reached.
	ErrNoResponse = errors.New("paintapi: no response from server")
	// ErrMalformed is returned for responses that do not decode into the
	// expected shape.
	ErrMalformed = errors.New("paintapi: malformed response")
)

// FieldError is one entry of a 422 "detail" list.
type FieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func (f FieldError) String() string {
	parts := make([]string, len(f.Loc))
	for i, l := range f.Loc {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ".") + ": " + f.Msg
}

// StatusError is a non-2xx API answer.
type StatusError struct {
	Status int
	Detail string
	Fields []FieldError
}

func (e *StatusError) Error() string {
	msg := e.Detail
	if len(e.Fields) > 0 {
		msg = e.fieldSummary()
	}
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("paintapi: status %d: %s", e.Status, msg)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 answers.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

func (e *StatusError) fieldSummary() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

func newStatusError(status int, body []byte) *StatusError {
	e := &StatusError{Status: status}
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return e
	}
	e.Detail = payload.Message
	if len(payload.Detail) == 0 {
		return e
	}
	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		e.Detail = detail
		return e
	}
	var fields []FieldError
	if err := json.Unmarshal(payload.Detail, &fields); err == nil {
		e.Fields = fields
	}
	return e
}

// Message turns err into the text shown to the admin. action completes the
// generic fallback "Failed to <action>. Please try again.".
func Message(err error, action string) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "Request timed out. Your image may be too large."
	case errors.Is(err, ErrNoResponse):
		return "Cannot connect to server. Check your connection or server status."
	case errors.Is(err, ErrMalformed):
		return "Unexpected response from server. Please try again."
	case errors.As(err, &se):
		return se.message(action)
	}
	return fmt.Sprintf("Failed to %s. Please try again.", action)
}

func (e *StatusError) message(action string) string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "Session expired. Please log in again."
	case http.StatusUnprocessableEntity:
		if len(e.Fields) > 0 {
			return e.fieldSummary()
		}
		if e.Detail != "" {
			return e.Detail
		}
		return "Invalid input data. Check all fields."
	case http.StatusRequestEntityTooLarge:
		return "Image size too large. Please use a smaller image."
	case http.StatusInternalServerError:
		if e.Detail != "" {
			return e.Detail
		}
		return "Server error. Please try again."
	case http.StatusNotFound:
		return "API endpoint not found. Please check server configuration."
	case http.StatusMethodNotAllowed:
		return "Method not allowed. Please check API configuration."
	}
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("Failed to %s. Please try again.", action)
}
