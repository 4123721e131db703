package models

import "fmt"

// Status classifies the outcome of a single API request
type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusHTTPError
	StatusException
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	case StatusHTTPError:
		return "http_error"
	case StatusException:
		return "exception"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is what happened to a request, without its payload
type Outcome struct {
	Status     Status
	StatusCode int
	Err        error
}

// OK reports whether the request succeeded
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

// Describe renders the outcome for progress output
func (o Outcome) Describe() string {
	switch o.Status {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not found"
	case StatusHTTPError:
		return fmt.Sprintf("HTTP %d", o.StatusCode)
	default:
		if o.Err != nil {
			return o.Err.Error()
		}
		return "request failed"
	}
}

// Result carries either a value or the reason there is none.
// Value is only meaningful when Status is StatusOK.
type Result[T any] struct {
	Outcome
	Value T
}

// Get returns the value and whether it is present
func (r Result[T]) Get() (T, bool) {
	if r.Status != StatusOK {
		var zero T
		return zero, false
	}
	return r.Value, true
}
