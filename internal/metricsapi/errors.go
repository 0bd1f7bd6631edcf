package metricsapi

import (
	"errors"
	"fmt"
)

// FetchKind separates failures to reach the metrics API from responses it
// rejected.
type FetchKind int

const (
	Unreachable FetchKind = iota
	BadResponse
)

func (k FetchKind) String() string {
	if k == BadResponse {
		return "bad response"
	}
	return "unreachable"
}

// FetchError is returned when a request could not be completed or came back
// with a non-success status.
type FetchError struct {
	Kind       FetchKind
	URL        string
	StatusCode int // set for BadResponse
	Err        error
}

func (e *FetchError) Error() string {
	if e.Kind == BadResponse {
		return fmt.Sprintf("metrics API %s: %s returned %d", e.Kind, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("metrics API %s: %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError is returned when a response body is not the expected JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func IsUnreachable(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == Unreachable
}

func IsBadResponse(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == BadResponse
}

func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
