package vtsgo

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when an operation cannot complete because the client
// has been closed or the connection was lost.
var ErrClosed = errors.New("vtsgo: client closed")

// ErrUnknownEvent is returned when a subscription names an event the API
// does not expose.
var ErrUnknownEvent = errors.New("vtsgo: unknown event name")

// ErrAlreadySubscribed is returned when a subscription already has an active
// listener for the requested event.
var ErrAlreadySubscribed = errors.New("vtsgo: already subscribed")

// APIError is an error response from VTube Studio. It pertains to the single
// request that failed; the client remains connected and usable.
type APIError struct {
	// ErrorID is the host-defined numeric error code.
	ErrorID int64
	// Message is the host-supplied human-readable description.
	Message string
	// RequestFor is the message type of the request that failed.
	RequestFor string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vtube studio error %d for %s: %s", e.ErrorID, e.RequestFor, e.Message)
}
