package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingID rejects operations addressed to an empty identifier.
var ErrMissingID = errors.New("missing id")

// RemoteError reports a response the catalog API answered with a failure status.
type RemoteError struct {
	Op      string
	Message string
	Status  int
	Body    []byte
}

// Error returns the status and the server supplied message.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// TransportError reports a round-trip that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

// Error returns the failing operation and the transport error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusOf returns the HTTP status carried by err, or 0 when none was received.
func StatusOf(err error) int {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Status
	}
	return 0
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func newRemoteError(op string, status int, body []byte) *RemoteError {
	return &RemoteError{
		Op:      op,
		Message: remoteMessage(status, body),
		Status:  status,
		Body:    body,
	}
}

// remoteMessage prefers a JSON message or error field and falls back to a generic line.
func remoteMessage(status int, body []byte) string {
	var decoded errorBody
	if err := json.Unmarshal(body, &decoded); err == nil {
		if msg := strings.TrimSpace(decoded.Message); msg != "" {
			return msg
		}
		if msg := strings.TrimSpace(decoded.Error); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("request failed with status code %d", status)
}
