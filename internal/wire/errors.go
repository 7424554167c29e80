package wire

import "errors"

// ErrTimeout is returned when no complete message arrives before the deadline.
var ErrTimeout = errors.New("timeout")

// NotAJSONObjectError is returned when the bytes exchanged are not a JSON object.
type NotAJSONObjectError struct {
	Err error
}

func (e *NotAJSONObjectError) Error() string {
	return "received data is not a JSON object"
}

func (e *NotAJSONObjectError) Unwrap() error {
	return e.Err
}
