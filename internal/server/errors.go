package server

import "fmt"

// MissingFieldError is returned when a request lacks a required key.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing key '%s'", e.Field)
}

// TypeMismatchError is returned when a key is present with a value of the wrong type.
type TypeMismatchError struct {
	Field    string
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Key '%s' must be %s", e.Field, e.Expected)
}

// UnknownRequestError is returned for a request kind the server does not handle.
type UnknownRequestError struct {
	Request string
}

func (e *UnknownRequestError) Error() string {
	return fmt.Sprintf("Unknown request '%s'", e.Request)
}
