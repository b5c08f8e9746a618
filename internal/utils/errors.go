package utils

import "errors"

// ErrInvalidInput is the base of every validation error; domain packages
// wrap it so the transport can classify them with errors.Is.
var ErrInvalidInput = errors.New("invalid input")
