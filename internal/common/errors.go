// Package common defines shared constants and sentinel errors used across
// the console layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrEmptyToken     = errors.New("empty token in login response")
	ErrSessionChanged = errors.New("session changed while request was in flight")
)
