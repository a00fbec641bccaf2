package client

import "errors"

var (
	// ErrUnavailable matches failures where no HTTP response was obtained.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches failures that forced the session out.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBusiness matches non-zero business codes.
	ErrBusiness = errors.New("business error")
	// ErrHTTPStatus matches responses without a usable envelope.
	ErrHTTPStatus = errors.New("http status error")

	// ErrRejected wraps failures of the request stage; nothing was sent.
	ErrRejected = errors.New("request rejected")
	// ErrInvalidCredentialHeader rejects a call whose token cannot be sent
	// as a header value. The call never reaches the network.
	ErrInvalidCredentialHeader = errors.New("token is not a valid header value")
)

// Reported reports whether err came out of the pipeline, which means the
// operator has already been notified about it.
func Reported(err error) bool {
	var e *Error
	return errors.As(err, &e) || errors.Is(err, ErrRejected)
}
