package client

import (
	"fmt"

	"github.com/dmitrijs2005/gostconsole/internal/common"
)

// Messages shown to the operator.
const (
	MsgNetworkError  = "network error"
	MsgRequestFailed = "request failed"
	MsgUnauthorized  = "unauthorized, please sign in again"
	MsgForbidden     = "access denied"
	MsgNotFound      = "requested resource not found"
)

// Kind is the failure layer.
type Kind int

const (
	// KindTransport: no HTTP response (network, DNS, timeout, cancelled).
	KindTransport Kind = iota + 1
	// KindHTTPStatus: a response without a usable business envelope.
	KindHTTPStatus
	// KindBusiness: an envelope with a non-zero code.
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindHTTPStatus:
		return "http_status"
	case KindBusiness:
		return "business"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Outcome is the raw result of one call as seen by the outcome stage.
// Status is 0 when no response was obtained; Code is nil when the body
// carried no envelope.
type Outcome struct {
	Status  int
	Code    *int
	Message string
	Err     error
}

// Error is a classified failure. Its text is the message shown to the
// operator.
type Error struct {
	Kind         Kind
	Message      string
	Status       int
	Code         int
	ForcesLogout bool
	Err          error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindTransport
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrBusiness:
		return e.Kind == KindBusiness
	case ErrUnauthorized:
		return e.ForcesLogout
	}
	return false
}

// Classify maps an outcome to a failure, or nil for success. The business
// code wins over the HTTP status whenever an envelope is present.
func Classify(o Outcome) *Error {
	if o.Code != nil {
		code := *o.Code
		if code == common.CodeSuccess {
			return nil
		}
		return &Error{
			Kind:         KindBusiness,
			Message:      orDefault(o.Message, MsgRequestFailed),
			Status:       o.Status,
			Code:         code,
			ForcesLogout: code == common.CodeSessionExpired,
			Err:          o.Err,
		}
	}

	if o.Status == 0 {
		return &Error{Kind: KindTransport, Message: MsgNetworkError, Err: o.Err}
	}

	e := &Error{Kind: KindHTTPStatus, Status: o.Status, Err: o.Err}
	switch o.Status {
	case 401:
		e.Message = MsgUnauthorized
		e.ForcesLogout = true
	case 403:
		e.Message = MsgForbidden
	case 404:
		e.Message = MsgNotFound
	default:
		e.Message = orDefault(o.Message, MsgRequestFailed)
	}
	return e
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
