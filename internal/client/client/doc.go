// Package client is the transport pipeline of the console.
//
// # Overview
//
// Every API call goes through (*HTTPClient).Do, which runs three steps in
// a fixed order:
//  1. Request stage: JSON body, request ID, and the session's bearer token
//     when there is one.
//  2. The network call, bounded by the per-call timeout.
//  3. Outcome stage: the business envelope {code, message, data} is
//     authoritative when present; otherwise the HTTP status decides (see
//     Classify). Code 0 unwraps data to the caller.
//
// # Error Handling
//
// Failures are *Error values of three kinds: KindTransport, KindHTTPStatus
// and KindBusiness. Callers can match them with errors.Is against
// ErrUnavailable, ErrHTTPStatus, ErrBusiness and ErrUnauthorized. Before
// Do returns a failure the operator has been notified; for HTTP 401 and
// business code 40100 the session has also been cleared and the console
// sent to the login route. Callers must not repeat either action.
//
// # Local store
//
// InitDatabase and RunMigrations open the SQLite file that backs the
// session mirror and apply the embedded goose migrations.
package client
