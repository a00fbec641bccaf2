// Package session owns the operator's authentication state: the bearer
// token, the user profile and their durable mirror in the metadata store.
//
// A Session is the only writer of the "token" and "userInfo" keys. Login
// writes both in one store transaction before the in-memory state changes,
// so the mirror never holds a token from one login and a profile from
// another. The HTTP pipeline reads the token through Token and clears the
// session through Invalidate when the server rejects it.
package session
