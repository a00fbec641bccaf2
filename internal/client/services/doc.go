// Package services contains the typed API clients of the console: one
// service per panel resource plus the branding cache.
//
// Every service is a thin wrapper that builds a client.Request and hands
// it to a Doer (normally *client.HTTPClient). Services never notify the
// operator or touch the session themselves: the pipeline has done both by
// the time an error reaches them.
package services
