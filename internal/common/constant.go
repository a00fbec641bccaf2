// Package common contains shared constants and sentinel errors used across
// the console components.
package common

// Credential header sent on every outbound call that has a session token.
const (
	AuthorizationHeaderName = "Authorization"
	BearerScheme            = "Bearer"
	RequestIDHeaderName     = "X-Request-ID"
)

// Business codes carried in the response envelope.
const (
	CodeSuccess        = 0
	CodeSessionExpired = 40100
)

// Keys of the durable session mirror and of the cached branding values.
const (
	TokenKey     = "token"
	UserInfoKey  = "userInfo"
	SiteTitleKey = "siteTitle"
	LogoURLKey   = "logoUrl"
	CopyrightKey = "copyright"
)

// LoginRoute is where a forced logout sends the console.
const LoginRoute = "/login"

// DefaultSiteTitle is shown until the panel reports its own title.
const DefaultSiteTitle = "Gost Panel"
