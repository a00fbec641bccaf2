// Package models holds the payload types exchanged with the panel API.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Credentials is the login form.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required, validation.Length(1, 50)),
		validation.Field(&c.Password, validation.Required),
	)
}

// UserInfo is the profile of the signed-in operator.
type UserInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	Email    string `json:"email,omitempty"`
}

// LoginResult is the payload of a successful login. ExpireAt is a unix
// timestamp, 0 when the panel does not report one.
type LoginResult struct {
	Token    string    `json:"token"`
	ExpireAt int64     `json:"expire_at"`
	User     *UserInfo `json:"user"`
}

// RefreshResult is the payload of a token refresh.
type RefreshResult struct {
	Token    string `json:"token"`
	ExpireAt int64  `json:"expire_at"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (r ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, validation.Required, validation.Length(6, 0)),
	)
}
