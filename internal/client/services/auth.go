package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
)

// AuthAPI holds the account calls that do not change the session.
// Login, logout and profile reloads live in package session.
type AuthAPI interface {
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error
}

type authAPI struct {
	doer Doer
}

func NewAuthAPI(d Doer) AuthAPI {
	return &authAPI{doer: d}
}

// ChangePassword validates the request locally before sending it.
func (a *authAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid password change: %w", err)
	}
	return put(ctx, a.doer, "/auth/password", req, nil)
}
