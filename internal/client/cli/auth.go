package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gostconsole/internal/client/models"
	"github.com/dmitrijs2005/gostconsole/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and signs in. The password is wiped
// before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, models.Credentials{Username: username, Password: string(password)})
	if err != nil {
		return a.report(ctx, err)
	}

	a.router.Set("/")
	if u != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Username)
	} else {
		fmt.Fprintln(a.out, "Signed in")
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return a.report(ctx, err)
	}
	a.router.Set(common.LoginRoute)
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// WhoAmI reloads and prints the profile.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.session.IsLoggedIn() {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}

	u, err := a.session.FetchUserInfo(ctx)
	if err != nil {
		return a.report(ctx, err)
	}

	fmt.Fprintf(a.out, "%s (id %d, role %s)\n", u.Username, u.ID, u.Role)
	if u.Email != "" {
		fmt.Fprintf(a.out, "e-mail: %s\n", u.Email)
	}
	if exp := a.session.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(a.out, "session expires: %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.session.Refresh(ctx); err != nil {
		return a.report(ctx, err)
	}
	if exp := a.session.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(a.out, "Token refreshed, expires %s\n", exp.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(a.out, "Token refreshed")
	}
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	oldPassword, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	if err := a.auth.ChangePassword(ctx, string(oldPassword), string(newPassword)); err != nil {
		return a.report(ctx, err)
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}
