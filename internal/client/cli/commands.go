package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
)

var errNotLoggedIn = errors.New("not logged in (use 'login')")

func (a *App) Signup(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm password", a.out)
	if err != nil {
		return err
	}

	msg, err := a.api.Signup(ctx, email, password, confirm)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.token, a.email = token, email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Logout() {
	a.token, a.email = "", ""
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) WhoAmI(ctx context.Context) error {
	if a.token == "" {
		return errNotLoggedIn
	}
	p, err := a.api.Me(ctx, a.token)
	if err != nil {
		return a.dropTokenIfRejected(err)
	}
	fmt.Fprintf(a.out, "%s (%s)\n", p.Email, p.ID)
	return nil
}

func (a *App) Protected(ctx context.Context) error {
	msg, err := a.api.Protected(ctx, a.token)
	if err != nil {
		return a.dropTokenIfRejected(err)
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	if a.token == "" {
		return errNotLoggedIn
	}
	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	newPassword, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}
	confirm, err := GetPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}

	if err := a.api.ChangePassword(ctx, a.token, current, newPassword, confirm); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// a rejected token will not start working again
func (a *App) dropTokenIfRejected(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && errors.Is(err, client.ErrUnauthorized) && a.token != "" {
		a.token, a.email = "", ""
	}
	return err
}
