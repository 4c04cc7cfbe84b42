package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dramahub/internal/client/api"
	"github.com/dmitrijs2005/dramahub/internal/common"
)

// getSimpleText, getPassword and getYesNo are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getYesNo      = GetYesNo
)

// SignUp prompts for name, email and password and creates an account.
// On success the user is logged in.
func (a *App) SignUp(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.SignUp(ctx, name, email, password)
	if err != nil {
		if errors.Is(err, api.ErrConflict) {
			return fmt.Errorf("an account with email %s already exists", email)
		}
		return err
	}

	a.user = u
	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and authenticates. Wrong email and wrong
// password are reported the same way.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return errors.New("login unsuccessful: invalid email or password")
		}
		return err
	}

	a.user = u
	fmt.Fprintf(a.out, "Welcome, %s! %d favorites, %d in watchlist\n", u.Name, len(u.Favorites), len(u.Watchlist))
	return nil
}

// Logout forgets the current user.
func (a *App) Logout(ctx context.Context) error {
	a.user = nil
	return nil
}

// ChangePassword asks for the current password and the new one twice.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("Confirm new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(next) != string(confirm) {
		return errors.New("new passwords do not match")
	}
	if len(next) < common.MinPasswordLength {
		return fmt.Errorf("new password must be at least %d characters", common.MinPasswordLength)
	}

	if err := a.api.ChangePassword(ctx, a.user.ID, current, next, confirm); err != nil {
		if errors.Is(err, api.ErrInvalidCredentials) {
			return errors.New("current password is incorrect")
		}
		return err
	}

	fmt.Fprintln(a.out, "Password changed")
	return nil
}

// DeleteAccount removes the account after confirmation and logs out.
func (a *App) DeleteAccount(ctx context.Context) error {
	ok, err := getYesNo(a.reader, "Delete your account and both lists?", a.out)
	if err != nil || !ok {
		return err
	}

	if err := a.api.DeleteUser(ctx, a.user.ID); err != nil {
		return err
	}

	a.user = nil
	fmt.Fprintln(a.out, "Account deleted")
	return nil
}
