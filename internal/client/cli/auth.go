package cli

import (
	"context"
	"errors"

	"github.com/todovault/todovault/internal/common"
)

func (a *App) Register(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.session.Register(ctx, username, password, ""); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			printlnFn("Username is already taken")
		} else {
			printlnFn("Registration failed:", err.Error())
		}
		return err
	}

	if err := a.tasks.SetUser(ctx, a.session.CurrentUser()); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Welcome,", username+"!")
	printlnFn("Your recovery code is:", a.session.GetRecoveryCode())
	printlnFn("Store it somewhere safe; it is the only way back into a lost account.")
	return nil
}

func (a *App) Login(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	password, err := GetPassword(a.out, "Enter password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.session.Login(ctx, username, password); err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			printlnFn("Invalid username or password")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	if err := a.tasks.SetUser(ctx, a.session.CurrentUser()); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Welcome back,", username+"!")
	return nil
}

func (a *App) Logout(ctx context.Context) error {

	if err := a.session.Logout(ctx); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if err := a.tasks.SetUser(ctx, nil); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Logged out")
	return nil
}

// Recover walks the three-step flow: username, recovery code, new password.
// Every step must pass before the next prompt appears.
func (a *App) Recover(ctx context.Context) error {

	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	code, err := GetSimpleText(a.reader, "Enter recovery code", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.session.VerifyRecoveryCode(ctx, username, code); err != nil {
		if errors.Is(err, common.ErrCodeMismatch) {
			printlnFn("Recovery code does not match")
		} else {
			printlnFn("error:", err.Error())
		}
		return err
	}

	password, err := GetPassword(a.out, "Enter new password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	confirm, err := GetPassword(a.out, "Confirm new password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if password != confirm {
		printlnFn("Passwords do not match")
		return common.ErrValidation
	}

	if err := a.session.ResetPassword(ctx, username, code, password); err != nil {
		printlnFn("Reset failed:", err.Error())
		return err
	}

	printlnFn("Password updated, you can log in now")
	return nil
}
