package cli

import (
	"context"
)

func (a *App) requireAdmin() bool {
	if a.admin == nil {
		printlnFn("Maintenance commands are disabled")
		return false
	}
	return true
}

func (a *App) AdminUsers(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	names, err := a.admin.ListUsers(ctx)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if len(names) == 0 {
		printlnFn("No accounts")
		return nil
	}
	for _, name := range names {
		printlnFn(" -", name)
	}
	return nil
}

func (a *App) AdminLoginAs(ctx context.Context, name string) error {
	if !a.requireAdmin() {
		return nil
	}
	if name == "" {
		printlnFn("Usage: loginas <name>")
		return nil
	}

	user, err := a.admin.LoginAs(ctx, name)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if err := a.tasks.SetUser(ctx, user); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Now acting as", name)
	return nil
}

func (a *App) AdminDeleteUser(ctx context.Context, name string) error {
	if !a.requireAdmin() {
		return nil
	}
	if name == "" {
		printlnFn("Usage: deluser <name>")
		return nil
	}

	if err := a.admin.DeleteUser(ctx, name); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if !a.session.IsAuthenticated() {
		if err := a.tasks.SetUser(ctx, nil); err != nil {
			printlnFn("error:", err.Error())
			return err
		}
	}

	printlnFn("Deleted", name)
	return nil
}

func (a *App) AdminWipe(ctx context.Context) error {
	if !a.requireAdmin() {
		return nil
	}

	confirm, err := GetSimpleText(a.reader, "Type 'wipe' to remove every account and task", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if confirm != "wipe" {
		printlnFn("Aborted")
		return nil
	}

	if err := a.admin.DeleteAllUsers(ctx); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	if err := a.tasks.SetUser(ctx, nil); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Store wiped")
	return nil
}
