package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/todovault/todovault/internal/common"
	"github.com/todovault/todovault/internal/filex"
)

func (a *App) Profile(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	user := a.session.CurrentUser()
	printlnFn("Username:     ", user.Username)
	printlnFn("Color hue:    ", fmt.Sprintf("%d", user.ColorHue))
	printlnFn("Member since: ", user.CreatedAt.Format("2006-01-02"))
	if user.ProfileImage != "" {
		printlnFn("Profile image: set")
	} else {
		printlnFn("Profile image: none")
	}
	if a.session.HasUnsavedChanges() {
		printlnFn("There are unsaved changes; run 'save' to commit them")
	}
	return nil
}

func (a *App) Rename(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	name, err := GetSimpleText(a.reader, "Enter new username", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.session.UpdateUsername(ctx, name); err != nil {
		switch {
		case errors.Is(err, common.ErrAlreadyExists):
			printlnFn("Username is already taken")
		case errors.Is(err, common.ErrValidation):
			printlnFn("Username cannot be empty")
		default:
			printlnFn("error:", err.Error())
		}
		return err
	}

	printlnFn("Username staged; run 'save' to commit")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	password, err := GetPassword(a.out, "Enter new password")
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	if err := a.session.UpdatePassword(password); err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Password cannot be empty")
		} else {
			printlnFn("error:", err.Error())
		}
		return err
	}

	printlnFn("Password staged; run 'save' to commit")
	return nil
}

func (a *App) ChangeImage(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	path, err := GetSimpleText(a.reader, "Enter image file path (empty to remove)", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	image := ""
	if path != "" {
		image, err = filex.ImageDataURI(path)
		if err != nil {
			printlnFn("Cannot read image:", err.Error())
			return err
		}
	}

	if err := a.session.UpdateProfileImage(image); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Profile image staged; run 'save' to commit")
	return nil
}

func (a *App) Save(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if !a.session.HasUnsavedChanges() {
		printlnFn("Nothing to save")
		return nil
	}

	if err := a.session.SaveChanges(ctx); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			printlnFn("Username is already taken")
		} else {
			printlnFn("Save failed:", err.Error())
		}
		return err
	}

	printlnFn("Profile saved")
	return nil
}

func (a *App) ShowRecoveryCode(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	printlnFn("Your recovery code is:", a.session.GetRecoveryCode())
	return nil
}

func (a *App) Language(ctx context.Context, arg string) error {
	if arg == "" {
		lang, err := a.session.Language(ctx)
		if err != nil {
			printlnFn("error:", err.Error())
			return err
		}
		printlnFn("Current language:", lang)
		return nil
	}

	if err := a.session.SetLanguage(ctx, arg); err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Unsupported language:", arg)
		} else {
			printlnFn("error:", err.Error())
		}
		return err
	}

	printlnFn("Language set to", arg)
	return nil
}

func (a *App) DeleteAccount(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	confirm, err := GetSimpleText(a.reader, "Type the username to confirm deletion", a.out)
	if err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	user := a.session.CurrentUser()
	if confirm != user.Username {
		printlnFn("Confirmation does not match, nothing deleted")
		return nil
	}

	if err := a.session.DeleteAccount(ctx, user.Username); err != nil {
		printlnFn("Delete failed:", err.Error())
		return err
	}
	if err := a.tasks.SetUser(ctx, nil); err != nil {
		printlnFn("error:", err.Error())
		return err
	}

	printlnFn("Account deleted")
	return nil
}
