package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/todovault/todovault/internal/client/tasks"
	"github.com/todovault/todovault/internal/common"
)

var errNotLoggedIn = errors.New("not logged in")

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return errNotLoggedIn
	}
	return nil
}

// resolveIndex maps a 1-based position in the currently filtered view to a
// task id.
func (a *App) resolveIndex(arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		printlnFn("Expected a task number, got:", arg)
		return "", err
	}
	visible := a.tasks.Filtered()
	if n < 1 || n > len(visible) {
		printlnFn("No task with number", n)
		return "", common.ErrNotFound
	}
	return visible[n-1].ID, nil
}

func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	visible := a.tasks.Filtered()
	if len(visible) == 0 {
		printlnFn("Nothing to show (filter: " + string(a.tasks.Filter()) + ")")
	}
	for i, todo := range visible {
		mark := " "
		if todo.Completed {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("%3d [%s] %s", i+1, mark, todo.Text))
	}
	printlnFn(fmt.Sprintf("%d item(s) left", a.tasks.ActiveCount()))
	return nil
}

func (a *App) Add(ctx context.Context, text string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.tasks.Add(ctx, text); err != nil {
		if errors.Is(err, common.ErrValidation) {
			printlnFn("Cannot add an empty task")
		} else {
			printlnFn("error:", err.Error())
		}
		return err
	}
	return a.List(ctx)
}

func (a *App) Toggle(ctx context.Context, arg string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.resolveIndex(arg)
	if err != nil {
		return err
	}
	if err := a.tasks.Toggle(ctx, id); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	return a.List(ctx)
}

func (a *App) Remove(ctx context.Context, arg string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	id, err := a.resolveIndex(arg)
	if err != nil {
		return err
	}
	if err := a.tasks.Delete(ctx, id); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	return a.List(ctx)
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.tasks.ClearCompleted(ctx); err != nil {
		printlnFn("error:", err.Error())
		return err
	}
	return a.List(ctx)
}

func (a *App) SetFilter(ctx context.Context, arg string) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	f, ok := tasks.ParseFilter(arg)
	if !ok {
		printlnFn("Unknown filter:", arg, "(expected all, active or completed)")
		return common.ErrValidation
	}
	a.tasks.SetFilter(f)
	return a.List(ctx)
}

