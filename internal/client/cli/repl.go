package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	adminEnabled() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Recover(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context, text string) error
	Toggle(ctx context.Context, arg string) error
	Remove(ctx context.Context, arg string) error
	Clear(ctx context.Context) error
	SetFilter(ctx context.Context, arg string) error
	Profile(ctx context.Context) error
	Rename(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ChangeImage(ctx context.Context) error
	Save(ctx context.Context) error
	ShowRecoveryCode(ctx context.Context) error
	Language(ctx context.Context, arg string) error
	DeleteAccount(ctx context.Context) error
	AdminUsers(ctx context.Context) error
	AdminLoginAs(ctx context.Context, name string) error
	AdminDeleteUser(ctx context.Context, name string) error
	AdminWipe(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, recover, lang <en|pt>, exit"
	helpLoggedIn  = "Available commands: (l)ist, add <text>, toggle <n>, del <n>, clear, " +
		"filter <all|active|completed>, profile, name, password, image, save, code, " +
		"lang <en|pt>, delaccount, logout, exit"
	helpAdmin = "Maintenance commands: users, loginas <name>, deluser <name>, wipe"
)

// runREPL starts a simple read-eval-print loop for the TodoVault CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tv %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			if a.adminEnabled() {
				printlnFn(helpAdmin)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "recover":
			_ = a.Recover(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx, strings.TrimSpace(strings.TrimPrefix(line, "add")))

		case "toggle":
			_ = a.Toggle(ctx, arg)

		case "del", "delete":
			_ = a.Remove(ctx, arg)

		case "clear":
			_ = a.Clear(ctx)

		case "filter":
			_ = a.SetFilter(ctx, arg)

		case "profile":
			_ = a.Profile(ctx)

		case "name":
			_ = a.Rename(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "image":
			_ = a.ChangeImage(ctx)

		case "save":
			_ = a.Save(ctx)

		case "code":
			_ = a.ShowRecoveryCode(ctx)

		case "lang":
			_ = a.Language(ctx, arg)

		case "delaccount":
			_ = a.DeleteAccount(ctx)

		case "users":
			_ = a.AdminUsers(ctx)

		case "loginas":
			_ = a.AdminLoginAs(ctx, arg)

		case "deluser":
			_ = a.AdminDeleteUser(ctx, arg)

		case "wipe":
			_ = a.AdminWipe(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
