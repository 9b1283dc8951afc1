package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	user := a.session.CurrentUser()
	if user == nil {
		return ""
	}
	s := user.Username
	if a.session.HasUnsavedChanges() {
		s += "*"
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to TodoVault CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	runREPL(ctx, a, a.getStatus, scanner)
}
