package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	user := a.authService.CurrentUser()
	if user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Email, user.Role)
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to teamboard CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
