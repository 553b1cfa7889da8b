package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	s := ""
	if a.sess.Email() != "" {
		s = a.sess.Email() + " "
	}
	s = s + string(a.sess.State())
	return fmt.Sprintf("(%s)", s)
}

// Root prompts for a login and then hands control to the REPL. It blocks
// until the user exits.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to BudgetKeeper CLI (type 'help' for commands)")

	if err := a.Login(ctx); err != nil {
		log.Printf("You can retry with 'login': %s", err.Error())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
