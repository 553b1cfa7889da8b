package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/auth"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getSecret = GetSecret

// Login asks for a session token issued by the hosted auth provider,
// validates it, and initializes the encryption session for the token's user.
//
// Initialization resolves the user's encryption key through the local cache
// and the remote backup; with a shared secret configured it derives the same
// key on every device. A failed attempt leaves the session recoverable, so
// the user can simply retry with a fresh token.
func (a *App) Login(ctx context.Context) error {
	token, err := getSecret("Paste session token", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(token)

	claims, err := auth.ParseToken(string(token), []byte(a.config.AuthTokenSecret))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	if err := a.sess.Initialize(opCtx, claims); err != nil {
		log.Printf("Session initialization failed: %s", err.Error())
		return err
	}

	fmt.Printf("Logged in as %s\n", a.sess.Email())
	return nil
}

// Logout tears down the session and wipes the in-memory key. The cached key
// material stays on disk so the next login needs no remote round trip.
func (a *App) Logout(ctx context.Context) error {
	a.sess.Close()
	fmt.Println("Logged out")
	return nil
}
