package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
)

// KeyExport prints the session's encryption key in a copy-pasteable text
// form for moving it to another device.
func (a *App) KeyExport(ctx context.Context) error {
	key, err := a.sess.Key()
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Encryption key (keep it safe, anyone holding it can read your data):")
	fmt.Println(a.keystore.ExportForDisplay(key))
	return nil
}

// KeyImport replaces the session's encryption key with one exported on
// another device. The local cache and the remote backup are updated; records
// written under the previous key will show their plaintext mirrors until
// they are re-saved.
func (a *App) KeyImport(ctx context.Context) error {
	if !a.sess.Ready() {
		return common.ErrSessionNotReady
	}

	exported, err := getSecret("Paste exported key", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(exported)

	opCtx, cancel := a.opCtx(ctx)
	defer cancel()

	key, err := a.keystore.ImportFromString(opCtx, a.sess.UserID(), string(exported))
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if err := a.sess.ReplaceKey(key); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Println("Key imported")
	return nil
}
