package keys

import "context"

// Repository is the local cache of exported encryption keys, one entry per
// user. The cache survives restarts so a returning user needs no remote
// round trip to unlock their data.
type Repository interface {
	// Get returns the cached exported key for userID, or "" when no entry
	// exists. A missing entry is not an error.
	Get(ctx context.Context, userID string) (string, error)

	// Set upserts the cached exported key. Last writer wins; import always
	// supersedes whatever was cached before.
	Set(ctx context.Context, userID string, exportedKey string) error

	// Delete removes the cached key, used on sign-out of a shared machine.
	Delete(ctx context.Context, userID string) error
}
