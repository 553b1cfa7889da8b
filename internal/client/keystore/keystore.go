// Package keystore manages a user's encryption key across sessions and
// devices: a local cache entry per user, backed by a best-effort copy on the
// user's remote profile document.
package keystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/keys"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/keycrypt"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
)

// Store resolves key material for a user.
//
// Resolution order in LoadOrInit: local cache, then the remote profile
// backup, then fresh derivation/generation. The local cache is authoritative
// for the running session; the remote backup is the source of truth only
// when no local cache exists (a new device).
type Store struct {
	cache        keys.Repository
	profileRepo  profiles.Repository
	sharedSecret string
	log          logging.Logger
	now          func() time.Time
}

func New(cache keys.Repository, profileRepo profiles.Repository, sharedSecret string, log logging.Logger) *Store {
	return &Store{
		cache:        cache,
		profileRepo:  profileRepo,
		sharedSecret: sharedSecret,
		log:          log,
		now:          time.Now,
	}
}

// LoadOrInit returns the user's key, creating and persisting one when none
// exists yet. After it returns successfully, field encrypt/decrypt calls for
// this user succeed for the remainder of the session.
//
// The operation is idempotent: repeating it is safe, and two concurrent
// sessions converge to the same key when a shared secret is configured.
// Without a shared secret two racing first initializations may each publish
// a different random key; the backup write is last-writer-wins and this race
// is accepted.
func (s *Store) LoadOrInit(ctx context.Context, userID string) ([]byte, error) {
	exported, err := s.cache.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("key cache read failed: %w", err)
	}
	if exported != "" {
		key, err := keycrypt.ImportKey(exported)
		if err == nil {
			return key, nil
		}
		// A corrupt cache entry is treated as a miss; the remote backup is
		// the next best source.
		s.log.Warn(ctx, "cached key is malformed, falling back", "user_id", userID, "error", err)
	}

	if key := s.loadFromBackup(ctx, userID); key != nil {
		return key, nil
	}

	key, err := keycrypt.DeriveOrGenerateKey(userID, s.sharedSecret)
	if err != nil {
		return nil, err
	}

	exported = keycrypt.ExportKey(key)
	if err := s.cache.Set(ctx, userID, exported); err != nil {
		return nil, fmt.Errorf("key cache write failed: %w", err)
	}

	s.backupBestEffort(ctx, userID, exported)
	return key, nil
}

// loadFromBackup tries the remote profile backup. Any failure, including an
// unreachable remote, is logged and treated as "no backup": the caller then
// derives or generates, matching the non-fatal remote policy.
func (s *Store) loadFromBackup(ctx context.Context, userID string) []byte {
	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.log.Warn(ctx, "key backup read failed", "user_id", userID, "error", err)
		}
		return nil
	}
	if profile.EncryptionKey == "" {
		return nil
	}

	key, err := keycrypt.ImportKey(profile.EncryptionKey)
	if err != nil {
		s.log.Warn(ctx, "key backup is malformed, ignoring", "user_id", userID, "error", err)
		return nil
	}

	if err := s.cache.Set(ctx, userID, profile.EncryptionKey); err != nil {
		s.log.Warn(ctx, "failed to cache key from backup", "user_id", userID, "error", err)
	}
	return key
}

func (s *Store) backupBestEffort(ctx context.Context, userID, exported string) {
	if err := s.profileRepo.SaveKeyBackup(ctx, userID, exported, s.now().UTC()); err != nil {
		s.log.Warn(ctx, "key backup write failed, local cache remains authoritative",
			"user_id", userID, "error", err)
	}
}

// ExportForDisplay encodes the key to a copy-pasteable text form for
// user-initiated backup or transfer to another device. Callers must warn
// the user that this string is sensitive.
func (s *Store) ExportForDisplay(key []byte) string {
	return keycrypt.ExportKey(key)
}

// ImportFromString decodes and validates an exported key, overwrites the
// local cache, and best-effort refreshes the remote backup. Import always
// supersedes whatever key was cached; there is no merge. On a malformed
// string it fails with common.ErrInvalidKeyFormat and leaves the cache
// untouched.
func (s *Store) ImportFromString(ctx context.Context, userID, exported string) ([]byte, error) {
	key, err := keycrypt.ImportKey(exported)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, exported); err != nil {
		return nil, fmt.Errorf("key cache write failed: %w", err)
	}

	s.backupBestEffort(ctx, userID, exported)
	return key, nil
}

// Forget removes the locally cached key, used on sign-out of a shared
// machine. The remote backup is left in place.
func (s *Store) Forget(ctx context.Context, userID string) error {
	return s.cache.Delete(ctx, userID)
}
