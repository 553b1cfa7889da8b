package keystore

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/models"
	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/dmitrijs2005/budgetkeeper/internal/keycrypt"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyRepo struct {
	entries map[string]string
	getErr  error
	setErr  error
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{entries: map[string]string{}}
}

func (f *fakeKeyRepo) Get(ctx context.Context, userID string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return f.entries[userID], nil
}

func (f *fakeKeyRepo) Set(ctx context.Context, userID, exportedKey string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[userID] = exportedKey
	return nil
}

func (f *fakeKeyRepo) Delete(ctx context.Context, userID string) error {
	delete(f.entries, userID)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
	getErr   error
	saveErr  error
	saves    int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileRepo) Get(ctx context.Context, userID string) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProfileRepo) SaveKeyBackup(ctx context.Context, userID, exportedKey string, at time.Time) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		p = &models.Profile{UserID: userID}
		f.profiles[userID] = p
	}
	p.EncryptionKey = exportedKey
	p.KeyBackupAt = at
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newStore(cache *fakeKeyRepo, profileRepo *fakeProfileRepo, sharedSecret string) *Store {
	return New(cache, profileRepo, sharedSecret, testLogger())
}

func TestLoadOrInit_FirstCall_GeneratesCachesAndBacksUp(t *testing.T) {
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	s := newStore(cache, profileRepo, "")
	ctx := context.Background()

	key, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, key, keycrypt.KeySize)

	assert.Equal(t, keycrypt.ExportKey(key), cache.entries["u-1"], "key must be cached locally")
	require.Contains(t, profileRepo.profiles, "u-1")
	assert.Equal(t, keycrypt.ExportKey(key), profileRepo.profiles["u-1"].EncryptionKey, "backup must hold the exported key")
	assert.False(t, profileRepo.profiles["u-1"].KeyBackupAt.IsZero())
}

func TestLoadOrInit_SecondCall_ReturnsCachedKey(t *testing.T) {
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	s := newStore(cache, profileRepo, "")
	ctx := context.Background()

	key1, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)
	key2, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
	assert.Equal(t, 1, profileRepo.saves, "cache hit must not rewrite the backup")
}

func TestLoadOrInit_SharedSecret_DeterministicAcrossDevices(t *testing.T) {
	ctx := context.Background()

	// Two devices: separate caches, separate remotes, same shared secret.
	s1 := newStore(newFakeKeyRepo(), newFakeProfileRepo(), "family-secret")
	s2 := newStore(newFakeKeyRepo(), newFakeProfileRepo(), "family-secret")

	key1, err := s1.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)
	key2, err := s2.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	assert.Equal(t, key1, key2, "derived keys must converge without coordination")
}

func TestLoadOrInit_EmptyCache_UsesRemoteBackup(t *testing.T) {
	ctx := context.Background()

	key, err := keycrypt.GenerateKey()
	require.NoError(t, err)
	exported := keycrypt.ExportKey(key)

	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles["u-1"] = &models.Profile{UserID: "u-1", EncryptionKey: exported}

	s := newStore(cache, profileRepo, "")
	got, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	assert.Equal(t, key, got, "remote backup is the source of truth when no local cache exists")
	assert.Equal(t, exported, cache.entries["u-1"], "backup key must be cached for next session")
	assert.Equal(t, 0, profileRepo.saves, "restoring from backup must not rewrite it")
}

func TestLoadOrInit_CorruptCache_FallsBackToBackup(t *testing.T) {
	ctx := context.Background()

	key, err := keycrypt.GenerateKey()
	require.NoError(t, err)
	exported := keycrypt.ExportKey(key)

	cache := newFakeKeyRepo()
	cache.entries["u-1"] = "%%%corrupt%%%"
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles["u-1"] = &models.Profile{UserID: "u-1", EncryptionKey: exported}

	s := newStore(cache, profileRepo, "")
	got, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, key, got)
}

func TestLoadOrInit_BackupWriteFailure_IsNonFatal(t *testing.T) {
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	profileRepo.saveErr = errors.New("remote down")

	s := newStore(cache, profileRepo, "")
	key, err := s.LoadOrInit(context.Background(), "u-1")

	require.NoError(t, err, "remote backup failure must not fail initialization")
	require.Len(t, key, keycrypt.KeySize)
	assert.NotEmpty(t, cache.entries["u-1"], "local cache remains authoritative")
}

func TestLoadOrInit_BackupReadFailure_GeneratesFresh(t *testing.T) {
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	profileRepo.getErr = errors.New("remote down")

	s := newStore(cache, profileRepo, "")
	key, err := s.LoadOrInit(context.Background(), "u-1")

	require.NoError(t, err)
	require.Len(t, key, keycrypt.KeySize)
}

func TestLoadOrInit_CacheWriteFailure_Fails(t *testing.T) {
	cache := newFakeKeyRepo()
	cache.setErr = errors.New("disk full")

	s := newStore(cache, newFakeProfileRepo(), "")
	_, err := s.LoadOrInit(context.Background(), "u-1")
	require.Error(t, err)
}

func TestImportFromString_OverwritesCacheAndBackup(t *testing.T) {
	ctx := context.Background()
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	s := newStore(cache, profileRepo, "")

	// An existing key from a previous session.
	_, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	replacement, err := keycrypt.GenerateKey()
	require.NoError(t, err)
	exported := keycrypt.ExportKey(replacement)

	got, err := s.ImportFromString(ctx, "u-1", exported)
	require.NoError(t, err)

	assert.Equal(t, replacement, got)
	assert.Equal(t, exported, cache.entries["u-1"], "import supersedes the cached key")
	assert.Equal(t, exported, profileRepo.profiles["u-1"].EncryptionKey)
}

func TestImportFromString_InvalidInput_LeavesCacheUntouched(t *testing.T) {
	ctx := context.Background()
	cache := newFakeKeyRepo()
	cache.entries["u-1"] = "previous-key"
	s := newStore(cache, newFakeProfileRepo(), "")

	_, err := s.ImportFromString(ctx, "u-1", "%%%not-base64%%%")
	require.ErrorIs(t, err, common.ErrInvalidKeyFormat)
	assert.Equal(t, "previous-key", cache.entries["u-1"])
}

func TestExportForDisplay_RoundTripsThroughImport(t *testing.T) {
	ctx := context.Background()
	s := newStore(newFakeKeyRepo(), newFakeProfileRepo(), "")

	key, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	exported := s.ExportForDisplay(key)
	imported, err := keycrypt.ImportKey(exported)
	require.NoError(t, err)
	assert.Equal(t, key, imported)
}

func TestForget_RemovesLocalEntryOnly(t *testing.T) {
	ctx := context.Background()
	cache := newFakeKeyRepo()
	profileRepo := newFakeProfileRepo()
	s := newStore(cache, profileRepo, "")

	_, err := s.LoadOrInit(ctx, "u-1")
	require.NoError(t, err)

	require.NoError(t, s.Forget(ctx, "u-1"))
	assert.Empty(t, cache.entries["u-1"])
	assert.NotEmpty(t, profileRepo.profiles["u-1"].EncryptionKey, "remote backup stays")
}
