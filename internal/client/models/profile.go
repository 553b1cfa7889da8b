package models

import "time"

// Profile is the user's document in the remote store. Besides identity
// fields it carries the backup copy of the exported encryption key, written
// best-effort on first initialization and refreshed on key import.
//
// The backup is the source of truth when no local cache exists (a fresh
// device); the local cache is authoritative for the running session.
type Profile struct {
	UserID        string    `bson:"_id"`
	Email         string    `bson:"email,omitempty"`
	EncryptionKey string    `bson:"encryption_key,omitempty"`
	KeyBackupAt   time.Time `bson:"key_backup_at,omitempty"`
}
