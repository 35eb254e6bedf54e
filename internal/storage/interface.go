package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been written.
// Callers treat it as "first run for that field", never as a failure.
var ErrKeyNotFound = errors.New("key not found")

// Logical keys, one per persisted profile field
const (
	KeyNickname      = "nickname"
	KeyExperience    = "experience"
	KeyCurrency      = "currency"
	KeyInventory     = "inventory"
	KeyEquipped      = "equipped"
	KeySettings      = "settings"
	KeyLastLoginDate = "last_login_date"
	KeyLoginStreak   = "login_streak"
)

// Store defines the interface for durable key-value persistence.
// Implementations own a namespace; Clear removes only keys within it,
// never unrelated data sharing the underlying storage.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
