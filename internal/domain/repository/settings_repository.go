package repository

import (
	"context"
)

// SettingsStore is a key-value store of JSON documents
type SettingsStore interface {
	// Load decodes the value under key into dest. It reports false when the
	// key has never been written.
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
}

// DataResetter wipes every persisted record: catalog, bills, counters and
// stored settings
type DataResetter interface {
	Reset(ctx context.Context) error
}
