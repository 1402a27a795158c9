package ports

import "context"

// SettingsStore persists the one-way registration flag.
type SettingsStore interface {
	// HasRegistered returns false when the flag was never written.
	HasRegistered(ctx context.Context) (bool, error)

	// SetRegistered persists hasRegistered = true. There is no way back.
	SetRegistered(ctx context.Context) error
}
