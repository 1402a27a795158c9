package ports

import (
	"context"
	"islandtracker/internal/types"
)

// IdentityProvider reads the device key pair from secure storage.
type IdentityProvider interface {
	Identity(ctx context.Context) (types.Identity, error)
}

// Connectivity reports whether the device currently has network access.
type Connectivity interface {
	Online() bool
}

// ConnectivityFunc adapts a plain function to Connectivity.
type ConnectivityFunc func() bool

func (f ConnectivityFunc) Online() bool { return f() }

// StaticIdentity serves a fixed key pair, e.g. one loaded from the environment.
type StaticIdentity types.Identity

func (s StaticIdentity) Identity(context.Context) (types.Identity, error) {
	return types.Identity(s), nil
}
