// Package registration routes profile upserts to the create or update endpoint
// depending on whether this device's identity exists remotely yet.
package registration

import (
	"context"
	"sync"

	"islandtracker/internal/ports"
	"islandtracker/internal/types"

	log "github.com/sirupsen/logrus"
)

type State int

const (
	Unregistered State = iota
	Registered
)

var StateTextMap = map[State]string{
	Unregistered: "unregistered",
	Registered:   "registered",
}

func (s State) String() string { return StateTextMap[s] }

// Remote is the part of the gateway the machine drives.
type Remote interface {
	CreateProfile(ctx context.Context, u types.User) error
	UpdateProfile(ctx context.Context, u types.User) error
}

// Machine moves Unregistered -> Registered once, on the first successful create.
// Upserts are serialized so two concurrent first upserts cannot both create.
type Machine struct {
	mu       sync.Mutex
	settings ports.SettingsStore
	remote   Remote
}

func New(settings ports.SettingsStore, remote Remote) *Machine {
	return &Machine{settings: settings, remote: remote}
}

// State reads the persisted flag.
func (m *Machine) State(ctx context.Context) (State, error) {
	ok, err := m.settings.HasRegistered(ctx)
	if err != nil {
		return Unregistered, types.Err(types.ErrDataStoreAccess, err, "read registration state")
	}
	if ok {
		return Registered, nil
	}
	return Unregistered, nil
}

// Upsert creates the remote profile when unregistered and updates it otherwise.
// It returns the state after the call. Any failure leaves the state unchanged.
func (m *Machine) Upsert(ctx context.Context, u types.User) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, err := m.State(ctx)
	if err != nil {
		return st, err
	}
	if st == Registered {
		return Registered, m.remote.UpdateProfile(ctx, u)
	}

	if err := m.remote.CreateProfile(ctx, u); err != nil {
		return Unregistered, err
	}
	// the remote record exists now; if the flag cannot be written the next upsert
	// goes through create again
	if err := m.settings.SetRegistered(ctx); err != nil {
		return Unregistered, types.Err(types.ErrDataStoreAccess, err, "persist registration")
	}
	log.WithField("publicKey", u.PublicKey).Info("profile registered")
	return Registered, nil
}
