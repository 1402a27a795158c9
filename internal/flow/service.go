package flow

import (
	"context"
	"fmt"
	"time"

	"islandtracker/internal/cache"
	"islandtracker/internal/gateway"
	"islandtracker/internal/ports"
	"islandtracker/internal/registration"
	"islandtracker/internal/types"

	"github.com/jonboulle/clockwork"
)

const (
	keyProfile        = "profile"
	keyFriends        = "get_friends"
	keyFriendRequests = "get_friend_requests"
)

// Deps are the collaborators a Service is built from. Cache, Gateway, Settings,
// Identity and Connectivity are required.
type Deps struct {
	Cache        *cache.Store
	Gateway      *gateway.Client
	Settings     ports.SettingsStore
	Identity     ports.IdentityProvider
	Connectivity ports.Connectivity
	// Clock defaults to the wall clock. It must be the same clock the cache store uses.
	Clock clockwork.Clock
	// Location is the device time zone used for week keys and day-of-year stamps.
	Location *time.Location
	// TTL defaults to types.DefaultTTLs when zero.
	TTL types.TTLs
}

// Service is the single entry point of the data layer. One Service per process.
type Service struct {
	cache        *cache.Store
	gw           *gateway.Client
	reg          *registration.Machine
	identity     ports.IdentityProvider
	connectivity ports.Connectivity
	clock        clockwork.Clock
	loc          *time.Location
	ttl          types.TTLs
}

func NewService(d Deps) (*Service, error) {
	switch {
	case d.Cache == nil:
		return nil, fmt.Errorf("cache store is required")
	case d.Gateway == nil:
		return nil, fmt.Errorf("gateway is required")
	case d.Settings == nil:
		return nil, fmt.Errorf("settings store is required")
	case d.Identity == nil:
		return nil, fmt.Errorf("identity provider is required")
	case d.Connectivity == nil:
		return nil, fmt.Errorf("connectivity signal is required")
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.Location == nil {
		d.Location = time.Local
	}
	if d.TTL == (types.TTLs{}) {
		d.TTL = types.DefaultTTLs()
	}
	if err := d.TTL.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cache:        d.Cache,
		gw:           d.Gateway,
		reg:          registration.New(d.Settings, d.Gateway),
		identity:     d.Identity,
		connectivity: d.Connectivity,
		clock:        d.Clock,
		loc:          d.Location,
		ttl:          d.TTL,
	}, nil
}

// now is the current instant in the device time zone.
func (s *Service) now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Today is the current day of the week in the device time zone.
func (s *Service) Today() time.Weekday {
	return s.now().Weekday()
}

// CurrentWeekKey is the cache key of this week's price sheet.
func (s *Service) CurrentWeekKey() string {
	return WeekKey(s.now())
}

// RegistrationState reports whether this identity was created remotely.
func (s *Service) RegistrationState(ctx context.Context) (registration.State, error) {
	return s.reg.State(ctx)
}

// requireOnline fails writes up front; nothing is queued for later.
func (s *Service) requireOnline(op string) error {
	if s.connectivity.Online() {
		return nil
	}
	return &types.TransportError{Method: op, Err: types.ErrOffline}
}

func (s *Service) publicKey(ctx context.Context) (string, error) {
	id, err := s.identity.Identity(ctx)
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	return id.PublicKey, nil
}
