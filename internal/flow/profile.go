package flow

import (
	"context"

	"islandtracker/internal/cache"
	"islandtracker/internal/registration"
	"islandtracker/internal/types"

	log "github.com/sirupsen/logrus"
)

// GetProfile returns the locally saved profile, or the default one if none was saved.
// Expiry is ignored: the profile is local data.
func (s *Service) GetProfile(ctx context.Context) types.Profile {
	if p, ok := cache.GetJSON[types.Profile](ctx, s.cache, keyProfile); ok {
		return p
	}
	return types.DefaultProfile()
}

func (s *Service) SaveProfile(ctx context.Context, p types.Profile) error {
	return cache.PutJSON(ctx, s.cache, keyProfile, p, s.ttl.Profile)
}

// UpsertUserProfile pushes p, or the saved profile when p is nil, to the remote
// service. The first successful push creates the remote record; later ones update it.
// An incomplete profile is rejected before any network call.
func (s *Service) UpsertUserProfile(ctx context.Context, p *types.Profile) (registration.State, error) {
	profile := s.GetProfile(ctx)
	if p != nil {
		profile = *p
	}
	if err := profile.Validate(); err != nil {
		return s.stateOrUnregistered(ctx), err
	}
	if err := s.requireOnline("UPSERT"); err != nil {
		return s.stateOrUnregistered(ctx), err
	}
	pub, err := s.publicKey(ctx)
	if err != nil {
		return s.stateOrUnregistered(ctx), err
	}
	user := types.NewUser(profile, pub)
	if err := user.Validate(); err != nil {
		return s.stateOrUnregistered(ctx), err
	}
	return s.reg.Upsert(ctx, user)
}

func (s *Service) stateOrUnregistered(ctx context.Context) registration.State {
	st, err := s.reg.State(ctx)
	if err != nil {
		log.WithError(err).Warn("registration state unreadable")
	}
	return st
}
