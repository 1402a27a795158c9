package flow

import (
	"context"

	"islandtracker/internal/types"
)

func (s *Service) GetFriends(ctx context.Context, force bool) (Result[[]types.FriendStatus], error) {
	return Read[[]types.FriendStatus](ctx, s, keyFriends, func(ctx context.Context) (string, error) {
		pub, err := s.publicKey(ctx)
		if err != nil {
			return "", err
		}
		return s.gw.FriendsPath(pub), nil
	}, s.ttl.Social, force)
}

func (s *Service) GetFriendRequests(ctx context.Context, force bool) (Result[[]types.PendingFriendRequest], error) {
	return Read[[]types.PendingFriendRequest](ctx, s, keyFriendRequests, func(ctx context.Context) (string, error) {
		pub, err := s.publicKey(ctx)
		if err != nil {
			return "", err
		}
		return s.gw.FriendRequestsPath(pub), nil
	}, s.ttl.Social, force)
}

func (s *Service) SubmitFriendRequest(ctx context.Context, friendKey string) error {
	r, err := s.friendRequest(ctx, "POST", friendKey)
	if err != nil {
		return err
	}
	return s.gw.SubmitFriendRequest(ctx, r)
}

func (s *Service) RejectFriendRequest(ctx context.Context, requesterKey string) error {
	r, err := s.friendRequest(ctx, "POST", requesterKey)
	if err != nil {
		return err
	}
	return s.gw.RejectFriendRequest(ctx, r)
}

func (s *Service) ApproveFriendRequest(ctx context.Context, requesterKey string) error {
	r, err := s.friendRequest(ctx, "POST", requesterKey)
	if err != nil {
		return err
	}
	return s.gw.ApproveFriendRequest(ctx, r)
}

func (s *Service) RemoveFriend(ctx context.Context, friendKey string) error {
	if friendKey == "" {
		return errMissingFriendKey()
	}
	if err := s.requireOnline("DELETE"); err != nil {
		return err
	}
	pub, err := s.publicKey(ctx)
	if err != nil {
		return err
	}
	return s.gw.RemoveFriend(ctx, pub, friendKey)
}

func (s *Service) friendRequest(ctx context.Context, method, friendKey string) (types.FriendRequest, error) {
	if friendKey == "" {
		return types.FriendRequest{}, errMissingFriendKey()
	}
	if err := s.requireOnline(method); err != nil {
		return types.FriendRequest{}, err
	}
	pub, err := s.publicKey(ctx)
	if err != nil {
		return types.FriendRequest{}, err
	}
	return types.FriendRequest{MyPublicKey: pub, FriendPublicKey: friendKey}, nil
}

func errMissingFriendKey() error {
	return &types.ValidationError{Fields: []string{"friendPublicKey"}, Msg: "friendPublicKey is required"}
}
