package gateway

import (
	"context"
	"net/http"

	"islandtracker/internal/types"
)

func (s *UnitTestSuite) TestProfileEndpoints() {
	ctx := context.Background()
	u := types.User{PublicKey: "pub", Name: "Tom", IslandName: "Nook", Fruit: types.Peach, Status: "🍑", TimeZone: "UTC"}
	s.NoError(s.client.CreateProfile(ctx, u))
	s.NoError(s.client.UpdateProfile(ctx, u))

	reqs := s.recorded()
	s.Require().Len(reqs, 2)
	s.Equal(http.MethodPost, reqs[0].Method)
	s.Equal("/api/CreateProfile", reqs[0].Path)
	s.Equal("code=c-create", reqs[0].Query)
	s.JSONEq(`{"publicKey":"pub","name":"Tom","islandName":"Nook","fruitKind":3,"status":"🍑","timeZone":"UTC"}`, reqs[0].Body)

	s.Equal(http.MethodPut, reqs[1].Method)
	s.Equal("/api/UpdateProfile", reqs[1].Path)
	s.Equal("code=c-update", reqs[1].Query)
}

func (s *UnitTestSuite) TestFriendEndpoints() {
	ctx := context.Background()
	req := types.FriendRequest{MyPublicKey: "me", FriendPublicKey: "you"}
	s.NoError(s.client.SubmitFriendRequest(ctx, req))
	s.NoError(s.client.ApproveFriendRequest(ctx, req))
	s.NoError(s.client.RejectFriendRequest(ctx, req))
	s.NoError(s.client.RemoveFriend(ctx, "me", "a/b+c"))

	reqs := s.recorded()
	s.Require().Len(reqs, 4)
	s.Equal("/api/SubmitFriendRequest", reqs[0].Path)
	s.Equal("/api/ApproveFriendRequest", reqs[1].Path)
	s.Equal("/api/RejectFriendRequest", reqs[2].Path)
	for _, r := range reqs[:3] {
		s.Equal(http.MethodPost, r.Method)
		s.JSONEq(`{"myPublicKey":"me","friendPublicKey":"you"}`, r.Body)
	}
	s.Equal(http.MethodDelete, reqs[3].Method)
	s.Equal("/api/RemoveFriend/me/a%2Fb+c", reqs[3].Path)
	s.Equal("code=c-remove", reqs[3].Query)
}

func (s *UnitTestSuite) TestReadPaths() {
	s.Equal("api/GetFriends/pub?code=c-friends", s.client.FriendsPath("pub"))
	s.Equal("api/GetFriendRequests/pub", s.client.FriendRequestsPath("pub"))
}
