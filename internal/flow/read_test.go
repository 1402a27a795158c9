package flow

import (
	"errors"
	"net/http"
	"time"

	"islandtracker/internal/types"
)

const (
	friendsPath  = "/api/GetFriends/" + testPublicKey
	friendsBody  = `[{"publicKey":"f1","name":"Ann","islandName":"Nook","fruitKind":2,"morningPrice":120}]`
	friendsBody2 = `[{"publicKey":"f2","name":"Bob","islandName":"Isla","fruitKind":1}]`
)

func (s *UnitTestSuite) TestOfflineEmptyCacheMakesNoCall() {
	s.online.Store(false)

	res, err := s.service.GetFriends(s.ctx(), true)
	s.NoError(err)
	s.False(res.Found())
	s.Equal(SourceNone, res.Source)
	s.Nil(res.Value)
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestOfflineServesExpiredEntry() {
	s.respond(friendsPath, http.StatusOK, friendsBody)
	_, err := s.service.GetFriends(s.ctx(), false)
	s.Require().NoError(err)
	s.Len(s.recorded(), 1)

	s.online.Store(false)
	s.clock.Advance(time.Hour)

	res, err := s.service.GetFriends(s.ctx(), true)
	s.NoError(err)
	s.Equal(SourceCache, res.Source)
	s.True(res.Stale)
	s.Require().Len(res.Value, 1)
	s.Equal("Ann", res.Value[0].Name)
	s.Equal(types.Orange, res.Value[0].Fruit)
	s.Len(s.recorded(), 1)
}

func (s *UnitTestSuite) TestFreshEntryServedWithoutCall() {
	s.respond(friendsPath, http.StatusOK, friendsBody)

	res, err := s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	s.Equal(SourceNetwork, res.Source)
	s.False(res.Stale)

	s.clock.Advance(4 * time.Minute)
	res, err = s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	s.Equal(SourceCache, res.Source)
	s.False(res.Stale)
	s.Equal("f1", res.Value[0].PublicKey)

	reqs := s.recorded()
	s.Require().Len(reqs, 1)
	s.Equal(http.MethodGet, reqs[0].Method)
	s.Equal(friendsPath, reqs[0].Path)
	s.Equal("code=c-friends", reqs[0].Query)
}

func (s *UnitTestSuite) TestExpiredEntryRefetched() {
	s.respond(friendsPath, http.StatusOK, friendsBody)
	_, err := s.service.GetFriends(s.ctx(), false)
	s.Require().NoError(err)

	s.respond(friendsPath, http.StatusOK, friendsBody2)
	s.clock.Advance(5 * time.Minute)

	res, err := s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	s.Equal(SourceNetwork, res.Source)
	s.Equal("Bob", res.Value[0].Name)
	s.Len(s.recorded(), 2)

	// written through: served from cache now
	res, err = s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	s.Equal(SourceCache, res.Source)
	s.Equal("Bob", res.Value[0].Name)
	s.Len(s.recorded(), 2)
}

func (s *UnitTestSuite) TestForceRefreshBypassesFreshEntry() {
	s.respond(friendsPath, http.StatusOK, friendsBody)
	_, err := s.service.GetFriends(s.ctx(), false)
	s.Require().NoError(err)

	s.respond(friendsPath, http.StatusOK, friendsBody2)
	res, err := s.service.GetFriends(s.ctx(), true)
	s.NoError(err)
	s.Equal(SourceNetwork, res.Source)
	s.Equal("Bob", res.Value[0].Name)
	s.Len(s.recorded(), 2)
}

func (s *UnitTestSuite) TestFailedRefreshHasNoStaleFallback() {
	s.respond(friendsPath, http.StatusOK, friendsBody)
	_, err := s.service.GetFriends(s.ctx(), false)
	s.Require().NoError(err)

	s.respond(friendsPath, http.StatusInternalServerError, "storage unavailable")
	s.clock.Advance(10 * time.Minute)

	res, err := s.service.GetFriends(s.ctx(), false)
	s.Error(err)
	s.True(errors.Is(err, types.ErrApplication))
	s.False(errors.Is(err, types.ErrNotFound))
	var appErr *types.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal(http.StatusInternalServerError, appErr.StatusCode)
	s.Equal("storage unavailable", appErr.Body)
	s.Nil(res.Value)
	s.False(res.Found())

	// the old entry is still there for offline use
	s.online.Store(false)
	res, err = s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	s.True(res.Stale)
	s.Equal("Ann", res.Value[0].Name)
}

func (s *UnitTestSuite) TestNotFoundDistinguishable() {
	s.respond("/api/GetFriendRequests/"+testPublicKey, http.StatusNotFound, "no such user")

	_, err := s.service.GetFriendRequests(s.ctx(), false)
	s.True(errors.Is(err, types.ErrNotFound))
	s.True(errors.Is(err, types.ErrApplication))
}

func (s *UnitTestSuite) TestUndecodableResponse() {
	s.respond(friendsPath, http.StatusOK, `{"not":"a list"}`)

	_, err := s.service.GetFriends(s.ctx(), false)
	s.True(errors.Is(err, types.ErrDecode))

	// the raw body was written through, so the next read within the ttl decodes it again
	b, ok := s.cache.Get(s.ctx(), keyFriends)
	s.True(ok)
	s.Equal(`{"not":"a list"}`, string(b))

	_, err = s.service.GetFriends(s.ctx(), false)
	s.True(errors.Is(err, types.ErrDecode))
	s.Len(s.recorded(), 1)
}

func (s *UnitTestSuite) TestUndecodableCachedValue() {
	s.Require().NoError(s.cache.Put(s.ctx(), keyFriends, []byte("garbage"), time.Minute))

	_, err := s.service.GetFriends(s.ctx(), false)
	var decErr *types.DecodeError
	s.Require().True(errors.As(err, &decErr))
	s.Equal(keyFriends, decErr.Key)
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestFriendRequestsKeyedSeparately() {
	s.respond(friendsPath, http.StatusOK, friendsBody)
	s.respond("/api/GetFriendRequests/"+testPublicKey, http.StatusOK,
		`[{"requesterPublicKey":"r1","name":"Cy","islandName":"Palm"}]`)

	friends, err := s.service.GetFriends(s.ctx(), false)
	s.NoError(err)
	requests, err := s.service.GetFriendRequests(s.ctx(), false)
	s.NoError(err)

	s.Equal("f1", friends.Value[0].PublicKey)
	s.Equal("r1", requests.Value[0].RequesterPublicKey)
	s.Equal("code=c-requests", s.recorded()[1].Query)

	_, ok := s.cache.Get(s.ctx(), "get_friend_requests")
	s.True(ok)
}

func (s *UnitTestSuite) TestSourceText() {
	s.Equal("none", SourceNone.String())
	s.Equal("cache", SourceCache.String())
	s.Equal("network", SourceNetwork.String())
}
