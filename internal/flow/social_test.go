package flow

import (
	"errors"
	"net/http"

	"islandtracker/internal/types"
)

func (s *UnitTestSuite) TestFriendWrites() {
	s.NoError(s.service.SubmitFriendRequest(s.ctx(), "f1"))
	s.NoError(s.service.ApproveFriendRequest(s.ctx(), "f2"))
	s.NoError(s.service.RejectFriendRequest(s.ctx(), "f3"))
	s.NoError(s.service.RemoveFriend(s.ctx(), "f4"))

	reqs := s.recorded()
	s.Require().Len(reqs, 4)

	s.Equal(http.MethodPost, reqs[0].Method)
	s.Equal("/api/SubmitFriendRequest", reqs[0].Path)
	s.JSONEq(`{"myPublicKey":"pub-key","friendPublicKey":"f1"}`, reqs[0].Body)

	s.Equal(http.MethodPost, reqs[1].Method)
	s.Equal("/api/ApproveFriendRequest", reqs[1].Path)
	s.JSONEq(`{"myPublicKey":"pub-key","friendPublicKey":"f2"}`, reqs[1].Body)

	s.Equal(http.MethodPost, reqs[2].Method)
	s.Equal("/api/RejectFriendRequest", reqs[2].Path)
	s.JSONEq(`{"myPublicKey":"pub-key","friendPublicKey":"f3"}`, reqs[2].Body)

	s.Equal(http.MethodDelete, reqs[3].Method)
	s.Equal("/api/RemoveFriend/pub-key/f4", reqs[3].Path)
	s.Empty(reqs[3].Body)

	// writes are never cached
	_, ok := s.cache.Get(s.ctx(), keyFriends)
	s.False(ok)
}

func (s *UnitTestSuite) TestFriendWritesOffline() {
	s.online.Store(false)
	for _, err := range []error{
		s.service.SubmitFriendRequest(s.ctx(), "f1"),
		s.service.ApproveFriendRequest(s.ctx(), "f1"),
		s.service.RejectFriendRequest(s.ctx(), "f1"),
		s.service.RemoveFriend(s.ctx(), "f1"),
	} {
		s.True(errors.Is(err, types.ErrTransport))
		s.True(errors.Is(err, types.ErrOffline))
	}
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestFriendWritesNeedKey() {
	s.True(errors.Is(s.service.SubmitFriendRequest(s.ctx(), ""), types.ErrValidation))
	s.True(errors.Is(s.service.RemoveFriend(s.ctx(), ""), types.ErrValidation))
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestFriendWriteRejected() {
	s.respond("/api/ApproveFriendRequest", http.StatusConflict, "already friends")
	err := s.service.ApproveFriendRequest(s.ctx(), "f1")
	var appErr *types.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal("already friends", appErr.Body)
}

func (s *UnitTestSuite) TestNewServiceRequiresCollaborators() {
	_, err := NewService(Deps{})
	s.Error(err)
}
