package flow

import (
	"context"
	"errors"
	"net/http"
	"time"

	"islandtracker/internal/ports"
	"islandtracker/internal/registration"
	"islandtracker/internal/types"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

var testProfile = types.Profile{
	Name:       "Tom",
	IslandName: "Nook",
	Fruit:      types.Peach,
	Status:     "fishing",
	TimeZone:   "Europe/Paris",
}

func (s *UnitTestSuite) TestDefaultProfile() {
	p := s.service.GetProfile(s.ctx())
	s.Equal(types.Apple, p.Fruit)
	s.Equal("😍", p.Status)
	s.Empty(p.Name)
}

func (s *UnitTestSuite) TestSaveProfileSurvivesExpiry() {
	s.NoError(s.service.SaveProfile(s.ctx(), testProfile))
	s.clock.Advance(48 * time.Hour)
	s.Equal(testProfile, s.service.GetProfile(s.ctx()))
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestUpsertCreatesOnceThenUpdates() {
	s.NoError(s.service.SaveProfile(s.ctx(), testProfile))

	st, err := s.service.UpsertUserProfile(s.ctx(), nil)
	s.NoError(err)
	s.Equal(registration.Registered, st)

	st, err = s.service.UpsertUserProfile(s.ctx(), nil)
	s.NoError(err)
	s.Equal(registration.Registered, st)

	reqs := s.recorded()
	s.Require().Len(reqs, 2)
	s.Equal(http.MethodPost, reqs[0].Method)
	s.Equal("/api/CreateProfile", reqs[0].Path)
	s.Equal("code=c-create", reqs[0].Query)
	s.Equal(http.MethodPut, reqs[1].Method)
	s.Equal("/api/UpdateProfile", reqs[1].Path)
	s.Equal(reqs[0].Body, reqs[1].Body)

	var u types.User
	s.NoError(json.Unmarshal([]byte(reqs[0].Body), &u))
	s.Equal(types.NewUser(testProfile, testPublicKey), u)

	ok, err := s.backend.HasRegistered(s.ctx())
	s.NoError(err)
	s.True(ok)
}

func (s *UnitTestSuite) TestUpsertExplicitProfile() {
	p := testProfile
	p.Status = ""
	_, err := s.service.UpsertUserProfile(s.ctx(), &p)
	s.NoError(err)

	reqs := s.recorded()
	s.Require().Len(reqs, 1)
	s.JSONEq(`{"publicKey":"pub-key","name":"Tom","islandName":"Nook","fruitKind":3,"status":"","timeZone":"Europe/Paris"}`, reqs[0].Body)
}

func (s *UnitTestSuite) TestUpsertValidatesBeforeNetwork() {
	// the default profile has no name, island or time zone
	st, err := s.service.UpsertUserProfile(s.ctx(), nil)
	s.Equal(registration.Unregistered, st)
	s.True(errors.Is(err, types.ErrValidation))
	var ve *types.ValidationError
	s.Require().True(errors.As(err, &ve))
	s.ElementsMatch([]string{"name", "islandName", "timeZone"}, ve.Fields)
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestUpsertOffline() {
	s.online.Store(false)
	st, err := s.service.UpsertUserProfile(s.ctx(), &testProfile)
	s.Equal(registration.Unregistered, st)
	s.True(errors.Is(err, types.ErrTransport))
	s.True(errors.Is(err, types.ErrOffline))
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestFailedCreateRetriedThroughCreate() {
	s.respond("/api/CreateProfile", http.StatusBadRequest, "island name taken")

	st, err := s.service.UpsertUserProfile(s.ctx(), &testProfile)
	s.Equal(registration.Unregistered, st)
	var appErr *types.ApplicationError
	s.Require().True(errors.As(err, &appErr))
	s.Equal("island name taken", appErr.Body)

	s.respond("/api/CreateProfile", http.StatusOK, "")
	st, err = s.service.UpsertUserProfile(s.ctx(), &testProfile)
	s.NoError(err)
	s.Equal(registration.Registered, st)

	state, err := s.service.RegistrationState(s.ctx())
	s.NoError(err)
	s.Equal(registration.Registered, state)

	reqs := s.recorded()
	s.Require().Len(reqs, 2)
	s.Equal("/api/CreateProfile", reqs[0].Path)
	s.Equal("/api/CreateProfile", reqs[1].Path)
}

func (s *UnitTestSuite) TestUpsertRejectsEmptyPublicKey() {
	svc, err := NewService(Deps{
		Cache:        s.cache,
		Gateway:      s.gw,
		Settings:     s.backend,
		Identity:     ports.StaticIdentity{PrivateKey: "secret"},
		Connectivity: ports.ConnectivityFunc(s.online.Load),
		Clock:        s.clock,
		Location:     time.UTC,
	})
	s.Require().NoError(err)

	st, err := svc.UpsertUserProfile(s.ctx(), &testProfile)
	s.Equal(registration.Unregistered, st)
	var ve *types.ValidationError
	s.Require().True(errors.As(err, &ve))
	s.Equal([]string{"publicKey"}, ve.Fields)
	s.Empty(s.recorded())
}

func (s *UnitTestSuite) TestUnreadableStateLoggedOnFailedUpsert() {
	hook := test.NewGlobal()
	defer hook.Reset()

	svc, err := NewService(Deps{
		Cache:        s.cache,
		Gateway:      s.gw,
		Settings:     brokenSettings{},
		Identity:     ports.StaticIdentity{PublicKey: testPublicKey, PrivateKey: "secret"},
		Connectivity: ports.ConnectivityFunc(s.online.Load),
		Clock:        s.clock,
		Location:     time.UTC,
	})
	s.Require().NoError(err)

	// validation fails first; the state lookup behind it fails too
	st, err := svc.UpsertUserProfile(s.ctx(), nil)
	s.Equal(registration.Unregistered, st)
	s.True(errors.Is(err, types.ErrValidation))

	entry := hook.LastEntry()
	s.Require().NotNil(entry)
	s.Equal(log.WarnLevel, entry.Level)
	s.Equal("registration state unreadable", entry.Message)
	s.Empty(s.recorded())
}

type brokenSettings struct{}

func (brokenSettings) HasRegistered(context.Context) (bool, error) {
	return false, errors.New("disk gone")
}

func (brokenSettings) SetRegistered(context.Context) error {
	return errors.New("disk gone")
}
