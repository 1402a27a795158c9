package types

import (
	"fmt"
	"time"
)

// AccessCodes holds the service-issued function code sent as the `code` query
// parameter. Every remote endpoint has its own code.
type AccessCodes struct {
	CreateProfile        string `env:"CODE_CREATE_PROFILE"`
	UpdateProfile        string `env:"CODE_UPDATE_PROFILE"`
	UpdateTurnipPrices   string `env:"CODE_UPDATE_TURNIP_PRICES"`
	SubmitFriendRequest  string `env:"CODE_SUBMIT_FRIEND_REQUEST"`
	RejectFriendRequest  string `env:"CODE_REJECT_FRIEND_REQUEST"`
	ApproveFriendRequest string `env:"CODE_APPROVE_FRIEND_REQUEST"`
	RemoveFriend         string `env:"CODE_REMOVE_FRIEND"`
	GetFriends           string `env:"CODE_GET_FRIENDS"`
	GetFriendRequests    string `env:"CODE_GET_FRIEND_REQUESTS"`
}

// TTLs sizes each cached resource independently.
type TTLs struct {
	Profile time.Duration `env:"PROFILE_TTL, default=24h"`
	Week    time.Duration `env:"WEEK_TTL, default=168h"`
	Social  time.Duration `env:"SOCIAL_TTL, default=5m"`
}

const (
	DefaultProfileTTL = 24 * time.Hour
	DefaultWeekTTL    = 7 * 24 * time.Hour
	DefaultSocialTTL  = 5 * time.Minute
)

// DefaultTTLs mirrors the env defaults for code that builds a service by hand.
func DefaultTTLs() TTLs {
	return TTLs{Profile: DefaultProfileTTL, Week: DefaultWeekTTL, Social: DefaultSocialTTL}
}

func (t TTLs) Validate() error {
	if t.Profile <= 0 {
		return fmt.Errorf("profile ttl must be positive")
	}
	if t.Week <= 0 {
		return fmt.Errorf("week ttl must be positive")
	}
	if t.Social <= 0 {
		return fmt.Errorf("social ttl must be positive")
	}
	return nil
}
