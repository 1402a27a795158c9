package gateway

import (
	"context"
	"net/url"
	"strings"

	"islandtracker/internal/types"
)

const (
	pathCreateProfile        = "api/CreateProfile"
	pathUpdateProfile        = "api/UpdateProfile"
	pathUpdateTurnipPrices   = "api/UpdateTurnipPrices"
	pathSubmitFriendRequest  = "api/SubmitFriendRequest"
	pathRejectFriendRequest  = "api/RejectFriendRequest"
	pathApproveFriendRequest = "api/ApproveFriendRequest"
	pathRemoveFriend         = "api/RemoveFriend"
	pathGetFriends           = "api/GetFriends"
	pathGetFriendRequests    = "api/GetFriendRequests"
)

// endpoint joins escaped path segments and appends the access code.
func endpoint(base, code string, segments ...string) string {
	var b strings.Builder
	b.WriteString(base)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	if code != "" {
		b.WriteString("?code=")
		b.WriteString(url.QueryEscape(code))
	}
	return b.String()
}

func (c *Client) CreateProfile(ctx context.Context, u types.User) error {
	return c.Post(ctx, endpoint(pathCreateProfile, c.codes.CreateProfile), u)
}

func (c *Client) UpdateProfile(ctx context.Context, u types.User) error {
	return c.Put(ctx, endpoint(pathUpdateProfile, c.codes.UpdateProfile), u)
}

func (c *Client) UpdateTurnipPrices(ctx context.Context, t types.TurnipUpdate) error {
	return c.Put(ctx, endpoint(pathUpdateTurnipPrices, c.codes.UpdateTurnipPrices), t)
}

func (c *Client) SubmitFriendRequest(ctx context.Context, r types.FriendRequest) error {
	return c.Post(ctx, endpoint(pathSubmitFriendRequest, c.codes.SubmitFriendRequest), r)
}

func (c *Client) RejectFriendRequest(ctx context.Context, r types.FriendRequest) error {
	return c.Post(ctx, endpoint(pathRejectFriendRequest, c.codes.RejectFriendRequest), r)
}

func (c *Client) ApproveFriendRequest(ctx context.Context, r types.FriendRequest) error {
	return c.Post(ctx, endpoint(pathApproveFriendRequest, c.codes.ApproveFriendRequest), r)
}

func (c *Client) RemoveFriend(ctx context.Context, publicKey, friendKey string) error {
	return c.Delete(ctx, endpoint(pathRemoveFriend, c.codes.RemoveFriend, publicKey, friendKey))
}

// FriendsPath is the GetFriends resource for publicKey.
func (c *Client) FriendsPath(publicKey string) string {
	return endpoint(pathGetFriends, c.codes.GetFriends, publicKey)
}

// FriendRequestsPath is the GetFriendRequests resource for publicKey.
func (c *Client) FriendRequestsPath(publicKey string) string {
	return endpoint(pathGetFriendRequests, c.codes.GetFriendRequests, publicKey)
}
