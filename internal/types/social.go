package types

import "time"

// FriendStatus is one row of GetFriends. It is passed through as the service returns it.
type FriendStatus struct {
	PublicKey          string    `json:"publicKey"`
	Name               string    `json:"name"`
	IslandName         string    `json:"islandName"`
	Fruit              Fruit     `json:"fruitKind"`
	TimeZone           string    `json:"timeZone"`
	Status             string    `json:"status"`
	MorningPrice       int       `json:"morningPrice"`
	EveningPrice       int       `json:"eveningPrice"`
	BuyPrice           int       `json:"buyPrice"`
	Year               int       `json:"year"`
	DayOfYear          int       `json:"dayOfYear"`
	UpdateTimestampUTC time.Time `json:"updateTimestampUTC"`
}

// PendingFriendRequest is one row of GetFriendRequests.
type PendingFriendRequest struct {
	RequesterPublicKey string `json:"requesterPublicKey"`
	Name               string `json:"name"`
	IslandName         string `json:"islandName"`
}

// FriendRequest is the body of the submit/approve/reject endpoints.
type FriendRequest struct {
	MyPublicKey     string `json:"myPublicKey"`
	FriendPublicKey string `json:"friendPublicKey"`
}
