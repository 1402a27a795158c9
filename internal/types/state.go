package types

import "time"

// CacheEntry is the unit the cache medium stores. Value holds the serialized payload,
// zstd-compressed when Compressed is set.
type CacheEntry struct {
	Key        string    `dynamodbav:"cache_key" json:"key"`
	Value      []byte    `dynamodbav:"value" json:"value"`
	Compressed bool      `dynamodbav:"compressed" json:"compressed"`
	ExpiresAt  time.Time `dynamodbav:"expires_at" json:"expires_at"`
}

// Expired reports whether the entry is stale at now.
func (e CacheEntry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Identity is the device key pair held by secure storage.
type Identity struct {
	PublicKey  string
	PrivateKey string
}
