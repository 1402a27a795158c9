package gateway

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// BearerToken encodes the private key as ISO-8859-1 bytes and base64s them.
// Runes outside Latin-1 become the charmap's substitute byte.
func BearerToken(privateKey string) (string, error) {
	b, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(privateKey))
	if err != nil {
		return "", fmt.Errorf("latin-1 encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// authorization returns the Authorization header value, deriving it on first use.
// Once derived it is reused for the lifetime of the client.
func (c *Client) authorization(ctx context.Context) (string, error) {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.authHeader != "" {
		return c.authHeader, nil
	}
	id, err := c.identity.Identity(ctx)
	if err != nil {
		return "", fmt.Errorf("read identity: %w", err)
	}
	token, err := BearerToken(id.PrivateKey)
	if err != nil {
		return "", err
	}
	c.authHeader = "Bearer " + token
	return c.authHeader, nil
}
