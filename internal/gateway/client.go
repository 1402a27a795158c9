package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"islandtracker/internal/cache"
	"islandtracker/internal/ports"
	"islandtracker/internal/types"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

// Client is the single HTTP client shared by every remote call in the process.
type Client struct {
	base     *url.URL
	http     *http.Client
	identity ports.IdentityProvider
	cache    *cache.Store
	codes    types.AccessCodes

	authMu     sync.Mutex
	authHeader string
}

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Identity   ports.IdentityProvider
	Cache      *cache.Store
	Codes      types.AccessCodes
}

func New(o Options) (*Client, error) {
	if o.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	base, err := url.Parse(o.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if o.Identity == nil {
		return nil, fmt.Errorf("identity provider is required")
	}
	if o.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	hc := o.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}
	return &Client{
		base:     base,
		http:     hc,
		identity: o.Identity,
		cache:    o.Cache,
		codes:    o.Codes,
	}, nil
}

// Get fetches path and, on success, writes the raw body through to the cache under
// cacheKey before returning it. A failed cache write is logged, not returned.
func (c *Client) Get(ctx context.Context, path, cacheKey string, ttl time.Duration) ([]byte, error) {
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	c.writeThrough(ctx, cacheKey, body, ttl)
	return body, nil
}

// GetFor fetches, writes the raw body through and then decodes it into T.
// A body that does not decode stays cached; reading it back raises the same DecodeError.
func GetFor[T any](ctx context.Context, c *Client, path, cacheKey string, ttl time.Duration) (T, error) {
	var out T
	body, err := c.Get(ctx, path, cacheKey, ttl)
	if err != nil {
		return out, err
	}
	return Decode[T](cacheKey, body)
}

func (c *Client) writeThrough(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if err := c.cache.Put(ctx, key, body, ttl); err != nil {
		log.WithError(err).WithField("key", key).Warn("write-through failed")
	}
}

func (c *Client) Post(ctx context.Context, path string, body any) error {
	_, err := c.do(ctx, http.MethodPost, path, body)
	return err
}

// PostFor posts body and decodes the response into T.
func PostFor[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	var out T
	b, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return out, err
	}
	return Decode[T]("", b)
}

func (c *Client) Put(ctx context.Context, path string, body any) error {
	_, err := c.do(ctx, http.MethodPut, path, body)
	return err
}

func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil)
	return err
}

// Decode is the one place wire payloads (fresh or cached) become values.
func Decode[T any](key string, b []byte) (T, error) {
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		var zero T
		return zero, &types.DecodeError{Key: key, Err: err}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	target, err := c.base.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("build url %s: %w", path, err)
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	auth, err := c.authorization(ctx)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", auth)

	logger := log.WithFields(log.Fields{"method": method, "path": target.Path})
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error repeats the full URL, access code included
		var uErr *url.Error
		if errors.As(err, &uErr) {
			err = uErr.Err
		}
		logger.WithError(err).Debug("no response")
		return nil, &types.TransportError{Method: method, URL: safeURL(target), Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &types.TransportError{Method: method, URL: safeURL(target), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.WithField("status", resp.StatusCode).Debug("remote rejected request")
		return nil, &types.ApplicationError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	logger.WithField("status", resp.StatusCode).Debug("remote ok")
	return respBody, nil
}

// safeURL drops the query so access codes never end up in errors or logs.
func safeURL(u *url.URL) string {
	c := *u
	c.RawQuery = ""
	c.User = nil
	return c.String()
}
