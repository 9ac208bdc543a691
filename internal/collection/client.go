// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

// Package collection fetches user bar collections (owned bottles and
// wishlists) from the upstream bar service. The exported client wraps
// the raw HTTP client with a circuit breaker; any failure is reported
// as ErrUnavailable so callers can degrade to fallback picks.
package collection

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/dramatlas/dramatlas/internal/catalog"
	"github.com/dramatlas/dramatlas/internal/config"
	"github.com/dramatlas/dramatlas/internal/logging"
)

// ErrUnavailable indicates the user's collection could not be fetched.
// The recommendation engine recovers from it by treating the user as
// new; it never surfaces to API clients.
var ErrUnavailable = errors.New("collection unavailable")

// Collection is a user's bar: the bottles they own and their wishlist.
type Collection struct {
	Username string           `json:"username"`
	Bottles  []catalog.Bottle `json:"bottles"`
	Wishlist []catalog.Bottle `json:"wishlist"`
}

// Fetcher retrieves a user's collection.
type Fetcher interface {
	FetchCollection(ctx context.Context, username string) (*Collection, error)
}

// Client is the raw HTTP client for the bar service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a bar service client from config.
func NewClient(cfg *config.BarConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logging.WithComponent("collection"),
	}
}

// barResponse is the object form of the bar service payload. The
// service may also return a bare JSON array of owned bottles with no
// wishlist; both shapes are accepted.
type barResponse struct {
	Username string           `json:"username"`
	Bottles  []catalog.Bottle `json:"bottles"`
	Wishlist []catalog.Bottle `json:"wishlist"`
}

// FetchCollection retrieves the collection for username from
// GET {base}/bar/user/{username}.
func (c *Client) FetchCollection(ctx context.Context, username string) (*Collection, error) {
	endpoint := fmt.Sprintf("%s/bar/user/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bar service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("bar service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading bar service response: %w", err)
	}

	col, err := decodeCollection(body)
	if err != nil {
		return nil, fmt.Errorf("decoding bar service response: %w", err)
	}
	if col.Username == "" {
		col.Username = username
	}

	c.logger.Debug().
		Str("username", username).
		Int("owned", len(col.Bottles)).
		Int("wishlist", len(col.Wishlist)).
		Dur("duration", time.Since(start)).
		Msg("Collection fetched")

	return col, nil
}

// decodeCollection accepts either {"bottles": [...], "wishlist": [...]}
// or a bare array of owned bottles.
func decodeCollection(body []byte) (*Collection, error) {
	var obj barResponse
	if err := json.Unmarshal(body, &obj); err == nil {
		return &Collection{
			Username: obj.Username,
			Bottles:  obj.Bottles,
			Wishlist: obj.Wishlist,
		}, nil
	}

	var list []catalog.Bottle
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	return &Collection{Bottles: list}, nil
}
