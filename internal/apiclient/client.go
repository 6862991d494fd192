// Package apiclient is a thin typed wrapper over the remote auction service's
// REST API. It performs no caching and no retries; every call is a single
// request-response.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"auction-web/internal/auctionerrors"
	"auction-web/internal/models"
)

// APIError is a non-2xx response from the auction service. Message carries the
// service's human-readable explanation when the response body provided one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auction service returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("auction service returned %d", e.Status)
}

// UpstreamMessage extracts the service's own rejection message from an error
// chain, or returns the empty string when none was provided.
func UpstreamMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// Client issues HTTP requests against the auction service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListAuctions returns all auctions.
func (c *Client) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := c.get(ctx, "/api/auctions", &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

// GetAuction returns one auction by id.
func (c *Client) GetAuction(ctx context.Context, id string) (models.Auction, error) {
	var auction models.Auction
	if err := c.get(ctx, "/api/auctions/"+url.PathEscape(id), &auction); err != nil {
		return models.Auction{}, err
	}
	return auction, nil
}

// CreateAuction creates a new auction and returns the service's copy of it.
func (c *Client) CreateAuction(ctx context.Context, payload models.CreateAuction) (models.Auction, error) {
	var auction models.Auction
	if err := c.post(ctx, "/api/auctions", payload, &auction); err != nil {
		return models.Auction{}, err
	}
	return auction, nil
}

// ListBids returns all bids for an auction.
func (c *Client) ListBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	var bids []models.Bid
	if err := c.get(ctx, "/api/bids/auction/"+url.PathEscape(auctionID), &bids); err != nil {
		return nil, err
	}
	return bids, nil
}

// PlaceBid submits a bid. The service performs the authoritative validation
// and may reject a bid this client's pre-check admitted.
func (c *Client) PlaceBid(ctx context.Context, payload models.CreateBid) (models.Bid, error) {
	var bid models.Bid
	if err := c.post(ctx, "/api/bids", payload, &bid); err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

// ListUsers returns all users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/api/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns one user by id.
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/users/"+url.PathEscape(id), &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// CreateUser registers a new user.
func (c *Client) CreateUser(ctx context.Context, payload models.CreateUser) (models.User, error) {
	var user models.User
	if err := c.post(ctx, "/api/users", payload, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SearchAuctions returns auctions whose title matches the free-text query.
func (c *Client) SearchAuctions(ctx context.Context, query string) ([]models.Auction, error) {
	var auctions []models.Auction
	path := "/api/search/auctions?q=" + url.QueryEscape(query)
	if err := c.get(ctx, path, &auctions); err != nil {
		return nil, err
	}
	return auctions, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("client: build GET %s: %w", path, err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("client: encode POST %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build POST %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w: %v", req.Method, req.URL.Path, auctionerrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, auctionerrors.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("client: %s %s: %w", req.Method, req.URL.Path, &APIError{
			Status:  resp.StatusCode,
			Message: decodeMessage(resp.Body),
		})
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: %s %s: decode response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

// decodeMessage pulls the optional {message} field out of an error body.
func decodeMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}
