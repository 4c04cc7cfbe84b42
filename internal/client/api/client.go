// Package api is the Go client for the DramaHub HTTP API.
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses are
// returned as *StatusError, which callers match with errors.Is against the
// package sentinels.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dramahub/internal/common"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Set names a membership list in API paths.
type Set string

const (
	Favorites Set = "favorites"
	Watchlist Set = "watchlist"
)

type User struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Favorites []int64 `json:"favorites"`
	Watchlist []int64 `json:"watches"`
}

type Preferences struct {
	Genre  string `json:"genre"`
	Length string `json:"length"`
	Mood   string `json:"mood"`
	Gems   bool   `json:"gems"`
}

type Title struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Recommendation struct {
	Text   string  `json:"recommendation"`
	Titles []Title `json:"titles"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func userPath(userID int64, rest ...string) string {
	return "/api/user/" + strconv.FormatInt(userID, 10) + strings.Join(rest, "")
}

func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

func (c *Client) SignUp(ctx context.Context, name, email string, password []byte) (*User, error) {
	var u User
	in := map[string]string{"name": name, "email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/user/signup", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Login(ctx context.Context, email string, password []byte) (*User, error) {
	var u User
	in := map[string]string{"email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/api/user/login", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, userID int64, current, next, confirm []byte) error {
	in := map[string]string{
		"currentPassword": string(current),
		"newPassword":     string(next),
		"confirmPassword": string(confirm),
	}
	return c.do(ctx, http.MethodPost, userPath(userID, "/change-password"), in, nil)
}

func (c *Client) DeleteUser(ctx context.Context, userID int64) error {
	return c.do(ctx, http.MethodDelete, userPath(userID), nil, nil)
}

// Add puts itemID into the set and returns the set's new contents.
func (c *Client) Add(ctx context.Context, set Set, userID, itemID int64) ([]int64, error) {
	var ids []int64
	err := c.do(ctx, http.MethodPost, userPath(userID, "/", string(set)), itemID, &ids)
	return ids, err
}

// Remove takes itemID out of the set and returns the set's new contents.
func (c *Client) Remove(ctx context.Context, set Set, userID, itemID int64) ([]int64, error) {
	var ids []int64
	err := c.do(ctx, http.MethodDelete, userPath(userID, "/", string(set), "/", strconv.FormatInt(itemID, 10)), nil, &ids)
	return ids, err
}

func (c *Client) List(ctx context.Context, set Set, userID int64) ([]int64, error) {
	var ids []int64
	err := c.do(ctx, http.MethodGet, userPath(userID, "/", string(set)), nil, &ids)
	return ids, err
}

// Details returns the catalog document of every item in the set.
func (c *Client) Details(ctx context.Context, set Set, userID int64) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	err := c.do(ctx, http.MethodGet, userPath(userID, "/", string(set), "/details"), nil, &docs)
	return docs, err
}

func (c *Client) Recommend(ctx context.Context, p Preferences) (*Recommendation, error) {
	var r Recommendation
	if err := c.do(ctx, http.MethodPost, "/api/ai/recommend", p, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
