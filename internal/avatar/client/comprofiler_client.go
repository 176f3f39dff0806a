package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kunena/forumadmin/internal/avatar/model"
	"github.com/rs/zerolog/log"
)

// ComprofilerClient talks to the Community Builder profile service.
type ComprofilerClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewComprofilerClient creates a client for the service at baseURL.
func NewComprofilerClient(baseURL string, timeout time.Duration, token string) (*ComprofilerClient, error) {
	if baseURL == "" {
		return nil, model.ErrProfileServiceUnavailable
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid comprofiler base url: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &ComprofilerClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}, nil
}

// Preload asks the service to load the given users in one batch and returns
// the profiles it found.
func (c *ComprofilerClient) Preload(ctx context.Context, userIDs []int64) ([]model.Profile, error) {
	body, err := json.Marshal(map[string]any{"user_ids": userIDs})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Users []model.Profile `json:"users"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/users/preload", bytes.NewReader(body), &resp); err != nil {
		return nil, fmt.Errorf("preload users: %w", err)
	}
	return resp.Users, nil
}

// EditURL returns the URL of the profile edit page.
func (c *ComprofilerClient) EditURL(ctx context.Context) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/profile/edit-url", nil, &resp); err != nil {
		return "", fmt.Errorf("get edit url: %w", err)
	}
	return resp.URL, nil
}

// Profile fetches one user. found is false when the service does not know
// the user.
func (c *ComprofilerClient) Profile(ctx context.Context, userID int64) (*model.Profile, bool, error) {
	var p model.Profile
	status, err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(userID, 10), nil, &p)
	if status == http.StatusNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get profile %d: %w", userID, err)
	}
	return &p, true, nil
}

// Field renders a profile field of the user.
func (c *ComprofilerClient) Field(ctx context.Context, userID int64, field string, opts model.FieldOptions) (string, error) {
	q := url.Values{}
	if opts.Reason != "" {
		q.Set("reason", opts.Reason)
	}
	if opts.Output != "" {
		q.Set("output", opts.Output)
	}
	if opts.Format != "" {
		q.Set("format", opts.Format)
	}
	path := "/users/" + strconv.FormatInt(userID, 10) + "/fields/" + url.PathEscape(field)
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp struct {
		Value string `json:"value"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", fmt.Errorf("get field %s of %d: %w", field, userID, err)
	}
	return resp.Value, nil
}

func (c *ComprofilerClient) do(ctx context.Context, method, path string, body io.Reader, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("comprofiler request failed")
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}
