package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	domainerrors "firmdesk.backend/internal/domain/errors"
	"firmdesk.backend/internal/domain/repositories"
)

// Client talks to the identity service's admin REST API. It implements
// repositories.IdentityGateway.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates an identity admin client
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type userPayload struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Disabled bool   `json:"disabled"`
}

type errorPayload struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// GetUser fetches an identity account by uid
func (c *Client) GetUser(ctx context.Context, uid string) (*repositories.IdentityUser, error) {
	return c.fetchUser(ctx, c.baseURL+"/admin/v1/users/"+url.PathEscape(uid))
}

// GetUserByEmail fetches an identity account by email. A missing account
// is reported as ErrIdentityUserNotFound so callers can treat the email as
// available.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*repositories.IdentityUser, error) {
	return c.fetchUser(ctx, c.baseURL+"/admin/v1/users?email="+url.QueryEscape(email))
}

// UpdateUser applies a partial update to an identity account
func (c *Client) UpdateUser(ctx context.Context, uid string, update repositories.IdentityUpdate) error {
	if update.IsZero() {
		return nil
	}

	body := map[string]interface{}{}
	if update.Email != nil {
		body["email"] = *update.Email
	}
	if update.Disabled != nil {
		body["disabled"] = *update.Disabled
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.baseURL+"/admin/v1/users/"+url.PathEscape(uid), bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrIdentityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return c.mapError(resp)
}

func (c *Client) fetchUser(ctx context.Context, endpoint string) (*repositories.IdentityUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrIdentityUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.mapError(resp)
	}

	var payload userPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode identity user: %w", err)
	}
	return &repositories.IdentityUser{
		UID:      payload.UID,
		Email:    payload.Email,
		Disabled: payload.Disabled,
	}, nil
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) mapError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload errorPayload
	_ = json.Unmarshal(raw, &payload)

	switch payload.Error.Code {
	case "USER_NOT_FOUND":
		return domainerrors.ErrIdentityUserNotFound
	case "EMAIL_EXISTS", "EMAIL_ALREADY_EXISTS":
		return domainerrors.ErrIdentityEmailExists
	case "INVALID_EMAIL":
		return domainerrors.ErrIdentityInvalidEmail
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return domainerrors.ErrIdentityUserNotFound
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return fmt.Errorf("%w: status %d", domainerrors.ErrIdentityUnavailable, resp.StatusCode)
	}
	return fmt.Errorf("identity service error: status %d body %s", resp.StatusCode, string(raw))
}
