package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to a hosted backend-as-a-service identity provider
// (gotrue-style auth endpoints plus a profiles table). It keeps the
// current session in memory and fans session changes out to
// subscribed listeners.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
	logger  zerolog.Logger

	mu        sync.Mutex
	session   *Session
	listeners map[int]Listener
	nextID    int
}

func NewClient(baseURL, anonKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		anonKey:   anonKey,
		http:      &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

type signUpRequest struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Data     map[string]any `json:"data"`
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type identityPayload struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"`
	User         identityPayload `json:"user"`
}

type profileRow struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Client) SignUp(ctx context.Context, email, password, username string, role Role) (*User, error) {
	body := signUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]any{"username": username, "role": role},
	}

	var identity identityPayload
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/v1/signup", "", body, &identity)
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return nil, ErrEmailTaken
	case status != http.StatusOK:
		return nil, fmt.Errorf("signup failed with status %d", status)
	}

	return &User{
		ID:       identity.ID,
		Username: username,
		Email:    identity.Email,
		Role:     role,
		JoinedAt: time.Now(),
	}, nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var tok tokenResponse
	status, err := c.doJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", tokenRequest{Email: email, Password: password}, &tok)
	if err != nil {
		return nil, err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return nil, ErrInvalidCredentials
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("sign in failed with status %d", status)
	}

	user, err := c.fetchProfile(ctx, tok.AccessToken, tok.User.ID)
	if err != nil {
		// the identity is valid even when the profile row is missing
		c.logger.Warn().Err(err).Str("user_id", tok.User.ID).Msg("failed to load profile")
		user = &User{ID: tok.User.ID, Email: tok.User.Email}
	}

	session := &Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		User:         user,
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()
	c.notify(EventSignedIn, session)

	return session, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	session := c.session
	c.session = nil
	c.mu.Unlock()

	if session == nil {
		return ErrNoSession
	}

	status, err := c.doJSON(ctx, http.MethodPost, "/auth/v1/logout", session.AccessToken, nil, nil)
	if err != nil {
		// local state is already cleared; the remote session expires on
		// its own
		c.logger.Warn().Err(err).Msg("remote sign out failed")
	} else if status != http.StatusNoContent && status != http.StatusOK {
		c.logger.Warn().Int("status", status).Msg("remote sign out returned unexpected status")
	}

	c.notify(EventSignedOut, nil)
	return nil
}

func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) UserFromToken(ctx context.Context, token string) (*User, error) {
	var identity identityPayload
	status, err := c.doJSON(ctx, http.MethodGet, "/auth/v1/user", token, nil, &identity)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("user lookup failed with status %d", status)
	}

	user, err := c.fetchProfile(ctx, token, identity.ID)
	if err != nil {
		return &User{ID: identity.ID, Email: identity.Email}, nil
	}
	return user, nil
}

func (c *Client) OnAuthChange(l Listener) Unsubscribe {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *Client) notify(event Event, session *Session) {
	c.mu.Lock()
	ls := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		ls = append(ls, l)
	}
	c.mu.Unlock()

	for _, l := range ls {
		l(event, session)
	}
}

func (c *Client) fetchProfile(ctx context.Context, token, userID string) (*User, error) {
	path := fmt.Sprintf("/rest/v1/profiles?id=eq.%s&select=*", userID)

	var rows []profileRow
	status, err := c.doJSON(ctx, http.MethodGet, path, token, nil, &rows)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("profile fetch failed with status %d", status)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no profile for user %s", userID)
	}

	p := rows[0]
	return &User{
		ID:       p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
		JoinedAt: p.CreatedAt,
	}, nil
}

// doJSON sends one request with the standard headers and decodes the
// response body into out when it is non-nil. The status code is always
// returned so callers can map provider statuses to domain errors.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response failed: %w", err)
		}
	}
	return resp.StatusCode, nil
}
