package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider mimics the hosted identity provider's auth and profiles
// endpoints.
func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	// Method-qualified ServeMux patterns need Go 1.22+; with the Go 1.21
	// toolchain the method must be checked by hand.
	handle := func(method, path string, h http.HandlerFunc) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != method {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			h(w, r)
		})
	}
	handle(http.MethodPost, "/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var req signUpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "taken@farm.test" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		json.NewEncoder(w).Encode(identityPayload{ID: "user-1", Email: req.Email})
	})
	handle(http.MethodPost, "/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "hunter2" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(tokenResponse{
			AccessToken:  "token-abc",
			RefreshToken: "refresh-abc",
			ExpiresIn:    3600,
			User:         identityPayload{ID: "user-1", Email: req.Email},
		})
	})
	handle(http.MethodGet, "/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(identityPayload{ID: "user-1", Email: "alice@farm.test"})
	})
	handle(http.MethodPost, "/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handle(http.MethodGet, "/rest/v1/profiles", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("apikey"))
		json.NewEncoder(w).Encode([]profileRow{{
			ID:       "user-1",
			Username: "alice",
			Email:    "alice@farm.test",
			Role:     RoleFarmer,
		}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T) *Client {
	srv := fakeProvider(t)
	return NewClient(srv.URL, "anon-key", zerolog.Nop())
}

func TestClient_SignUp(t *testing.T) {
	c := newTestClient(t)

	user, err := c.SignUp(context.Background(), "alice@farm.test", "hunter2", "alice", RoleFarmer)
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, RoleFarmer, user.Role)
}

func TestClient_SignUp_EmailTaken(t *testing.T) {
	c := newTestClient(t)

	_, err := c.SignUp(context.Background(), "taken@farm.test", "hunter2", "bob", RoleConsumer)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestClient_SignIn_LoadsProfileAndNotifies(t *testing.T) {
	c := newTestClient(t)

	var events []Event
	unsubscribe := c.OnAuthChange(func(event Event, _ *Session) {
		events = append(events, event)
	})
	defer unsubscribe()

	session, err := c.SignIn(context.Background(), "alice@farm.test", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, "token-abc", session.AccessToken)
	assert.Equal(t, "alice", session.User.Username)
	assert.Equal(t, RoleFarmer, session.User.Role)
	assert.Equal(t, session, c.Session())
	assert.Equal(t, []Event{EventSignedIn}, events)
}

func TestClient_SignIn_BadPassword(t *testing.T) {
	c := newTestClient(t)

	_, err := c.SignIn(context.Background(), "alice@farm.test", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, c.Session())
}

func TestClient_SignOut_ClearsSession(t *testing.T) {
	c := newTestClient(t)
	_, err := c.SignIn(context.Background(), "alice@farm.test", "hunter2")
	require.NoError(t, err)

	var gotEvent Event
	var gotSession *Session
	c.OnAuthChange(func(event Event, session *Session) {
		gotEvent = event
		gotSession = session
	})

	require.NoError(t, c.SignOut(context.Background()))

	assert.Nil(t, c.Session())
	assert.Equal(t, EventSignedOut, gotEvent)
	assert.Nil(t, gotSession)

	assert.ErrorIs(t, c.SignOut(context.Background()), ErrNoSession)
}

func TestClient_UserFromToken(t *testing.T) {
	c := newTestClient(t)

	user, err := c.UserFromToken(context.Background(), "token-abc")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = c.UserFromToken(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestClient_UnsubscribeStopsNotifications(t *testing.T) {
	c := newTestClient(t)

	calls := 0
	unsubscribe := c.OnAuthChange(func(Event, *Session) { calls++ })
	unsubscribe()

	_, err := c.SignIn(context.Background(), "alice@farm.test", "hunter2")
	require.NoError(t, err)

	assert.Equal(t, 0, calls)
}
