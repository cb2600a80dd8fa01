package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaraji08/HarvestHubFinal/internal/auth"
)

func TestAuthHandler_RegisterLoginLogout(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/register", RegisterRequestDTO{
		Username: "jo",
		Email:    "jo@test",
		Password: "secret",
		Role:     auth.RoleConsumer,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user auth.User
	ts.decode(w, &user)
	assert.Equal(t, "jo@test", user.Email)
	assert.Equal(t, auth.RoleConsumer, user.Role)

	w = ts.do(http.MethodPost, "/api/v1/auth/login", LoginRequestDTO{Email: "jo@test", Password: "secret"})
	require.Equal(t, http.StatusOK, w.Code)

	var session auth.Session
	ts.decode(w, &session)
	assert.NotEmpty(t, session.AccessToken)

	w = ts.do(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/register", RegisterRequestDTO{
		Email: "jo@test", Password: "secret", Role: auth.RoleConsumer,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/register", RegisterRequestDTO{
		Username: "jo", Email: "jo@test", Password: "secret", Role: "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)

	req := RegisterRequestDTO{Username: "jo", Email: "jo@test", Password: "secret", Role: auth.RoleFarmer}
	w := ts.do(http.MethodPost, "/api/v1/auth/register", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/api/v1/auth/register", req)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_LoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/login", LoginRequestDTO{Email: "ghost@test", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Logging out without a session is fine; the handler treats it as
// already logged out.
func TestAuthHandler_LogoutWithoutSession(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/v1/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
