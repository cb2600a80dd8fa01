package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/devaraji08/HarvestHubFinal/internal/auth"
)

type AuthHandler struct {
	auth auth.Authenticator
}

func NewAuthHandler(a auth.Authenticator) *AuthHandler {
	return &AuthHandler{auth: a}
}

type RegisterRequestDTO struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "username, email and password are required")
		return
	}
	if req.Role != auth.RoleFarmer && req.Role != auth.RoleConsumer {
		respondError(w, http.StatusBadRequest, "invalid_role", "role must be farmer or consumer")
		return
	}

	user, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.Username, req.Role)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		respondError(w, http.StatusBadGateway, "auth_unavailable", "registration failed")
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	session, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		respondError(w, http.StatusBadGateway, "auth_unavailable", "login failed")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil && !errors.Is(err, auth.ErrNoSession) {
		respondError(w, http.StatusBadGateway, "auth_unavailable", "logout failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
