package auth

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleConsumer Role = "consumer"
)

// Common errors returned by authenticators
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoSession          = errors.New("no active session")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// User is the storefront's view of an authenticated account, combining
// the identity record with its marketplace profile.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_date"`
}

// Session is an authenticated session issued by the identity provider.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         *User     `json:"user"`
}

// Event describes a session state change delivered to listeners.
type Event string

const (
	EventSignedIn  Event = "SIGNED_IN"
	EventSignedOut Event = "SIGNED_OUT"
)

// Listener receives session change notifications. The session is nil
// on sign-out.
type Listener func(event Event, session *Session)

// Unsubscribe detaches a listener registered with OnAuthChange.
type Unsubscribe func()

// Authenticator is the opaque identity provider collaborator. The
// storefront never implements identity itself; it signs users in and
// out, inspects the current session, and subscribes to changes.
type Authenticator interface {
	SignUp(ctx context.Context, email, password, username string, role Role) (*User, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error

	// Session returns the current session, or nil when signed out.
	Session() *Session

	// UserFromToken resolves a bearer token to its user, for request
	// authentication.
	UserFromToken(ctx context.Context, token string) (*User, error)

	OnAuthChange(l Listener) Unsubscribe
}
