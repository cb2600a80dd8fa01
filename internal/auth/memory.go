package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryAccount struct {
	user     User
	password string
}

// MemoryAuthenticator implements Authenticator without a remote
// provider. Used in tests and when the server runs without configured
// provider credentials.
type MemoryAuthenticator struct {
	mu        sync.Mutex
	accounts  map[string]memoryAccount // keyed by email
	tokens    map[string]string        // access token -> user id
	session   *Session
	listeners map[int]Listener
	nextID    int
}

func NewMemoryAuthenticator() *MemoryAuthenticator {
	return &MemoryAuthenticator{
		accounts:  make(map[string]memoryAccount),
		tokens:    make(map[string]string),
		listeners: make(map[int]Listener),
	}
}

func (m *MemoryAuthenticator) SignUp(_ context.Context, email, password, username string, role Role) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.accounts[email]; exists {
		return nil, ErrEmailTaken
	}

	user := User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Role:     role,
		JoinedAt: time.Now(),
	}
	m.accounts[email] = memoryAccount{user: user, password: password}
	return &user, nil
}

func (m *MemoryAuthenticator) SignIn(_ context.Context, email, password string) (*Session, error) {
	m.mu.Lock()
	account, exists := m.accounts[email]
	if !exists || account.password != password {
		m.mu.Unlock()
		return nil, ErrInvalidCredentials
	}

	user := account.user
	session := &Session{
		AccessToken:  uuid.New().String(),
		RefreshToken: uuid.New().String(),
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         &user,
	}
	m.tokens[session.AccessToken] = user.ID
	m.session = session
	m.mu.Unlock()

	m.notify(EventSignedIn, session)
	return session, nil
}

func (m *MemoryAuthenticator) SignOut(_ context.Context) error {
	m.mu.Lock()
	session := m.session
	m.session = nil
	if session != nil {
		delete(m.tokens, session.AccessToken)
	}
	m.mu.Unlock()

	if session == nil {
		return ErrNoSession
	}

	m.notify(EventSignedOut, nil)
	return nil
}

func (m *MemoryAuthenticator) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *MemoryAuthenticator) UserFromToken(_ context.Context, token string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	userID, ok := m.tokens[token]
	if !ok {
		return nil, ErrInvalidToken
	}
	for _, account := range m.accounts {
		if account.user.ID == userID {
			user := account.user
			return &user, nil
		}
	}
	return nil, ErrInvalidToken
}

func (m *MemoryAuthenticator) OnAuthChange(l Listener) Unsubscribe {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.listeners, id)
		m.mu.Unlock()
	}
}

func (m *MemoryAuthenticator) notify(event Event, session *Session) {
	m.mu.Lock()
	ls := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		ls = append(ls, l)
	}
	m.mu.Unlock()

	for _, l := range ls {
		l(event, session)
	}
}
