package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

// Manager owns one cart service per session. Services are created
// lazily on first use, loading whatever state the session persisted
// before, and are kept for the lifetime of the process.
type Manager struct {
	mu     sync.Mutex
	store  store.Store
	logger zerolog.Logger
	carts  map[string]*Service
}

func NewManager(st store.Store, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  st,
		logger: logger,
		carts:  make(map[string]*Service),
	}
}

// Cart returns the session's cart service, creating it if needed. The
// session id namespaces the storage keys so sessions cannot see each
// other's reservations.
func (m *Manager) Cart(ctx context.Context, sessionID string) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	if svc, ok := m.carts[sessionID]; ok {
		return svc
	}

	svc := NewServiceWithKeys(ctx, m.store, m.logger,
		fmt.Sprintf("cart:%s", sessionID),
		fmt.Sprintf("product_stocks:%s", sessionID),
	)
	m.carts[sessionID] = svc
	return svc
}
