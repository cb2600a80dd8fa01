package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/devaraji08/HarvestHubFinal/internal/auth"
	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/chatbot"
	"github.com/devaraji08/HarvestHubFinal/internal/checkout"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
	"github.com/devaraji08/HarvestHubFinal/internal/mealplanner"
	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

type catalogMock struct {
	mu       sync.Mutex
	products map[string]domain.Product
	err      error
}

func newCatalogMock(products ...domain.Product) *catalogMock {
	m := &catalogMock{products: make(map[string]domain.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *catalogMock) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p.ID = "created-" + p.Name
	p.IsActive = true
	m.products[p.ID] = p
	return &p, nil
}

func (m *catalogMock) ListByFarmer(_ context.Context, farmerID string) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		if p.Farmer == farmerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *catalogMock) ListActive(context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Product
	for _, p := range m.products {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *catalogMock) GetByID(_ context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return &p, nil
}

func (m *catalogMock) Update(_ context.Context, farmerID string, p domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[p.ID]
	if !ok || existing.Farmer != farmerID {
		return nil, catalog.ErrProductNotFound
	}
	p.Farmer = farmerID
	m.products[p.ID] = p
	return &p, nil
}

func (m *catalogMock) Delete(_ context.Context, farmerID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[id]
	if !ok || existing.Farmer != farmerID {
		return catalog.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

// testServer drives the full router with one stable session cookie so
// a test behaves like one browser.
type testServer struct {
	t      *testing.T
	router *chi.Mux
	auth   *auth.MemoryAuthenticator
	store  *store.MemoryStore
	cookie *http.Cookie
}

func newTestServer(t *testing.T, products ...domain.Product) *testServer {
	t.Helper()

	st := store.NewMemoryStore()
	authenticator := auth.NewMemoryAuthenticator()
	cat := newCatalogMock(products...)

	router := NewRouter(RouterDeps{
		Carts:          cart.NewManager(st, zerolog.Nop()),
		Catalog:        cat,
		Auth:           authenticator,
		Checkout:       checkout.NewService(st, zerolog.Nop()),
		Planner:        mealplanner.NewPlanner(cat),
		FarmingBot:     chatbot.NewFarmingBot(),
		MealPlannerBot: chatbot.NewMealPlannerBot(),
		Logger:         zerolog.Nop(),
		RequestTimeout: 5 * time.Second,
	})

	return &testServer{t: t, router: router, auth: authenticator, store: st}
}

func (ts *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if ts.cookie != nil {
		req.AddCookie(ts.cookie)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	if ts.cookie == nil {
		for _, c := range w.Result().Cookies() {
			if c.Name == sessionCookieName {
				ts.cookie = c
			}
		}
	}
	return w
}

func (ts *testServer) decode(w *httptest.ResponseRecorder, out any) {
	ts.t.Helper()
	require.NoError(ts.t, json.Unmarshal(w.Body.Bytes(), out))
}

// farmerToken registers and signs in a farmer, returning a bearer
// token for authenticated routes.
func (ts *testServer) farmerToken() string {
	ts.t.Helper()

	_, err := ts.auth.SignUp(context.Background(), "farmer@test", "pw", "farmer", auth.RoleFarmer)
	require.NoError(ts.t, err)
	session, err := ts.auth.SignIn(context.Background(), "farmer@test", "pw")
	require.NoError(ts.t, err)
	return session.AccessToken
}

func storefrontProduct(id string, price float64, stock int) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     id,
		Price:    decimal.NewFromFloat(price),
		Stock:    stock,
		Farmer:   "farmer-1",
		IsActive: true,
	}
}
