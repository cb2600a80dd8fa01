package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/devaraji08/HarvestHubFinal/internal/auth"
	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/chatbot"
	"github.com/devaraji08/HarvestHubFinal/internal/checkout"
	"github.com/devaraji08/HarvestHubFinal/internal/mealplanner"
)

// RouterDeps bundles everything the storefront API serves from.
type RouterDeps struct {
	Carts          *cart.Manager
	Catalog        catalog.Catalog
	Auth           auth.Authenticator
	Checkout       *checkout.Service
	Planner        *mealplanner.Planner
	FarmingBot     *chatbot.Bot
	MealPlannerBot *chatbot.Bot
	Logger         zerolog.Logger
	RequestTimeout time.Duration
}

// NewRouter builds the storefront's HTTP surface.
func NewRouter(deps RouterDeps) *chi.Mux {
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog)
	productHandler := NewProductHandler(deps.Catalog)
	authHandler := NewAuthHandler(deps.Auth)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, deps.Carts)
	plannerHandler := NewPlannerHandler(deps.Planner, deps.Carts)
	farmingBotHandler := NewChatbotHandler(deps.FarmingBot)
	plannerBotHandler := NewChatbotHandler(deps.MealPlannerBot)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(RequestLogger(deps.Logger))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Get("/stock/{product_id}", cartHandler.GetStock)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListActive)
			r.Get("/{product_id}", productHandler.Get)
		})

		r.Route("/farmer/products", func(r chi.Router) {
			r.Use(RequireAuth(deps.Auth))
			r.Use(RequireRole(auth.RoleFarmer))
			r.Get("/", productHandler.ListMine)
			r.Post("/", productHandler.Create)
			r.Put("/{product_id}", productHandler.Update)
			r.Delete("/{product_id}", productHandler.Delete)
		})

		r.Post("/checkout", checkoutHandler.PlaceOrder)
		r.Get("/orders/{order_id}", checkoutHandler.GetOrder)

		r.Route("/chatbot", func(r chi.Router) {
			r.Get("/greeting", farmingBotHandler.Greeting)
			r.Post("/messages", farmingBotHandler.Message)
		})

		r.Route("/meal-planner", func(r chi.Router) {
			r.Post("/suggestions", plannerHandler.Suggestions)
			r.Post("/grocery-list", plannerHandler.GroceryList)
			r.Get("/chat/greeting", plannerBotHandler.Greeting)
			r.Post("/chat/messages", plannerBotHandler.Message)
		})
	})

	return r
}
