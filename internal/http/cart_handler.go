package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

type CartHandler struct {
	carts   *cart.Manager
	catalog catalog.Catalog
}

func NewCartHandler(carts *cart.Manager, cat catalog.Catalog) *CartHandler {
	return &CartHandler{carts: carts, catalog: cat}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items      []domain.CartLine `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice decimal.Decimal   `json:"total_price"`
}

type StockResponseDTO struct {
	ProductID string `json:"product_id"`
	Stock     int    `json:"stock"`
}

func cartResponse(svc *cart.Service) CartResponseDTO {
	return CartResponseDTO{
		Items:      svc.Items(),
		TotalItems: svc.TotalItems(),
		TotalPrice: svc.TotalPrice(),
	}
}

func (h *CartHandler) sessionCart(r *http.Request) *cart.Service {
	return h.carts.Cart(r.Context(), getSessionIDFromContext(r.Context()))
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.sessionCart(r)))
}

// AddItem looks the product up in the catalog and reserves the
// requested quantity. An out-of-stock add is not an error: the cart in
// the response simply does not change, matching the pre-check driven
// UI flow.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load product")
		return
	}

	svc := h.sessionCart(r)
	svc.AddToCart(*product, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(svc))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 0 and 99")
		return
	}

	svc := h.sessionCart(r)
	svc.UpdateQuantity(productID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(svc))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	svc := h.sessionCart(r)
	svc.RemoveFromCart(productID)

	respondJSON(w, http.StatusOK, cartResponse(svc))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	svc := h.sessionCart(r)
	svc.Clear()

	respondJSON(w, http.StatusOK, cartResponse(svc))
}

// GetStock exposes the session ledger's view of a product, for the
// pre-checks the storefront runs before offering an add-to-cart
// action.
func (h *CartHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	respondJSON(w, http.StatusOK, StockResponseDTO{
		ProductID: productID,
		Stock:     h.sessionCart(r).ProductStock(productID),
	})
}
