package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/checkout"
	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

type CheckoutHandler struct {
	checkout *checkout.Service
	carts    *cart.Manager
}

func NewCheckoutHandler(svc *checkout.Service, carts *cart.Manager) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, carts: carts}
}

func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var info checkout.CustomerInfo
	if err := json.NewDecoder(r.Body).Decode(&info); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	svc := h.carts.Cart(r.Context(), getSessionIDFromContext(r.Context()))
	order, err := h.checkout.PlaceOrder(r.Context(), svc, info)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrInvalidContact):
			respondError(w, http.StatusBadRequest, "invalid_contact", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to place order")
		}
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.checkout.Order(r.Context(), chi.URLParam(r, "order_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}
