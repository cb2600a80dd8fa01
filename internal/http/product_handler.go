package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

type ProductHandler struct {
	catalog catalog.Catalog
}

func NewProductHandler(cat catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

type ProductRequestDTO struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Stock       int             `json:"stock"`
	Image       string          `json:"image"`
}

func (p ProductRequestDTO) validate() string {
	if p.Name == "" {
		return "name is required"
	}
	if p.Price.IsNegative() {
		return "price must not be negative"
	}
	if p.Stock < 0 {
		return "stock must not be negative"
	}
	return ""
}

// ListActive is the public storefront listing.
func (h *ProductHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListActive(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetByID(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// ListMine returns the authenticated farmer's products, active or not.
func (h *ProductHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	products, err := h.catalog.ListByFarmer(r.Context(), user.ID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to list products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	created, err := h.catalog.Create(r.Context(), domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
		Farmer:      user.ID,
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")

	var req ProductRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, "invalid_product", msg)
		return
	}

	updated, err := h.catalog.Update(r.Context(), user.ID, domain.Product{
		ID:          productID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Stock:       req.Stock,
		Image:       req.Image,
		IsActive:    true,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())
	productID := chi.URLParam(r, "product_id")

	if err := h.catalog.Delete(r.Context(), user.ID, productID); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
