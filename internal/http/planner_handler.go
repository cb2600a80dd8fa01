package http

import (
	"encoding/json"
	"net/http"

	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
	"github.com/devaraji08/HarvestHubFinal/internal/mealplanner"
)

type PlannerHandler struct {
	planner *mealplanner.Planner
	carts   *cart.Manager
}

func NewPlannerHandler(planner *mealplanner.Planner, carts *cart.Manager) *PlannerHandler {
	return &PlannerHandler{planner: planner, carts: carts}
}

type SuggestionDTO struct {
	Product      domain.Product `json:"product"`
	MatchedMeals []string       `json:"matched_meals"`
	Available    int            `json:"available"`
}

type GroceryListResponseDTO struct {
	Items []string `json:"items"`
}

// Suggestions matches the posted meal plan against the catalog. Each
// suggestion carries the session's remaining reservable stock so the
// storefront can grey out what this visitor already has in the cart.
func (h *PlannerHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	var plan mealplanner.WeekPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	suggestions, err := h.planner.Suggest(r.Context(), plan)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to load suggestions")
		return
	}

	svc := h.carts.Cart(r.Context(), getSessionIDFromContext(r.Context()))
	out := make([]SuggestionDTO, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, SuggestionDTO{
			Product:      s.Product,
			MatchedMeals: s.MatchedMeals,
			Available:    svc.AvailableStock(s.Product),
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (h *PlannerHandler) GroceryList(w http.ResponseWriter, r *http.Request) {
	var plan mealplanner.WeekPlan
	if err := json.NewDecoder(r.Body).Decode(&plan); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	respondJSON(w, http.StatusOK, GroceryListResponseDTO{Items: mealplanner.GroceryList(plan)})
}
