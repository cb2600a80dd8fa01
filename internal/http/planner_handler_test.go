package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devaraji08/HarvestHubFinal/internal/mealplanner"
)

func TestPlannerHandler_Suggestions(t *testing.T) {
	ts := newTestServer(t, storefrontProduct("tomatoes", 3.50, 5))

	plan := mealplanner.WeekPlan{
		"monday": {Lunch: "tomatoes on toast"},
	}

	w := ts.do(http.MethodPost, "/api/v1/meal-planner/suggestions", plan)
	require.Equal(t, http.StatusOK, w.Code)

	var suggestions []SuggestionDTO
	ts.decode(w, &suggestions)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "tomatoes", suggestions[0].Product.ID)
	assert.Equal(t, []string{"monday lunch"}, suggestions[0].MatchedMeals)
	assert.Equal(t, 5, suggestions[0].Available)
}

// Suggestions report availability net of the session's reservations.
func TestPlannerHandler_SuggestionsReflectCart(t *testing.T) {
	ts := newTestServer(t, storefrontProduct("tomatoes", 3.50, 5))

	w := ts.do(http.MethodPost, "/api/v1/cart/items", AddItemRequestDTO{ProductID: "tomatoes", Quantity: 2})
	require.Equal(t, http.StatusOK, w.Code)

	plan := mealplanner.WeekPlan{"friday": {Dinner: "tomatoes"}}
	w = ts.do(http.MethodPost, "/api/v1/meal-planner/suggestions", plan)
	require.Equal(t, http.StatusOK, w.Code)

	var suggestions []SuggestionDTO
	ts.decode(w, &suggestions)
	require.Len(t, suggestions, 1)
	assert.Equal(t, 3, suggestions[0].Available)
}

func TestPlannerHandler_GroceryList(t *testing.T) {
	ts := newTestServer(t)

	plan := mealplanner.WeekPlan{
		"monday":  {Breakfast: "eggs", Dinner: "soup"},
		"tuesday": {Lunch: "salad"},
	}

	w := ts.do(http.MethodPost, "/api/v1/meal-planner/grocery-list", plan)
	require.Equal(t, http.StatusOK, w.Code)

	var resp GroceryListResponseDTO
	ts.decode(w, &resp)
	assert.Equal(t, []string{"eggs", "soup", "salad"}, resp.Items)
}
