// Package mealplanner matches a weekly meal plan against the product
// catalog. Matching is plain substring work over meal text and product
// names, which is all the storefront promises: a nudge toward listed
// produce, not a recipe engine.
package mealplanner

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/domain"
)

// Days enumerates the plan's days in display order.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// Meals enumerates the slots of a day in display order.
var Meals = []string{"breakfast", "lunch", "dinner", "snacks"}

// DayPlan holds the free-text meal entries of one day.
type DayPlan struct {
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	Snacks    string `json:"snacks"`
}

func (d DayPlan) slot(meal string) string {
	switch meal {
	case "breakfast":
		return d.Breakfast
	case "lunch":
		return d.Lunch
	case "dinner":
		return d.Dinner
	case "snacks":
		return d.Snacks
	}
	return ""
}

// WeekPlan maps lowercase weekday names to day plans. Unknown keys are
// ignored.
type WeekPlan map[string]DayPlan

// Entry is one non-empty meal text with its position in the week.
type Entry struct {
	Day  string
	Meal string
	Text string
}

// Entries returns the plan's non-empty meal texts in week order.
func (w WeekPlan) Entries() []Entry {
	var out []Entry
	for _, day := range Days {
		dp, ok := w[day]
		if !ok {
			continue
		}
		for _, meal := range Meals {
			if text := strings.TrimSpace(dp.slot(meal)); text != "" {
				out = append(out, Entry{Day: day, Meal: meal, Text: text})
			}
		}
	}
	return out
}

// Suggestion links a catalog product to the meals that mention it.
type Suggestion struct {
	Product      domain.Product `json:"product"`
	MatchedMeals []string       `json:"matched_meals"`
}

// Planner produces product suggestions for a meal plan from the active
// catalog listing.
type Planner struct {
	catalog catalog.Catalog
}

func NewPlanner(c catalog.Catalog) *Planner {
	return &Planner{catalog: c}
}

// Suggest returns the active products mentioned by the plan, most
// matched first. A product matches a meal when its name appears in the
// meal text or a meal word appears in the product's name, category, or
// description.
func (p *Planner) Suggest(ctx context.Context, plan WeekPlan) ([]Suggestion, error) {
	entries := plan.Entries()
	if len(entries) == 0 {
		return nil, nil
	}

	products, err := p.catalog.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	var out []Suggestion
	for _, product := range products {
		name := strings.ToLower(product.Name)
		category := strings.ToLower(product.Category)
		description := strings.ToLower(product.Description)

		var matched []string
		for _, e := range entries {
			if mealMatches(strings.ToLower(e.Text), name, category, description) {
				matched = append(matched, e.Day+" "+e.Meal)
			}
		}
		if len(matched) > 0 {
			out = append(out, Suggestion{Product: product, MatchedMeals: matched})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].MatchedMeals) != len(out[j].MatchedMeals) {
			return len(out[i].MatchedMeals) > len(out[j].MatchedMeals)
		}
		return out[i].Product.Name < out[j].Product.Name
	})
	return out, nil
}

// GroceryList returns the plan's meal texts as a flat shopping prompt,
// in week order.
func GroceryList(plan WeekPlan) []string {
	entries := plan.Entries()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Text)
	}
	return out
}

func mealMatches(mealText, name, category, description string) bool {
	if name != "" && strings.Contains(mealText, name) {
		return true
	}
	for _, word := range strings.FieldsFunc(mealText, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if len(word) < 3 {
			continue
		}
		if strings.Contains(name, word) {
			return true
		}
		if category != "" && strings.Contains(category, word) {
			return true
		}
		if description != "" && strings.Contains(description, word) {
			return true
		}
	}
	return false
}
