package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFarmingBot_KeywordMatching(t *testing.T) {
	bot := NewFarmingBot()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"farming advice", "How do I start a farm?", "soil testing"},
		{"products", "what can I buy here", "locally-sourced produce"},
		{"organic", "Is ORGANIC certification hard?", "3 years"},
		{"pests", "a bug is eating my garden", "marigolds"},
		{"soil", "my soil seems poor", "pH"},
		{"watering", "how much water do tomatoes need", "drip irrigation"},
		{"seasons", "when is pea season", "frost dates"},
		{"tools", "which tool should I get first", "hand trowel"},
		{"nutrition", "is local produce healthy", "vitamins"},
		{"meals", "give me a recipe idea", "stir-fries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := bot.Reply(tt.message)
			assert.Contains(t, reply, tt.contains)
		})
	}
}

func TestFarmingBot_FirstRuleWins(t *testing.T) {
	bot := NewFarmingBot()

	// "plant" (farming rule) appears before "soil" in the table
	reply := bot.Reply("what soil should I plant in")
	assert.Contains(t, reply, "companion planting")
}

func TestFarmingBot_Fallback(t *testing.T) {
	bot := NewFarmingBot()

	reply := bot.Reply("tell me a joke")
	assert.Contains(t, reply, "What specific topic interests you most?")
}

func TestFarmingBot_CaseInsensitive(t *testing.T) {
	bot := NewFarmingBot()

	assert.Equal(t, bot.Reply("PEST problem"), bot.Reply("pest problem"))
}

func TestMealPlannerBot_KeywordMatching(t *testing.T) {
	bot := NewMealPlannerBot()

	tests := []struct {
		message  string
		contains string
	}{
		{"what's a good breakfast", "overnight oats"},
		{"lunch ideas please", "quinoa salad"},
		{"dinner tonight?", "salmon"},
		{"need a snack", "hummus"},
		{"vegan options", "plant-based"},
		{"help me lose weight", "portion control"},
	}

	for _, tt := range tests {
		reply := bot.Reply(tt.message)
		assert.Contains(t, reply, tt.contains, "message: %s", tt.message)
	}
}

func TestBots_HaveGreetings(t *testing.T) {
	assert.True(t, strings.Contains(NewFarmingBot().Greeting(), "Harvest Hub"))
	assert.NotEmpty(t, NewMealPlannerBot().Greeting())
}
