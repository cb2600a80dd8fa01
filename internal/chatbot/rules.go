package chatbot

// NewFarmingBot returns the assistant used on the chatbot page:
// farming tips, product info, and nutrition advice.
func NewFarmingBot() *Bot {
	return &Bot{
		greeting: "Welcome to the Harvest Hub Chatbot! I can help you with farming tips, product information, meal planning, and nutrition advice. How can I assist you today?",
		fallback: "I can help you with farming tips, soil preparation, pest control, seasonal planting, product information, nutrition advice, and meal planning. What specific topic interests you most?",
		rules: []rule{
			{
				keywords: []string{"farm", "crop", "plant"},
				reply:    "For farming advice: Start with soil testing, choose crops suitable for your climate, ensure proper drainage, and consider companion planting. Beginners should try easy crops like lettuce, radishes, or herbs!",
			},
			{
				keywords: []string{"product", "buy", "sell"},
				reply:    "We offer fresh, locally-sourced produce including seasonal vegetables, fruits, herbs, and organic options. You can browse our products page to see current availability and pricing.",
			},
			{
				keywords: []string{"organic"},
				reply:    "Organic farming avoids synthetic pesticides and fertilizers. Use compost, natural pest control methods, crop rotation, and certified organic seeds. It takes 3 years to get organic certification!",
			},
			{
				keywords: []string{"pest", "bug"},
				reply:    "Natural pest control: Use companion plants like marigolds, introduce beneficial insects, spray neem oil, or use diatomaceous earth. Healthy soil creates pest-resistant plants!",
			},
			{
				keywords: []string{"soil"},
				reply:    "Good soil needs proper pH (6.0-7.0 for most crops), organic matter like compost, good drainage, and beneficial microorganisms. Test your soil annually and add amendments as needed.",
			},
			{
				keywords: []string{"water", "irrigation"},
				reply:    "Water deeply but less frequently to encourage deep roots. Morning watering reduces disease. Consider drip irrigation for efficiency. Most vegetables need 1-2 inches per week.",
			},
			{
				keywords: []string{"season", "when"},
				reply:    "Planting seasons vary by location. Cool-season crops (lettuce, peas) grow in spring/fall. Warm-season crops (tomatoes, peppers) need summer heat. Check your local frost dates!",
			},
			{
				keywords: []string{"beginner", "start"},
				reply:    "Start small with easy crops like lettuce, radishes, herbs, or beans. Choose a sunny spot with good soil drainage. Begin with containers if you have limited space. Join local gardening groups!",
			},
			{
				keywords: []string{"tool"},
				reply:    "Essential tools: hand trowel, pruning shears, watering can or hose, garden fork, rake, and gloves. Start with basics and add specialized tools as you gain experience.",
			},
			{
				keywords: []string{"nutrition", "healthy"},
				reply:    "Fresh produce provides essential vitamins, minerals, and fiber. Eat a variety of colors for different nutrients. Local, seasonal produce is often more nutritious and flavorful!",
			},
			{
				keywords: []string{"meal", "recipe"},
				reply:    "Try incorporating more fresh vegetables into your meals! Roasted vegetables, fresh salads, stir-fries, and soups are great ways to use seasonal produce. Visit our meal planner for more ideas!",
			},
		},
	}
}

// NewMealPlannerBot returns the assistant embedded in the meal planner
// page.
func NewMealPlannerBot() *Bot {
	return &Bot{
		greeting: "Hi! I can help you plan your meals. Ask me about healthy recipes, nutrition tips, or meal suggestions!",
		fallback: "I can help you with meal planning, healthy recipes, nutrition advice, and food suggestions. What specific aspect of meal planning would you like to know about?",
		rules: []rule{
			{
				keywords: []string{"breakfast"},
				reply:    "For breakfast, try overnight oats with berries, Greek yogurt with granola, or scrambled eggs with vegetables. These provide great energy to start your day!",
			},
			{
				keywords: []string{"lunch"},
				reply:    "For lunch, consider a quinoa salad with roasted vegetables, grilled chicken with sweet potato, or a hearty vegetable soup with whole grain bread.",
			},
			{
				keywords: []string{"dinner"},
				reply:    "For dinner, try salmon with roasted broccoli, lentil curry with brown rice, or grilled chicken with steamed vegetables and quinoa.",
			},
			{
				keywords: []string{"snack"},
				reply:    "Healthy snacks include mixed nuts, fresh fruit, Greek yogurt, vegetable sticks with hummus, or a small smoothie.",
			},
			{
				keywords: []string{"healthy", "nutrition"},
				reply:    "Focus on whole foods: lean proteins, vegetables, fruits, whole grains, and healthy fats. Aim for colorful plates and balanced macronutrients!",
			},
			{
				keywords: []string{"recipe"},
				reply:    "I can suggest simple recipes! Try a Mediterranean bowl with chickpeas, cucumber, tomatoes, and feta, or a stir-fry with your favorite vegetables and tofu or chicken.",
			},
			{
				keywords: []string{"weight", "lose"},
				reply:    "For weight management, focus on portion control, eat plenty of vegetables, choose lean proteins, and stay hydrated. Small, frequent meals can help too!",
			},
			{
				keywords: []string{"vegetarian", "vegan"},
				reply:    "Great plant-based options include lentil dishes, tofu stir-fries, quinoa bowls, chickpea curries, and vegetable-packed salads with nuts and seeds.",
			},
		},
	}
}
