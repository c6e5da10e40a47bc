package ai

import "strings"

type fallbackRule struct {
	keywords []string
	answer   string
}

// fallbackRules are checked in order; the first rule with a matching keyword wins
var fallbackRules = []fallbackRule{
	{
		keywords: []string{"substitute", "replacement", "instead of"},
		answer: "For ingredient substitutions you can often use:\n\n" +
			"* olive oil instead of butter\n* applesauce instead of oil\n" +
			"* Greek yogurt instead of sour cream\n* honey instead of sugar\n\n" +
			"Which ingredient are you looking to replace?",
	},
	{
		keywords: []string{"vegetarian", "vegan", "plant-based"},
		answer: "To make a recipe **vegetarian**, replace meat with tofu, tempeh, seitan, lentils, beans or mushrooms. " +
			"For binding, use a flax egg (1 tbsp ground flaxseed + 3 tbsp water) instead of an egg.",
	},
	{
		keywords: []string{"gluten", "gluten-free", "celiac"},
		answer: "For **gluten-free** cooking, swap regular flour for almond flour, rice flour or a gluten-free blend. " +
			"Check that soy sauce and broths are labeled gluten-free too.",
	},
	{
		keywords: []string{"store", "keep", "refrigerate", "freeze"},
		answer: "Most cooked dishes keep in the refrigerator for 3-4 days.\n\n" +
			"1. Cool the food completely\n2. Portion it into airtight containers\n3. Label with the date and freeze for up to 2-3 months",
	},
	{
		keywords: []string{"double", "half", "scale", "portion"},
		answer: "To scale a recipe, multiply or divide every ingredient by the same ratio. " +
			"For baking, weigh ingredients instead of using cups for accurate results.",
	},
}

const offlineAnswer = "I'm currently operating in *offline mode*. For specific advice try common substitutions, " +
	"check a reliable cookbook or try again later when the assistant is available."

// FallbackAnswer returns a canned answer for a cooking question when no
// model is reachable
func FallbackAnswer(question string) string {
	q := strings.ToLower(question)
	for _, rule := range fallbackRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.answer
			}
		}
	}
	return offlineAnswer
}
