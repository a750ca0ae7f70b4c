package enrichment

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"fit1-backend/internal/models"
	"fit1-backend/internal/tracking"
)

type portion struct {
	calories, protein, carbs, fats, fiber float64
}

type foodRef struct {
	keyword string
	name    string
	per     portion
}

// Rough per-serving values. Order matters: the first keyword found in an
// item wins, so more specific words come first.
var foodTable = []foodRef{
	{"peanut butter", "Peanut butter", portion{190, 8, 7, 16, 2}},
	{"sweet potato", "Sweet potato", portion{112, 2, 26, 0.1, 3.9}},
	{"egg", "Egg", portion{78, 6.3, 0.6, 5.3, 0}},
	{"toast", "Toast", portion{80, 3, 14, 1, 1.2}},
	{"bread", "Bread", portion{80, 3, 14, 1, 1.2}},
	{"bagel", "Bagel", portion{245, 10, 48, 1.5, 2}},
	{"oat", "Oatmeal", portion{150, 5, 27, 2.5, 4}},
	{"cereal", "Cereal", portion{150, 3, 33, 1, 2}},
	{"pancake", "Pancake", portion{175, 5, 22, 7, 1}},
	{"rice", "Rice", portion{205, 4.3, 45, 0.4, 0.6}},
	{"pasta", "Pasta", portion{220, 8, 43, 1.3, 2.5}},
	{"noodle", "Noodles", portion{220, 7, 40, 3, 2}},
	{"potato", "Potato", portion{160, 4.3, 37, 0.2, 3.8}},
	{"chicken", "Chicken breast", portion{165, 31, 0, 3.6, 0}},
	{"turkey", "Turkey", portion{135, 25, 0, 3, 0}},
	{"salmon", "Salmon", portion{233, 25, 0, 14, 0}},
	{"tuna", "Tuna", portion{130, 28, 0, 1, 0}},
	{"steak", "Steak", portion{270, 26, 0, 18, 0}},
	{"beef", "Beef", portion{250, 26, 0, 15, 0}},
	{"tofu", "Tofu", portion{94, 10, 2.3, 6, 0.4}},
	{"bean", "Beans", portion{225, 15, 40, 1, 15}},
	{"lentil", "Lentils", portion{230, 18, 40, 0.8, 15.6}},
	{"milk", "Milk", portion{103, 8, 12, 2.4, 0}},
	{"yogurt", "Yogurt", portion{100, 10, 6, 3.5, 0}},
	{"cheese", "Cheese", portion{113, 7, 0.4, 9.3, 0}},
	{"banana", "Banana", portion{105, 1.3, 27, 0.4, 3.1}},
	{"apple", "Apple", portion{95, 0.5, 25, 0.3, 4.4}},
	{"orange", "Orange", portion{62, 1.2, 15.4, 0.2, 3.1}},
	{"berr", "Berries", portion{60, 1, 14, 0.4, 4}},
	{"avocado", "Avocado", portion{240, 3, 12.8, 22, 10}},
	{"salad", "Salad", portion{50, 2, 8, 1, 3}},
	{"broccoli", "Broccoli", portion{55, 3.7, 11, 0.6, 5}},
	{"almond", "Almonds", portion{164, 6, 6, 14, 3.5}},
	{"nut", "Nuts", portion{170, 5, 6, 15, 2.5}},
	{"pizza", "Pizza slice", portion{285, 12, 36, 10, 2.5}},
	{"burger", "Burger", portion{354, 20, 29, 17, 1.5}},
	{"sandwich", "Sandwich", portion{300, 15, 35, 10, 3}},
	{"soup", "Soup", portion{150, 6, 18, 5, 3}},
	{"fries", "Fries", portion{365, 4, 48, 17, 4}},
	{"cookie", "Cookie", portion{150, 2, 20, 7, 0.7}},
	{"chocolate", "Chocolate", portion{155, 2, 17, 9, 2}},
	{"juice", "Juice", portion{110, 1.7, 26, 0.5, 0.5}},
	{"coffee", "Coffee", portion{2, 0.3, 0, 0, 0}},
	{"tea", "Tea", portion{2, 0, 0.5, 0, 0}},
}

// Unrecognised items are counted as one average mixed dish.
var defaultPortion = portion{250, 10, 30, 10, 3}

var (
	itemSeparator = regexp.MustCompile(`(?i)\s*(?:,|;|\+|&|\band\b|\bwith\b|\bplus\b)\s*`)
	leadingAmount = regexp.MustCompile(`^(\d+(?:\.\d+)?|a|an|one|two|three|four|five|six|half)\b\s*`)
)

var wordAmounts = map[string]float64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "half": 0.5,
}

// MealName labels a meal from the hour it was eaten.
func MealName(at string) string {
	switch h := tracking.HourOf(at); {
	case h >= 5 && h < 11:
		return "Breakfast"
	case h >= 11 && h < 16:
		return "Lunch"
	case h >= 16 && h < 18:
		return "Afternoon snack"
	case h >= 18 && h < 23:
		return "Dinner"
	default:
		return "Snack"
	}
}

func parseItem(raw string) (string, float64) {
	item := strings.ToLower(strings.TrimSpace(raw))
	qty := 1.0
	if m := leadingAmount.FindStringSubmatch(item); m != nil {
		if n, err := strconv.ParseFloat(m[1], 64); err == nil {
			qty = n
		} else {
			qty = wordAmounts[m[1]]
		}
		item = strings.TrimSpace(item[len(m[0]):])
	}
	if qty <= 0 || qty > 20 {
		qty = 1
	}
	return item, qty
}

func lookup(item string) (string, portion) {
	for _, ref := range foodTable {
		if strings.Contains(item, ref.keyword) {
			return ref.name, ref.per
		}
	}
	return "", defaultPortion
}

// EstimateNutrition breaks a free-text description into dishes and sums a
// per-serving table. It is deterministic for a given intake and profile.
func EstimateNutrition(intake models.FoodIntake, profile *models.Profile) models.NutritionAnalysis {
	var (
		foods  []models.MealAnalysis
		totals models.Macros
		kcal   float64
	)

	for _, raw := range itemSeparator.Split(intake.Food, -1) {
		item, qty := parseItem(raw)
		if item == "" {
			continue
		}
		name, per := lookup(item)
		if name == "" {
			r := []rune(item)
			name = string(unicode.ToUpper(r[0])) + string(r[1:])
		}
		dish := models.MealAnalysis{
			Name:     name,
			Calories: math.Round(per.calories * qty),
			Macros: models.MealMacros{
				Protein: math.Round(per.protein * qty),
				Carbs:   math.Round(per.carbs * qty),
				Fats:    math.Round(per.fats * qty),
			},
		}
		foods = append(foods, dish)
		kcal += dish.Calories
		totals.Protein += dish.Macros.Protein
		totals.Carbs += dish.Macros.Carbs
		totals.Fats += dish.Macros.Fats
		totals.Fiber += per.fiber * qty
	}
	totals.Fiber = math.Round(totals.Fiber)

	return models.NutritionAnalysis{
		TotalCalories: kcal,
		Macros:        totals,
		Meal: models.MealAnalysis{
			Name:     MealName(intake.Time),
			Calories: kcal,
			Macros:   models.MealMacros{Protein: totals.Protein, Carbs: totals.Carbs, Fats: totals.Fats},
		},
		Foods:           foods,
		Recommendations: recommendFood(kcal, totals, profile),
	}
}

func recommendFood(kcal float64, m models.Macros, profile *models.Profile) []string {
	var recs []string
	if m.Fiber < 5 {
		recs = append(recs, "Add vegetables, fruit or whole grains to raise the fiber in this meal.")
	}
	if m.Protein < 15 {
		recs = append(recs, "Include a protein source such as eggs, legumes, fish or lean meat.")
	}
	if profile != nil {
		target := Metrics(*profile).DailyCalories
		if kcal > target*0.4 {
			recs = append(recs, "This meal covers a large share of your daily calorie target; keep the next meals lighter.")
		}
	} else if kcal > 1000 {
		recs = append(recs, "This is a large meal; balance it with lighter meals for the rest of the day.")
	}
	if len(recs) == 0 {
		recs = append(recs, "Well-balanced choice. Keep it up!")
	}
	return recs
}
