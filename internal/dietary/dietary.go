// Package dietary derives warnings and ingredient-analysis statuses from product tags.
package dietary

import (
	"strings"

	"foodtruth/internal/model"
)

// Warning texts, in the order Evaluate emits them.
const (
	WarningNonVegetarian     = "Non-Vegetarian: this product contains non-vegetarian ingredients"
	WarningVegetarianUnknown = "Vegetarian status Unknown: vegetarian status could not be determined"
	WarningNonVegan          = "Non-Vegan: this product contains non-vegan ingredients"
	WarningVeganUnknown      = "Vegan status Unknown: vegan status could not be determined"
	WarningGluten            = "Contains Gluten: this product lists gluten among its allergens"
)

// Evaluate returns the warnings for product under prefs, in the fixed order
// vegetarian, vegan, gluten. Each enabled preference adds at most one warning.
func Evaluate(product *model.Product, prefs model.Preferences) []string {
	warnings := []string{}
	if product == nil {
		return warnings
	}

	analysis := tagSet(product.IngredientsAnalysisTags)

	if prefs.Vegetarian {
		switch {
		case analysis["non-vegetarian"]:
			warnings = append(warnings, WarningNonVegetarian)
		case analysis["vegetarian-status-unknown"]:
			warnings = append(warnings, WarningVegetarianUnknown)
		}
	}

	if prefs.Vegan {
		switch {
		case analysis["non-vegan"]:
			warnings = append(warnings, WarningNonVegan)
		case analysis["vegan-status-unknown"]:
			warnings = append(warnings, WarningVeganUnknown)
		}
	}

	if prefs.GlutenFree && tagSet(product.AllergensTags)["gluten"] {
		warnings = append(warnings, WarningGluten)
	}

	return warnings
}

// Analyze reads the vegan, vegetarian and palm-oil statuses from ingredient-analysis tags.
func Analyze(tags []string) model.IngredientAnalysis {
	set := tagSet(tags)
	return model.IngredientAnalysis{
		Vegan:      dietStatus(set, "vegan"),
		Vegetarian: dietStatus(set, "vegetarian"),
		PalmOil:    palmOilStatus(set),
	}
}

func dietStatus(set map[string]bool, diet string) model.DietStatus {
	switch {
	case set["non-"+diet]:
		return model.DietNo
	case set[diet]:
		return model.DietYes
	case set["maybe-"+diet]:
		return model.DietMaybe
	default:
		return model.DietUnknown
	}
}

func palmOilStatus(set map[string]bool) model.PalmOilStatus {
	switch {
	case set["palm-oil"]:
		return model.PalmOilPresent
	case set["palm-oil-free"]:
		return model.PalmOilFree
	case set["may-contain-palm-oil"]:
		return model.PalmOilMaybe
	default:
		return model.PalmOilUnknown
	}
}

// tagSet indexes tags by their value without the language prefix, so "en:vegan" is "vegan".
func tagSet(tags []string) map[string]bool {
	set := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if i := strings.IndexByte(tag, ':'); i >= 0 {
			tag = tag[i+1:]
		}
		set[tag] = true
	}
	return set
}
