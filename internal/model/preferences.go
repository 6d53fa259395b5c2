package model

// Preferences are the user's dietary flags.
type Preferences struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"glutenFree"`
}

// Preference names accepted by toggle operations.
const (
	PreferenceVegetarian = "vegetarian"
	PreferenceVegan      = "vegan"
	PreferenceGlutenFree = "glutenFree"
)
