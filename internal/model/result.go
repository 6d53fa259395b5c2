package model

// ScanStatus is the outcome tag of a lookup.
type ScanStatus string

const (
	ScanFound    ScanStatus = "found"
	ScanNotFound ScanStatus = "not_found"
	ScanError    ScanStatus = "error"
)

// ScanResult is the tagged outcome of resolving a barcode against the remote sources.
// Only the fields of the active variant are set.
type ScanResult struct {
	Status  ScanStatus `json:"status"`
	Barcode string     `json:"barcode"`

	// found
	Product   *Product `json:"product,omitempty"`
	Source    string   `json:"source,omitempty"`
	SourceURL string   `json:"url,omitempty"`

	// not_found
	SearchedSources []string `json:"searchedSources,omitempty"`
	// AllSourcesFailed is set when every source failed transiently instead of answering.
	AllSourcesFailed bool `json:"allSourcesFailed,omitempty"`

	// error
	Reason string `json:"reason,omitempty"`

	Message string `json:"message,omitempty"`
}

// Found reports whether the result carries a product.
func (r ScanResult) Found() bool {
	return r.Status == ScanFound && r.Product != nil
}

// SourceCache marks results served from the local cache.
const SourceCache = "cache"

// EnrichedProduct is a resolved product plus everything derived from it on read.
type EnrichedProduct struct {
	Product   *Product             `json:"product"`
	Source    string               `json:"source"`
	SourceURL string               `json:"url,omitempty"`
	Name      string               `json:"name"`
	Grade     Grade                `json:"nutriscore"`
	Additives []ClassifiedAdditive `json:"additives"`
	Summary   AdditiveSummary      `json:"additive_summary"`
	Warnings  []string             `json:"warnings"`
	Analysis  IngredientAnalysis   `json:"ingredient_analysis"`
}

// DietStatus is a yes/no/maybe/unknown answer for a diet.
type DietStatus string

const (
	DietYes     DietStatus = "yes"
	DietNo      DietStatus = "no"
	DietMaybe   DietStatus = "maybe"
	DietUnknown DietStatus = "unknown"
)

// PalmOilStatus reports palm-oil presence.
type PalmOilStatus string

const (
	PalmOilFree    PalmOilStatus = "free"
	PalmOilPresent PalmOilStatus = "present"
	PalmOilMaybe   PalmOilStatus = "maybe"
	PalmOilUnknown PalmOilStatus = "unknown"
)

// IngredientAnalysis summarises the ingredient-analysis tags.
type IngredientAnalysis struct {
	Vegan      DietStatus    `json:"vegan"`
	Vegetarian DietStatus    `json:"vegetarian"`
	PalmOil    PalmOilStatus `json:"palm_oil"`
}
