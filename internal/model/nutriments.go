package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Nutriments holds nutrition facts per 100g. Absent values are nil.
// The remote database sometimes encodes numbers as strings; decoding accepts both.
type Nutriments struct {
	EnergyKJ      *float64 `json:"energy-kj_100g,omitempty"`
	EnergyKcal    *float64 `json:"energy-kcal_100g,omitempty"`
	Fat           *float64 `json:"fat_100g,omitempty"`
	SaturatedFat  *float64 `json:"saturated-fat_100g,omitempty"`
	Carbohydrates *float64 `json:"carbohydrates_100g,omitempty"`
	Sugars        *float64 `json:"sugars_100g,omitempty"`
	Fiber         *float64 `json:"fiber_100g,omitempty"`
	Proteins      *float64 `json:"proteins_100g,omitempty"`
	Salt          *float64 `json:"salt_100g,omitempty"`
	Sodium        *float64 `json:"sodium_100g,omitempty"`

	VitaminA  *float64 `json:"vitamin-a_100g,omitempty"`
	VitaminC  *float64 `json:"vitamin-c_100g,omitempty"`
	VitaminD  *float64 `json:"vitamin-d_100g,omitempty"`
	Calcium   *float64 `json:"calcium_100g,omitempty"`
	Iron      *float64 `json:"iron_100g,omitempty"`
	Potassium *float64 `json:"potassium_100g,omitempty"`
}

// fields maps each wire key to its destination.
func (n *Nutriments) fields() map[string]**float64 {
	return map[string]**float64{
		"energy-kj_100g":     &n.EnergyKJ,
		"energy-kcal_100g":   &n.EnergyKcal,
		"fat_100g":           &n.Fat,
		"saturated-fat_100g": &n.SaturatedFat,
		"carbohydrates_100g": &n.Carbohydrates,
		"sugars_100g":        &n.Sugars,
		"fiber_100g":         &n.Fiber,
		"proteins_100g":      &n.Proteins,
		"salt_100g":          &n.Salt,
		"sodium_100g":        &n.Sodium,
		"vitamin-a_100g":     &n.VitaminA,
		"vitamin-c_100g":     &n.VitaminC,
		"vitamin-d_100g":     &n.VitaminD,
		"calcium_100g":       &n.Calcium,
		"iron_100g":          &n.Iron,
		"potassium_100g":     &n.Potassium,
	}
}

// UnmarshalJSON decodes nutriments, coercing numeric strings and ignoring unknown keys.
func (n *Nutriments) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode nutriments: %w", err)
	}

	*n = Nutriments{}
	for key, dst := range n.fields() {
		if v, ok := coerceFloat(raw[key]); ok {
			*dst = &v
		}
	}

	// "energy_100g" is the kJ value when the explicit key is missing.
	if n.EnergyKJ == nil {
		if v, ok := coerceFloat(raw["energy_100g"]); ok {
			n.EnergyKJ = &v
		}
	}

	return nil
}

// IsEmpty reports whether no value is set.
func (n *Nutriments) IsEmpty() bool {
	for _, dst := range n.fields() {
		if *dst != nil {
			return false
		}
	}
	return true
}

// coerceFloat converts a decoded JSON value to float64.
func coerceFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// MarshalJSON encodes a marker as a [category, code] pair.
func (m NovaMarker) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{m.Category, m.Code})
}

// UnmarshalJSON decodes a [category, code] pair.
func (m *NovaMarker) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("failed to decode nova marker: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("nova marker must have 2 elements, got %d", len(pair))
	}
	m.Category = pair[0]
	m.Code = pair[1]
	return nil
}
