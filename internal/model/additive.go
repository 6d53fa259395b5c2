package model

// RiskLevel is the derived risk tier of a food additive.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown"
)

// Label returns the short advice shown next to the tier.
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "Safe"
	case RiskModerate:
		return "Limit"
	case RiskHigh:
		return "Avoid"
	default:
		return "Unknown"
	}
}

// AdditiveRecord is a knowledge-base entry with its derived risk.
// Code is normalized: no "E" prefix, lowercase (e.g. "160a").
type AdditiveRecord struct {
	Code              string            `json:"code"`
	Name              string            `json:"name"`
	Function          string            `json:"function"`
	FunctionalClasses []string          `json:"functional_classes"`
	Risk              RiskLevel         `json:"risk_level"`
	Subtypes          map[string]string `json:"subtypes,omitempty"`
	Warning           string            `json:"warning,omitempty"`
}

// ClassifiedAdditive pairs a raw additive tag with its knowledge-base record.
// Record is nil when the code is not identified.
type ClassifiedAdditive struct {
	Tag          string          `json:"tag"`
	DisplayCode  string          `json:"display_code"`
	Record       *AdditiveRecord `json:"record,omitempty"`
	Unidentified bool            `json:"unidentified"`
	// Advice is the risk label, e.g. "Avoid".
	Advice string `json:"advice"`
}

// Risk returns the record's risk, or unknown for unidentified additives.
func (c ClassifiedAdditive) Risk() RiskLevel {
	if c.Record == nil {
		return RiskUnknown
	}
	return c.Record.Risk
}

// AdditiveSummary aggregates the additives of one product.
type AdditiveSummary struct {
	Total                  int               `json:"total"`
	Counts                 map[RiskLevel]int `json:"counts"`
	Unidentified           []string          `json:"unidentified,omitempty"`
	ContainsSouthamptonSix bool              `json:"contains_southampton_six"`
}
