package model

import (
	"strings"
)

// NutrientLevel is a qualitative per-100g level reported for fat, saturated fat, sugars and salt.
type NutrientLevel string

const (
	NutrientLevelLow      NutrientLevel = "low"
	NutrientLevelModerate NutrientLevel = "moderate"
	NutrientLevelHigh     NutrientLevel = "high"
)

// Grade is a Nutri-Score or Eco-Score letter grade.
type Grade string

const (
	GradeA             Grade = "a"
	GradeB             Grade = "b"
	GradeC             Grade = "c"
	GradeD             Grade = "d"
	GradeE             Grade = "e"
	GradeUnknown       Grade = "unknown"
	GradeNotApplicable Grade = "not-applicable"
)

// Normalize returns the grade in lowercase, mapping empty or unrecognised values to GradeUnknown.
func (g Grade) Normalize() Grade {
	switch v := Grade(strings.ToLower(strings.TrimSpace(string(g)))); v {
	case GradeA, GradeB, GradeC, GradeD, GradeE, GradeNotApplicable:
		return v
	default:
		return GradeUnknown
	}
}

// NutrientLevels holds the qualitative nutrient-level tags of a product.
type NutrientLevels struct {
	Fat          NutrientLevel `json:"fat,omitempty"`
	SaturatedFat NutrientLevel `json:"saturated-fat,omitempty"`
	Sugars       NutrientLevel `json:"sugars,omitempty"`
	Salt         NutrientLevel `json:"salt,omitempty"`
}

// NovaMarker explains why a product falls in a NOVA group, e.g. ("additives", "en:e129").
type NovaMarker struct {
	Category string
	Code     string
}

// Product is the canonical record resolved for one barcode.
// It is never modified after resolution; enrichment lives in EnrichedProduct.
type Product struct {
	Code          string `json:"code"`
	ProductName   string `json:"product_name,omitempty"`
	ProductNameEn string `json:"product_name_en,omitempty"`
	GenericName   string `json:"generic_name,omitempty"`
	Brands        string `json:"brands,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ImageSmallURL string `json:"image_small_url,omitempty"`
	Quantity      string `json:"quantity,omitempty"`

	Nutriments     *Nutriments     `json:"nutriments,omitempty"`
	NutrientLevels *NutrientLevels `json:"nutrient_levels,omitempty"`

	NutriscoreGrade   Grade                   `json:"nutriscore_grade,omitempty"`
	NovaGroup         *int                    `json:"nova_group,omitempty"`
	NovaGroupsMarkers map[string][]NovaMarker `json:"nova_groups_markers,omitempty"`
	EcoscoreGrade     Grade                   `json:"ecoscore_grade,omitempty"`

	AdditivesTags []string `json:"additives_tags,omitempty"`
	AllergensTags []string `json:"allergens_tags,omitempty"`
	TracesTags    []string `json:"traces_tags,omitempty"`
	Allergens     string   `json:"allergens,omitempty"`
	Traces        string   `json:"traces,omitempty"`

	IngredientsText         string   `json:"ingredients_text,omitempty"`
	IngredientsAnalysisTags []string `json:"ingredients_analysis_tags,omitempty"`

	Packaging  Packaging       `json:"packaging,omitempty"`
	Packagings []PackagingPart `json:"packagings,omitempty"`

	Categories     string   `json:"categories,omitempty"`
	CategoriesTags []string `json:"categories_tags,omitempty"`
	Origins        string   `json:"origins,omitempty"`
	OriginsTags    []string `json:"origins_tags,omitempty"`
	Countries      string   `json:"countries,omitempty"`
	CountriesTags  []string `json:"countries_tags,omitempty"`
	Stores         string   `json:"stores,omitempty"`
	Labels         string   `json:"labels,omitempty"`
	LabelsTags     []string `json:"labels_tags,omitempty"`
}

// DisplayName returns the best available product name:
// product_name, then product_name_en, then generic_name.
func (p *Product) DisplayName() string {
	if p.ProductName != "" {
		return p.ProductName
	}
	if p.ProductNameEn != "" {
		return p.ProductNameEn
	}
	return p.GenericName
}

// Grade returns the Nutri-Score grade, defaulting to unknown.
func (p *Product) Grade() Grade {
	return p.NutriscoreGrade.Normalize()
}

// PackagingParts returns the structured packaging parts, preferring the
// top-level packagings array over parts nested in the packaging field.
func (p *Product) PackagingParts() []PackagingPart {
	if len(p.Packagings) > 0 {
		return p.Packagings
	}
	if p.Packaging.Kind == PackagingStructured {
		return p.Packaging.Parts
	}
	return nil
}

// HasNutritionData reports whether any nutriment value is present.
func (p *Product) HasNutritionData() bool {
	return p.Nutriments != nil && !p.Nutriments.IsEmpty()
}

// IsDomestic reports whether the product is tied to the domestic (India) region
// by barcode prefix, country tag or origin tag.
func (p *Product) IsDomestic() bool {
	if strings.HasPrefix(p.Code, "890") {
		return true
	}
	for _, tag := range p.CountriesTags {
		if tag == "en:india" {
			return true
		}
	}
	for _, tag := range p.OriginsTags {
		if tag == "en:india" {
			return true
		}
	}
	return false
}
