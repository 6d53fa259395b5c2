package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PackagingKind discriminates the shapes the packaging field arrives in.
type PackagingKind int

const (
	// PackagingNone means no packaging information.
	PackagingNone PackagingKind = iota
	// PackagingText is a free-text description, e.g. "Plastic bottle".
	PackagingText
	// PackagingStructured is a list of packaging parts.
	PackagingStructured
)

// String returns the kind name.
func (k PackagingKind) String() string {
	switch k {
	case PackagingText:
		return "text"
	case PackagingStructured:
		return "structured"
	default:
		return "none"
	}
}

// PackagingPart describes one component of a product's packaging.
type PackagingPart struct {
	Material        string   `json:"material,omitempty"`
	Shape           string   `json:"shape,omitempty"`
	Recycling       string   `json:"recycling,omitempty"`
	QuantityPerUnit string   `json:"quantity_per_unit,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
}

// Packaging is a tagged union over the packaging field: a plain string,
// an object carrying "parts" or "packagings", a single part object, or an array of parts.
type Packaging struct {
	Kind  PackagingKind
	Text  string
	Parts []PackagingPart
}

// TextPackaging builds a text packaging value.
func TextPackaging(text string) Packaging {
	return Packaging{Kind: PackagingText, Text: text}
}

// StructuredPackaging builds a structured packaging value.
func StructuredPackaging(parts ...PackagingPart) Packaging {
	return Packaging{Kind: PackagingStructured, Parts: parts}
}

// MarshalJSON encodes text packaging as a string and structured packaging as {"parts": [...]}.
func (p Packaging) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PackagingText:
		return json.Marshal(p.Text)
	case PackagingStructured:
		return json.Marshal(struct {
			Parts []PackagingPart `json:"parts"`
		}{Parts: p.Parts})
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON inspects the first token to pick the variant.
func (p *Packaging) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*p = Packaging{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("failed to decode packaging text: %w", err)
		}
		if text != "" {
			*p = TextPackaging(text)
		}
		return nil

	case '[':
		var parts []PackagingPart
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("failed to decode packaging parts: %w", err)
		}
		*p = StructuredPackaging(parts...)
		return nil

	case '{':
		var obj struct {
			Parts      []PackagingPart `json:"parts"`
			Packagings []PackagingPart `json:"packagings"`
			PackagingPart
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("failed to decode packaging object: %w", err)
		}
		switch {
		case obj.Packagings != nil:
			*p = StructuredPackaging(obj.Packagings...)
		case obj.Parts != nil:
			*p = StructuredPackaging(obj.Parts...)
		case obj.PackagingPart != (PackagingPart{}):
			*p = StructuredPackaging(obj.PackagingPart)
		}
		return nil
	}

	return fmt.Errorf("unsupported packaging value: %s", string(data[:1]))
}
