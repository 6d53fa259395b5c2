package resolver

import (
	"fmt"
	"os"
	"strings"

	"foodtruth/internal/barcode"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default Open Food Facts product endpoints.
const (
	WorldURL = "https://world.openfoodfacts.org/api/v2/product"
	IndiaURL = "https://in.openfoodfacts.org/api/v2/product"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Source is one remote product database.
type Source struct {
	Name    string         `yaml:"name" validate:"required"`
	BaseURL string         `yaml:"base_url" validate:"required,url"`
	Region  barcode.Region `yaml:"region"`
}

// URL returns the product URL for code.
func (s Source) URL(code string) string {
	return strings.TrimRight(s.BaseURL, "/") + "/" + code + ".json"
}

// DefaultSources returns the world and India databases.
func DefaultSources() []Source {
	return []Source{
		{Name: "world", BaseURL: WorldURL, Region: barcode.RegionDefault},
		{Name: "india", BaseURL: IndiaURL, Region: barcode.RegionDomestic},
	}
}

// Order returns the sources to try for region: those serving the region first,
// then the rest, each group keeping its configured order.
func Order(sources []Source, region barcode.Region) []Source {
	ordered := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Region == region {
			ordered = append(ordered, s)
		}
	}
	for _, s := range sources {
		if s.Region != region {
			ordered = append(ordered, s)
		}
	}
	return ordered
}

// ValidateSources checks every source and rejects duplicate names.
func ValidateSources(sources []Source) error {
	if len(sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		if err := validate.Struct(s); err != nil {
			return fmt.Errorf("invalid source %d (%q): %w", i, s.Name, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate source name: %s", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// sourcesFile is the YAML layout of a sources file.
type sourcesFile struct {
	Sources []Source `yaml:"sources"`
}

// LoadSources reads and validates a YAML sources file.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}

	for i := range file.Sources {
		if file.Sources[i].Region == "" {
			file.Sources[i].Region = barcode.RegionDefault
		}
	}

	if err := ValidateSources(file.Sources); err != nil {
		return nil, err
	}
	return file.Sources, nil
}
