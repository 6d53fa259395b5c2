// Package barcode validates product barcodes and classifies their issuing region.
package barcode

import (
	"regexp"
	"strings"

	"foodtruth/internal/model"
)

// Region tags a barcode for source ordering. It never causes rejection.
type Region string

const (
	// RegionDefault is any barcode not issued under a domestic prefix.
	RegionDefault Region = "default-region"
	// RegionDomestic is a barcode issued under the Indian GS1 prefix "890".
	RegionDomestic Region = "domestic-region"
)

// DomesticPrefix is the GS1 prefix classified as RegionDomestic.
const DomesticPrefix = "890"

var pattern = regexp.MustCompile(`^\d{8,13}$`)

// Barcode is a syntactically valid barcode.
type Barcode struct {
	Code   string
	Region Region
}

// Validate trims the input and checks it is 8 to 13 ASCII digits.
// It returns model.ErrInvalidFormat otherwise.
func Validate(input string) (Barcode, error) {
	code := strings.TrimSpace(input)
	if !pattern.MatchString(code) {
		return Barcode{}, model.ErrInvalidFormat
	}
	return Barcode{Code: code, Region: Classify(code)}, nil
}

// IsValid reports whether input would pass Validate.
func IsValid(input string) bool {
	return pattern.MatchString(strings.TrimSpace(input))
}

// Classify returns the region of an already-validated code.
func Classify(code string) Region {
	if strings.HasPrefix(code, DomesticPrefix) {
		return RegionDomestic
	}
	return RegionDefault
}

// Kind names the symbology implied by the code length.
func (b Barcode) Kind() string {
	switch len(b.Code) {
	case 8:
		return "EAN-8"
	case 12:
		return "UPC-A"
	case 13:
		return "EAN-13"
	default:
		return "other"
	}
}

// CheckDigitValid verifies the GS1 mod-10 check digit.
// Informational only; lookups never reject on it.
func (b Barcode) CheckDigitValid() bool {
	n := len(b.Code)
	if n < 2 {
		return false
	}
	sum := 0
	// Weights alternate 3,1 starting from the digit left of the check digit.
	for i := n - 2; i >= 0; i-- {
		d := int(b.Code[i] - '0')
		if (n-2-i)%2 == 0 {
			d *= 3
		}
		sum += d
	}
	check := (10 - sum%10) % 10
	return check == int(b.Code[n-1]-'0')
}
