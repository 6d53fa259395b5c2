package additive

import (
	"regexp"
	"strings"

	"foodtruth/internal/model"
)

// SouthamptonWarning is attached to every Southampton Six colour.
const SouthamptonWarning = "May have an adverse effect on activity and attention in children"

// southamptonSix are the six colours from the 2007 Southampton study, as normalized codes.
var southamptonSix = map[string]struct{}{
	"102": {},
	"104": {},
	"110": {},
	"122": {},
	"124": {},
	"129": {},
}

var sulphiteCode = regexp.MustCompile(`^22[0-9]`)

var (
	naturalColours     = []string{"curcumin", "chlorophyll", "carotene", "beet", "paprika", "lycopene"}
	syntheticColours   = []string{"azorubine", "ponceau", "erythrosine", "indigotine"}
	mildSweeteners     = []string{"steviol", "thaumatin", "xylitol", "erythritol"}
	phenolAntioxidants = []string{"bha", "bht", "tbhq"}
	mildAntioxidants   = []string{"ascorbic", "tocopherol", "vitamin", "citric"}
	texturantClasses   = []string{"Thickener", "Stabilizer", "Emulsifier", "Gelling agent"}
)

// IsSouthamptonSix reports whether a normalized code is one of the Southampton Six.
func IsSouthamptonSix(code string) bool {
	_, ok := southamptonSix[code]
	return ok
}

// deriveRisk assigns a risk tier from the code, name and functional classes.
// The first matching rule wins.
func deriveRisk(code, name string, classes []string) model.RiskLevel {
	lowerName := strings.ToLower(name)

	if IsSouthamptonSix(code) {
		return model.RiskHigh
	}

	if hasClass(classes, "Colour") {
		switch {
		case containsAny(lowerName, naturalColours):
			return model.RiskLow
		case containsAny(lowerName, syntheticColours):
			return model.RiskHigh
		default:
			return model.RiskModerate
		}
	}

	if sulphiteCode.MatchString(code) || strings.Contains(lowerName, "sulfite") || strings.Contains(lowerName, "sulphite") {
		return model.RiskModerate
	}

	if hasClass(classes, "Preservative") {
		return model.RiskModerate
	}

	if hasClass(classes, "Sweetener") {
		if containsAny(lowerName, mildSweeteners) {
			return model.RiskLow
		}
		return model.RiskModerate
	}

	if hasClass(classes, "Antioxidant") {
		switch {
		case containsAny(lowerName, phenolAntioxidants):
			return model.RiskHigh
		case containsAny(lowerName, mildAntioxidants):
			return model.RiskLow
		default:
			return model.RiskModerate
		}
	}

	if hasClass(classes, texturantClasses...) {
		if strings.Contains(lowerName, "carrageenan") {
			return model.RiskModerate
		}
		return model.RiskLow
	}

	if hasClass(classes, "Acidity regulator") {
		return model.RiskLow
	}

	if hasClass(classes, "Flavour enhancer") {
		if strings.Contains(lowerName, "glutamate") {
			return model.RiskModerate
		}
		return model.RiskLow
	}

	return model.RiskUnknown
}

func hasClass(classes []string, wanted ...string) bool {
	for _, c := range classes {
		for _, w := range wanted {
			if strings.EqualFold(strings.TrimSpace(c), w) {
				return true
			}
		}
	}
	return false
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
