package additive

import (
	"maps"
	"regexp"
	"slices"
	"strings"

	"foodtruth/internal/model"

	"github.com/rs/zerolog"
)

var (
	languageTag     = regexp.MustCompile(`^[A-Z]{2,3}:`)
	parenthesized   = regexp.MustCompile(`\(.*\)`)
	numericWithTail = regexp.MustCompile(`^(\d+)([a-z])?`)
)

// knowledgeBase is an immutable index of additive records keyed by normalized code.
type knowledgeBase struct {
	records map[string]model.AdditiveRecord
}

// NewKnowledgeBase builds the index and derives every record's risk once.
func NewKnowledgeBase(db *Database, logger zerolog.Logger) KnowledgeBase {
	logger = logger.With().Str("component", "additive-knowledge-base").Logger()

	kb := &knowledgeBase{records: make(map[string]model.AdditiveRecord)}
	if db == nil {
		logger.Warn().Msg("no additive database supplied, every additive will be unidentified")
		return kb
	}

	counts := make(map[model.RiskLevel]int)
	for key, entry := range db.Additives {
		code := normalizeKey(key)
		if code == "" {
			continue
		}

		function := "Unknown"
		if len(entry.FunctionalClass) > 0 {
			function = entry.FunctionalClass[0]
		}

		record := model.AdditiveRecord{
			Code:              code,
			Name:              entry.Name,
			Function:          function,
			FunctionalClasses: entry.FunctionalClass,
			Risk:              deriveRisk(code, entry.Name, entry.FunctionalClass),
			Subtypes:          normalizeSubtypes(entry.Subtypes),
		}
		if IsSouthamptonSix(code) {
			record.Warning = SouthamptonWarning
		}

		kb.records[code] = record
		counts[record.Risk]++
	}

	logger.Info().
		Str("source", db.Metadata.Source).
		Str("version", db.Metadata.Version).
		Int("records", len(kb.records)).
		Int("high", counts[model.RiskHigh]).
		Int("moderate", counts[model.RiskModerate]).
		Int("low", counts[model.RiskLow]).
		Int("unknown", counts[model.RiskUnknown]).
		Msg("additive knowledge base built")

	return kb
}

// Classify resolves a raw tag in this order: exact code, code with its
// parenthesized suffix removed, then the leading number with an optional letter.
// A matching subtype replaces the base record's name.
func (kb *knowledgeBase) Classify(raw string) (model.AdditiveRecord, bool) {
	code := NormalizeCode(raw)
	if code == "" {
		return model.AdditiveRecord{}, false
	}

	if record, ok := kb.records[code]; ok {
		return cloneRecord(record), true
	}

	if base := parenthesized.ReplaceAllString(code, ""); base != code {
		if record, ok := kb.records[base]; ok {
			return withSubtype(record, code), true
		}
	}

	if m := numericWithTail.FindStringSubmatch(code); m != nil {
		if record, ok := kb.records[m[1]]; ok {
			if m[2] != "" {
				return withSubtype(record, m[1]+m[2]), true
			}
			return cloneRecord(record), true
		}
	}

	return model.AdditiveRecord{}, false
}

func (kb *knowledgeBase) ClassifyAll(tags []string) []model.ClassifiedAdditive {
	out := make([]model.ClassifiedAdditive, 0, len(tags))
	for _, tag := range tags {
		c := model.ClassifiedAdditive{
			Tag:         tag,
			DisplayCode: DisplayCode(tag),
		}
		if record, ok := kb.Classify(tag); ok {
			c.Record = &record
		} else {
			c.Unidentified = true
		}
		c.Advice = c.Risk().Label()
		out = append(out, c)
	}
	return out
}

func (kb *knowledgeBase) Summarize(tags []string) model.AdditiveSummary {
	summary := model.AdditiveSummary{
		Counts: map[model.RiskLevel]int{
			model.RiskLow:      0,
			model.RiskModerate: 0,
			model.RiskHigh:     0,
			model.RiskUnknown:  0,
		},
	}

	for _, c := range kb.ClassifyAll(tags) {
		summary.Total++
		summary.Counts[c.Risk()]++

		if c.Unidentified {
			summary.Unidentified = append(summary.Unidentified, c.DisplayCode)
			if IsSouthamptonSix(NormalizeCode(c.Tag)) {
				summary.ContainsSouthamptonSix = true
			}
			continue
		}
		if IsSouthamptonSix(c.Record.Code) {
			summary.ContainsSouthamptonSix = true
		}
	}

	return summary
}

func (kb *knowledgeBase) Size() int {
	return len(kb.records)
}

// NormalizeCode turns a raw tag into a lookup code: language tag and "E"
// prefix removed, lowercase. "en:e160a", "E160A" and "160a" all give "160a".
func NormalizeCode(raw string) string {
	code := strings.TrimSpace(strings.ToUpper(raw))
	code = strings.TrimSpace(languageTag.ReplaceAllString(code, ""))
	code = strings.TrimPrefix(code, "E")
	return strings.ToLower(code)
}

// DisplayCode formats a raw tag for presentation, e.g. "en:e160a" becomes "E160A".
func DisplayCode(raw string) string {
	code := NormalizeCode(raw)
	if code == "" {
		return ""
	}
	return "E" + strings.ToUpper(code)
}

func normalizeKey(key string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), "e")
}

func normalizeSubtypes(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[normalizeKey(k)] = v
	}
	return out
}

func cloneRecord(r model.AdditiveRecord) model.AdditiveRecord {
	r.Subtypes = maps.Clone(r.Subtypes)
	r.FunctionalClasses = slices.Clone(r.FunctionalClasses)
	return r
}

func withSubtype(base model.AdditiveRecord, subtype string) model.AdditiveRecord {
	r := cloneRecord(base)
	if name, ok := base.Subtypes[subtype]; ok {
		r.Name = name
	}
	return r
}
