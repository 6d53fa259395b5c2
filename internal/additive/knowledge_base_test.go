package additive

import (
	"context"
	"testing"

	"foodtruth/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKnowledgeBase(t *testing.T) KnowledgeBase {
	t.Helper()
	db, err := NewEmbeddedLoader().Load(context.Background(), "")
	require.NoError(t, err)
	return NewKnowledgeBase(db, zerolog.Nop())
}

func TestKnowledgeBase_Classify(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	tests := []struct {
		name     string
		raw      string
		wantCode string
		wantName string
		wantRisk model.RiskLevel
	}{
		{name: "exact tag", raw: "en:e330", wantCode: "330", wantName: "Citric acid", wantRisk: model.RiskLow},
		{name: "upper case", raw: "E621", wantCode: "621", wantName: "Monosodium L-glutamate", wantRisk: model.RiskModerate},
		{name: "bare number", raw: "211", wantCode: "211", wantName: "Sodium benzoate", wantRisk: model.RiskModerate},
		{name: "surrounding whitespace", raw: "  en:e415  ", wantCode: "415", wantName: "Xanthan gum", wantRisk: model.RiskLow},
		{name: "other language tag", raw: "fr:e407", wantCode: "407", wantName: "Carrageenan", wantRisk: model.RiskModerate},
		{name: "letter suffix as its own entry", raw: "en:e160a", wantCode: "160a", wantName: "Carotenes", wantRisk: model.RiskLow},
		{name: "parenthesized subtype", raw: "en:e160a(ii)", wantCode: "160a", wantName: "Beta-carotenes, vegetable", wantRisk: model.RiskLow},
		{name: "parenthesized subtype missing from map", raw: "en:e160a(ix)", wantCode: "160a", wantName: "Carotenes", wantRisk: model.RiskLow},
		{name: "letter subtype of numeric base", raw: "en:e150d", wantCode: "150", wantName: "Caramel IV - sulfite ammonia caramel", wantRisk: model.RiskModerate},
		{name: "unknown letter falls back to base", raw: "e322z", wantCode: "322", wantName: "Lecithin", wantRisk: model.RiskModerate},
		{name: "numeric parenthesized subtype", raw: "E452(i)", wantCode: "452", wantName: "Sodium polyphosphate", wantRisk: model.RiskLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record, ok := kb.Classify(tt.raw)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, record.Code)
			assert.Equal(t, tt.wantName, record.Name)
			assert.Equal(t, tt.wantRisk, record.Risk)
		})
	}
}

func TestKnowledgeBase_Classify_Unidentified(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	for _, raw := range []string{"", "   ", "en:", "en:e999", "en:e9999", "en:sugar", "e"} {
		t.Run(raw, func(t *testing.T) {
			_, ok := kb.Classify(raw)
			assert.False(t, ok)
		})
	}
}

func TestKnowledgeBase_Classify_SpellingsAgree(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	want, ok := kb.Classify("160a")
	require.True(t, ok)

	for _, raw := range []string{"en:e160a", "E160A", "e160a", "EN:E160A"} {
		got, ok := kb.Classify(raw)
		require.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestKnowledgeBase_Classify_SouthamptonSix(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	for _, code := range []string{"en:e102", "en:e104", "en:e110", "en:e122", "en:e124", "en:e129"} {
		t.Run(code, func(t *testing.T) {
			record, ok := kb.Classify(code)
			require.True(t, ok)
			assert.Equal(t, model.RiskHigh, record.Risk)
			assert.Equal(t, SouthamptonWarning, record.Warning)
		})
	}

	record, ok := kb.Classify("en:e133")
	require.True(t, ok)
	assert.Empty(t, record.Warning)
}

func TestKnowledgeBase_Classify_DoesNotLeakState(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	first, ok := kb.Classify("en:e150")
	require.True(t, ok)
	first.Subtypes["150a"] = "changed"
	first.FunctionalClasses[0] = "changed"

	second, ok := kb.Classify("en:e150")
	require.True(t, ok)
	assert.Equal(t, "Caramel I - plain caramel", second.Subtypes["150a"])
	assert.Equal(t, "Colour", second.FunctionalClasses[0])
}

func TestKnowledgeBase_CustomDatabase(t *testing.T) {
	db := &Database{
		Metadata: Metadata{Source: "test"},
		Additives: map[string]Entry{
			"E129":  {Name: "Allura red AC", FunctionalClass: []string{"Antioxidant"}},
			"9999":  {Name: "Mystery", FunctionalClass: nil},
			"":      {Name: "blank key"},
			"1001a": {Name: "Subtyped", FunctionalClass: []string{"Emulsifier"}, Subtypes: map[string]string{"E1001a(i)": "First"}},
		},
	}
	kb := NewKnowledgeBase(db, zerolog.Nop())

	assert.Equal(t, 3, kb.Size())

	record, ok := kb.Classify("en:e129")
	require.True(t, ok)
	assert.Equal(t, model.RiskHigh, record.Risk, "Southampton Six wins over every other class")
	assert.Equal(t, "Antioxidant", record.Function)

	record, ok = kb.Classify("9999")
	require.True(t, ok)
	assert.Equal(t, "Unknown", record.Function)
	assert.Equal(t, model.RiskUnknown, record.Risk)

	record, ok = kb.Classify("E1001A(I)")
	require.True(t, ok)
	assert.Equal(t, "First", record.Name)
}

func TestKnowledgeBase_NilDatabase(t *testing.T) {
	kb := NewKnowledgeBase(nil, zerolog.Nop())

	assert.Equal(t, 0, kb.Size())
	_, ok := kb.Classify("en:e330")
	assert.False(t, ok)
}

func TestKnowledgeBase_Summarize(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	summary := kb.Summarize([]string{"en:e102", "en:e330", "en:e999", "en:e621", "en:e211"})

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 1, summary.Counts[model.RiskHigh])
	assert.Equal(t, 2, summary.Counts[model.RiskModerate])
	assert.Equal(t, 1, summary.Counts[model.RiskLow])
	assert.Equal(t, 1, summary.Counts[model.RiskUnknown])
	assert.Equal(t, []string{"E999"}, summary.Unidentified)
	assert.True(t, summary.ContainsSouthamptonSix)
}

func TestKnowledgeBase_Summarize_Empty(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	summary := kb.Summarize(nil)

	assert.Equal(t, 0, summary.Total)
	assert.False(t, summary.ContainsSouthamptonSix)
	assert.Empty(t, summary.Unidentified)
	assert.Len(t, summary.Counts, 4)
}

func TestKnowledgeBase_ClassifyAll(t *testing.T) {
	kb := newTestKnowledgeBase(t)

	got := kb.ClassifyAll([]string{"en:e322i", "en:e000"})
	require.Len(t, got, 2)

	assert.Equal(t, "E322I", got[0].DisplayCode)
	require.NotNil(t, got[0].Record)
	assert.Equal(t, "Lecithin", got[0].Record.Name)
	assert.False(t, got[0].Unidentified)

	assert.Equal(t, "en:e000", got[1].Tag)
	assert.Nil(t, got[1].Record)
	assert.True(t, got[1].Unidentified)
	assert.Equal(t, model.RiskUnknown, got[1].Risk())
	assert.Equal(t, "Unknown", got[1].Advice)
	assert.Equal(t, got[0].Risk().Label(), got[0].Advice)
}

func TestDisplayCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "en:e160a", want: "E160A"},
		{raw: "E330", want: "E330"},
		{raw: "330", want: "E330"},
		{raw: "en:e160a(ii)", want: "E160A(II)"},
		{raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayCode(tt.raw))
		})
	}
}
