package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		label string
		want  string
	}{
		{"branch code and city", "9800日盛台北分公司", "日盛"},
		{"city truncates tail", "元大台中分公司", "元大"},
		{"suffix only", "凱基分公司", "凱基"},
		{"business division suffix", "統一營業部", "統一"},
		{"sub-branch suffix", "合庫分行", "合庫"},
		{"three digit code", "116日盛", "日盛"},
		{"plain parent name", "富邦", "富邦"},
		{"no qualifier at all", "美林", "美林"},
		{"five leading digits keeps fifth", "12345永豐金", "5永豐金"},
		{"two digits kept", "12元大", "12元大"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.label))
		})
	}
}

func TestNormalizeFallsBackWhenEmpty(t *testing.T) {
	t.Parallel()

	// The whole label is a branch token, so truncation erases everything and
	// the raw label is returned unchanged.
	assert.Equal(t, "台北分公司", Normalize("台北分公司"))
}

func TestNormalizeEarliestPositionWins(t *testing.T) {
	t.Parallel()

	// 新竹 appears before 竹北 in the string, so truncation happens at 新竹
	// even though 竹北 is also in the lexicon.
	assert.Equal(t, "國泰", Normalize("國泰新竹竹北分公司"))
}

func TestNormalizeLexiconOrderBreaksTies(t *testing.T) {
	t.Parallel()

	// With a custom lexicon where both tokens match at position 0 of the
	// remainder, the earlier entry decides the cut regardless of length.
	n := New([]string{"中山", "中山北"})
	assert.Equal(t, "永豐金", n.Normalize("永豐金中山北分公司"))
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	labels := []string{
		"9800日盛台北分公司", "元大台中分公司", "凱基分公司", "富邦",
		"台北分公司", "1020合庫敦南營業部", "美林",
	}
	for _, l := range labels {
		once := Normalize(l)
		assert.Equal(t, once, Normalize(once), "label %q", l)
	}
}
