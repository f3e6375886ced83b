package casetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestFromValue(t *testing.T) {
	assert.Equal(t, Felony, FromValue("جناية"))
	assert.Equal(t, Default, FromValue(""))
	assert.Equal(t, Default, FromValue("unknown"))
	assert.True(t, Valid("نقض"))
	assert.False(t, Valid("CASSATION"))
}

func TestAllIsClosedAndUnique(t *testing.T) {
	all := All()
	assert.Len(t, all, 10)

	seen := map[CaseType]bool{}
	codes := map[string]bool{}
	for _, ct := range all {
		assert.False(t, seen[ct], "duplicate value %s", ct)
		assert.False(t, codes[ct.Code()], "duplicate code %s", ct.Code())
		seen[ct] = true
		codes[ct.Code()] = true
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "عمالي", Labor.Label(language.Arabic))
	assert.Equal(t, "Labor", Labor.Label(language.English))
	assert.Equal(t, "Labor", Labor.Label(language.BritishEnglish))
	assert.Equal(t, "عمالي", Labor.Label(language.Japanese), "unsupported languages fall back to Arabic")
	assert.Equal(t, "عمالي", Labor.Label(), "no preference falls back to Arabic")
}

func TestOptions(t *testing.T) {
	opts := Options(language.English)
	assert.Len(t, opts, 10)
	assert.Equal(t, Option{Value: CivilPartial, Code: "CIVIL_PARTIAL", Label: "Civil (partial)"}, opts[0])
}
