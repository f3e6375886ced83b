// Package casetype is the closed set of case types. The stored value is the
// Arabic name already present in stored rows and must not change; display labels
// come from a per-language table.
package casetype

import "golang.org/x/text/language"

type CaseType string

const (
	CivilPartial   CaseType = "مدني جزئي"
	CivilFull      CaseType = "مدني كلي"
	Labor          CaseType = "عمالي"
	LaborAppeal    CaseType = "استئناف عمالي"
	Misdemeanor    CaseType = "جنحة"
	Felony         CaseType = "جناية"
	Economic       CaseType = "اقتصادي"
	Administrative CaseType = "محكمة إدارية"
	Housing        CaseType = "إسكان"
	Cassation      CaseType = "نقض"
)

// Default is used for stored values that match no known type.
const Default = CivilPartial

type entry struct {
	caseType CaseType
	code     string
	labels   map[language.Tag]string
}

var table = []entry{
	{CivilPartial, "CIVIL_PARTIAL", map[language.Tag]string{language.English: "Civil (partial)"}},
	{CivilFull, "CIVIL_FULL", map[language.Tag]string{language.English: "Civil (full)"}},
	{Labor, "LABOR", map[language.Tag]string{language.English: "Labor"}},
	{LaborAppeal, "LABOR_APPEAL", map[language.Tag]string{language.English: "Labor appeal"}},
	{Misdemeanor, "MISDEMEANOR", map[language.Tag]string{language.English: "Misdemeanor"}},
	{Felony, "FELONY", map[language.Tag]string{language.English: "Felony"}},
	{Economic, "ECONOMIC", map[language.Tag]string{language.English: "Economic"}},
	{Administrative, "ADMINISTRATIVE", map[language.Tag]string{language.English: "Administrative court"}},
	{Housing, "HOUSING", map[language.Tag]string{language.English: "Housing"}},
	{Cassation, "CASSATION", map[language.Tag]string{language.English: "Cassation"}},
}

// Arabic labels are the stored values themselves, so only English needs a
// table entry. The first tag is the fallback.
var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// All returns every case type in display order.
func All() []CaseType {
	out := make([]CaseType, len(table))
	for i, e := range table {
		out[i] = e.caseType
	}
	return out
}

// FromValue maps a stored value to its type, falling back to Default.
func FromValue(value string) CaseType {
	for _, e := range table {
		if string(e.caseType) == value {
			return e.caseType
		}
	}
	return Default
}

// Valid reports whether value is one of the known stored values.
func Valid(value string) bool {
	for _, e := range table {
		if string(e.caseType) == value {
			return true
		}
	}
	return false
}

func (t CaseType) lookup() entry {
	for _, e := range table {
		if e.caseType == t {
			return e
		}
	}
	return table[0]
}

// Code is a stable ASCII identifier for the type.
func (t CaseType) Code() string {
	return t.lookup().code
}

// Label returns the display name closest to the preferred language.
func (t CaseType) Label(preferred ...language.Tag) string {
	_, idx, _ := matcher.Match(preferred...)
	if idx == 0 {
		return string(t.lookup().caseType)
	}
	if label, ok := t.lookup().labels[language.English]; ok {
		return label
	}
	return string(t.lookup().caseType)
}

// Option is a case type paired with its label, for pickers.
type Option struct {
	Value CaseType `json:"value"`
	Code  string   `json:"code"`
	Label string   `json:"label"`
}

// Options lists all types labelled for the preferred language.
func Options(preferred ...language.Tag) []Option {
	out := make([]Option, len(table))
	for i, e := range table {
		out[i] = Option{Value: e.caseType, Code: e.code, Label: e.caseType.Label(preferred...)}
	}
	return out
}
