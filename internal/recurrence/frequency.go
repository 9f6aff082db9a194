package recurrence

import "strings"

// Frequency is the closed set of canonical recurrence units. All free-form
// labels are mapped onto one of these exactly once, by NormalizeFrequency;
// every other component consumes the typed value and never re-parses the
// raw label.
type Frequency string

const (
	Daily      Frequency = "daily"
	Weekly     Frequency = "weekly"
	Biweekly   Frequency = "biweekly"
	Monthly    Frequency = "monthly"
	Bimonthly  Frequency = "bimonthly"
	Quarterly  Frequency = "quarterly"
	Semiannual Frequency = "semiannual"
	Annual     Frequency = "annual"
)

func (f Frequency) String() string { return string(f) }

// Valid reports whether f is one of the canonical units.
func (f Frequency) Valid() bool {
	switch f {
	case Daily, Weekly, Biweekly, Monthly, Bimonthly, Quarterly, Semiannual, Annual:
		return true
	}
	return false
}

// synonymEntry pairs a lowercase label variant with its canonical unit.
// Entries are kept in a slice so substring matching is deterministic, with
// more specific keys ahead of the shorter keys they contain ("bisemanal"
// before "semanal").
type synonymEntry struct {
	key  string
	freq Frequency
}

// Label variants observed in production data: English, Portuguese and
// Spanish spellings, with and without accents.
var synonyms = []synonymEntry{
	{"quinzenal", Biweekly},
	{"quincenal", Biweekly},
	{"fortnightly", Biweekly},
	{"bi-weekly", Biweekly},
	{"biweekly", Biweekly},
	{"bisemanal", Biweekly},
	{"semi-annual", Semiannual},
	{"semiannual", Semiannual},
	{"semestral", Semiannual},
	{"half-yearly", Semiannual},
	{"bimonthly", Bimonthly},
	{"bimestral", Bimonthly},
	{"bimensal", Bimonthly},
	{"quarterly", Quarterly},
	{"trimestral", Quarterly},
	{"monthly", Monthly},
	{"mensal", Monthly},
	{"mensual", Monthly},
	{"weekly", Weekly},
	{"semanal", Weekly},
	{"annually", Annual},
	{"yearly", Annual},
	{"annual", Annual},
	{"anual", Annual},
	{"daily", Daily},
	{"diaria", Daily},
	{"diária", Daily},
	{"diario", Daily},
	{"diário", Daily},
}

// FallbackFrequency is applied when a label cannot be recognized at all.
// Preserved from the reference behavior: an unknown frequency degrades to
// weekly generation instead of failing the plan. Callers surface the
// fallback through NormalizeInfo so it is never silent.
const FallbackFrequency = Weekly

// NormalizeInfo describes how a label was resolved.
type NormalizeInfo struct {
	// Input is the original label, as received.
	Input string
	// MatchedKey is the synonym-table key that resolved the label, empty on
	// fallback.
	MatchedKey string
	// Substring is true when the label resolved via substring match rather
	// than an exact hit.
	Substring bool
	// Fallback is true when the label was empty or unrecognized and the
	// result defaulted to FallbackFrequency.
	Fallback bool
}

// NormalizeFrequency maps a free-form frequency label to a canonical unit.
// Resolution order: exact case-insensitive lookup, then substring match
// against table keys (longest key first), then fallback to weekly. It never
// fails; callers decide how loudly to report a fallback.
func NormalizeFrequency(label string) (Frequency, NormalizeInfo) {
	info := NormalizeInfo{Input: label}
	needle := strings.ToLower(strings.TrimSpace(label))
	if needle == "" {
		info.Fallback = true
		return FallbackFrequency, info
	}

	for _, entry := range synonyms {
		if entry.key == needle {
			info.MatchedKey = entry.key
			return entry.freq, info
		}
	}

	for _, entry := range synonyms {
		if strings.Contains(needle, entry.key) {
			info.MatchedKey = entry.key
			info.Substring = true
			return entry.freq, info
		}
	}

	info.Fallback = true
	return FallbackFrequency, info
}
