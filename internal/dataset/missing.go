package dataset

// DefaultMissingTokens are the cell values read as missing.
var DefaultMissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// MissingSet matches cell values against a fixed set of missing tokens.
// Matching is exact: " NA" is a value, "NA" is missing.
type MissingSet map[string]struct{}

// NewMissingSet returns the default tokens plus any extra ones.
func NewMissingSet(extra ...string) MissingSet {
	set := make(MissingSet, len(DefaultMissingTokens)+len(extra))
	for _, tok := range DefaultMissingTokens {
		set[tok] = struct{}{}
	}
	for _, tok := range extra {
		set[tok] = struct{}{}
	}
	return set
}

// IsMissing reports whether value is a missing token
func (s MissingSet) IsMissing(value string) bool {
	_, ok := s[value]
	return ok
}
