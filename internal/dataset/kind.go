package dataset

// Kind is the inferred type of a column
type Kind int

const (
	KindObject Kind = iota
	KindInt64
	KindFloat64
	KindBool
	KindDatetime
)

// String returns the dtype name printed in reports
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindDatetime:
		return "datetime64[ns]"
	default:
		return "object"
	}
}

// IsNumeric reports whether columns of this kind get summary statistics
func (k Kind) IsNumeric() bool {
	return k == KindInt64 || k == KindFloat64
}
