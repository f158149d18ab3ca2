package dataset

import (
	"strconv"
	"strings"
	"time"
)

// datetimeLayouts are the layouts recognised when inferring datetime columns.
// Spreadsheet date cells arrive formatted, so the short US layouts excelize
// produces are included.
var datetimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
	"1/2/2006",
}

func parseInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// parseDatetime returns the parsed time and the index of the layout that
// matched.
func parseDatetime(s string) (time.Time, int, bool) {
	s = strings.TrimSpace(s)
	for i, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, i, true
		}
	}
	return time.Time{}, -1, false
}

// inferKind picks the narrowest kind every non-missing value fits.
//
//   - all integers: int64, or float64 when any cell is missing
//   - all numbers: float64
//   - all true/false: bool, or object when any cell is missing
//   - all datetimes: datetime64
//   - only missing cells: float64
//   - no rows at all: object
func inferKind(raw []string, missing []bool) Kind {
	if len(raw) == 0 {
		return KindObject
	}

	present, hasMissing := 0, false
	allInt, allFloat, allBool, allTime := true, true, true, true
	for i, v := range raw {
		if missing[i] {
			hasMissing = true
			continue
		}
		present++
		if allInt {
			_, allInt = parseInt(v)
		}
		if allFloat {
			_, allFloat = parseFloat(v)
		}
		if allBool {
			_, allBool = parseBool(v)
		}
		if allTime {
			_, _, allTime = parseDatetime(v)
		}
		if !allInt && !allFloat && !allBool && !allTime {
			return KindObject
		}
	}

	switch {
	case present == 0:
		return KindFloat64
	case allInt && !hasMissing:
		return KindInt64
	case allInt || allFloat:
		return KindFloat64
	case allBool && !hasMissing:
		return KindBool
	case allBool:
		return KindObject
	case allTime:
		return KindDatetime
	}
	return KindObject
}
