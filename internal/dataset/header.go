package dataset

import (
	"strconv"
	"strings"
)

// NormalizeHeader makes column names usable and unique. A blank name at
// position i becomes "Unnamed: i"; a repeated name x becomes x.1, x.2 and
// so on, skipping suffixes that are already taken.
func NormalizeHeader(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[h] = true
	}

	counts := make(map[string]int, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		name := h
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if used[name] {
			base := name
			for {
				counts[base]++
				candidate := base + "." + strconv.Itoa(counts[base])
				if !used[candidate] && !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		used[name] = true
		names[i] = name
	}
	return names
}
