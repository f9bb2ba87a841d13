package rules

import (
	"strconv"
	"strings"
)

// toLowerCached is a small readability alias; no caching is actually
// needed at these text sizes.
func toLowerCached(text string) string { return strings.ToLower(text) }

func indexOf(lowerText, anchor string) int {
	return strings.Index(lowerText, strings.ToLower(anchor))
}

// window returns a [start,end) slice bound within [0,total) covering a
// symmetric span around an anchor occurrence at idx with length anchorLen.
func window(idx, anchorLen, total int) (int, int) {
	const span = 60
	start := idx - span
	if start < 0 {
		start = 0
	}
	end := idx + anchorLen + span
	if end > total {
		end = total
	}
	return start, end
}

func parsePercent(match string) (float64, bool) {
	clean := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(match), "%"))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
