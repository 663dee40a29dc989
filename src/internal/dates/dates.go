package dates

import (
	"regexp"
	"strconv"
	"time"
)

var reYear = regexp.MustCompile(`\b(\d{4})\b`)

// Plausible reports whether y can be a publication year: not before 1000
// and at most one year ahead.
func Plausible(y int) bool { return y >= 1000 && y <= time.Now().Year()+1 }

// ExtractYear returns the first plausible stand-alone 4-digit year in s,
// e.g. 2021 for "März 2021" or "2021-03-01". Longer digit runs are skipped.
func ExtractYear(s string) int {
	for _, m := range reYear.FindAllStringSubmatch(s, -1) {
		if y, err := strconv.Atoi(m[1]); err == nil && Plausible(y) {
			return y
		}
	}
	return 0
}
