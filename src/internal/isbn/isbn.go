package isbn

import (
	"fmt"
	"strings"
)

// Clean strips hyphens and whitespace and upper-cases a trailing 'x'.
func Clean(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if r == '-' || r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Valid reports whether s is a checksum-valid ISBN-10 or ISBN-13.
// s must already be cleaned.
func Valid(s string) bool { return Valid13(s) || Valid10(s) }

// Valid13 checks the ISBN-13 checksum (weights 1,3 alternating, mod 10).
func Valid13(s string) bool {
	if len(s) != 13 || !digits(s) {
		return false
	}
	sum := 0
	for i, ch := range s {
		d := int(ch - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return sum%10 == 0
}

// Valid10 checks the ISBN-10 checksum (weights 1..10, mod 11). The check
// digit may be 'X' standing for ten.
func Valid10(s string) bool {
	if len(s) != 10 || !digits(s[:9]) {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		sum += (i + 1) * int(s[i]-'0')
	}
	switch c := s[9]; {
	case c == 'X' || c == 'x':
		sum += 10 * 10
	case c >= '0' && c <= '9':
		sum += 10 * int(c-'0')
	default:
		return false
	}
	return sum%11 == 0
}

// CheckDigit10 computes the ISBN-10 check digit for a 9-digit core.
func CheckDigit10(core string) string {
	sum := 0
	for i, ch := range core {
		sum += (i + 1) * int(ch-'0')
	}
	cd := sum % 11
	if cd == 10 {
		return "X"
	}
	return fmt.Sprintf("%d", cd)
}

// To13 converts a valid ISBN-10 to its 978-prefixed ISBN-13 form. A valid
// ISBN-13 is returned unchanged; anything else yields "".
func To13(s string) string {
	if Valid13(s) {
		return s
	}
	if !Valid10(s) {
		return ""
	}
	core := "978" + s[:9]
	sum := 0
	for i, ch := range core {
		d := int(ch - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return fmt.Sprintf("%s%d", core, (10-sum%10)%10)
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
