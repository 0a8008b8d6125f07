package extract

import "regexp"

var nonDigit = regexp.MustCompile(`[^0-9]`)

// NormalizePhone reduces a phone string to its canonical 10 digits.
// Exactly 10 digits are returned as is, longer runs keep the last 10
// (dropping country and trunk prefixes), and anything shorter is returned unchanged.
func NormalizePhone(s string) string {
	if s == "" {
		return ""
	}

	digits := nonDigit.ReplaceAllString(s, "")
	switch {
	case len(digits) == 10:
		return digits
	case len(digits) > 10:
		return digits[len(digits)-10:]
	}
	return s
}

// digitCount counts ASCII digits in s
func digitCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}
