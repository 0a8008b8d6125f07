package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Strategy is one candidate pattern in an ordered priority list.
// Capture group 1 holds the value.
type Strategy struct {
	Name    string
	Pattern *regexp.Regexp
}

// FirstAccepted walks strategies in order and returns the trimmed capture of
// the first one whose first match passes accept. A strategy whose first match
// is rejected is abandoned; later matches of the same pattern are not tried.
func FirstAccepted(body string, strategies []Strategy, accept func(string) bool) (string, bool) {
	for _, s := range strategies {
		m := s.Pattern.FindStringSubmatch(body)
		if m == nil || len(m) < 2 {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		if candidate != "" && accept(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func mustStrategy(name, expr string) Strategy {
	return Strategy{Name: name, Pattern: regexp.MustCompile(expr)}
}

const (
	locationIcon = `<i class="fa-solid fa-location-dot"></i>`
	envelopeIcon = `<i class="fa-regular fa-envelope"></i>`
	phoneIcon    = `<i class="fa-solid fa-phone"></i>`
)

var (
	coachLocationStrategies = []Strategy{
		mustStrategy("icon-line", `(?i)`+locationIcon+`\s*([^<\n]+)`),
		mustStrategy("icon-tag", `(?i)`+locationIcon+`\s*([^<]+)`),
		mustStrategy("location-label", `(?i)Location[:\s]*([^<\n]+)`),
		mustStrategy("address-label", `(?i)Address[:\s]*([^<\n]+)`),
	}

	playerLocationStrategies = append([]Strategy{
		mustStrategy("icon-paragraph", `(?i)`+locationIcon+`\s*([^<\n]+?)</p>`),
	}, coachLocationStrategies...)

	coachEmailStrategies = []Strategy{
		mustStrategy("icon", `(?i)`+envelopeIcon+`\s*([^<\n]+@[^<\n]+)`),
		mustStrategy("email-label", `(?i)Email[:\s]*([^<\n]+@[^<\n]+)`),
		mustStrategy("contact-label", `(?i)Contact[:\s]*([^<\n]+@[^<\n]+)`),
		mustStrategy("bare", `(?i)([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
	}

	playerEmailStrategies = []Strategy{
		coachEmailStrategies[0],
		mustStrategy("icon-paragraph", `(?i)`+envelopeIcon+`\s*([^<]*)</p>`),
		coachEmailStrategies[1],
		coachEmailStrategies[2],
		coachEmailStrategies[3],
	}

	phoneStrategies = []Strategy{
		mustStrategy("icon", `(?i)`+phoneIcon+`\s*([^<\n]+)`),
		mustStrategy("phone-label", `(?i)Phone[:\s]*([^<\n]+)`),
		mustStrategy("contact-label", `(?i)Contact[:\s]*([^<\n]+)`),
		mustStrategy("bare", `(\+?[0-9\s\-\(\)]{10,})`),
	}

	birthDateStrategies = []Strategy{
		mustStrategy("date-of-birth", `(?i)Date Of Birth[:\s]*(\d{4}-\d{2}-\d{2})`),
		mustStrategy("dob", `(?i)DOB[:\s]*(\d{4}-\d{2}-\d{2})`),
		mustStrategy("born", `(?i)Born[:\s]*(\d{4}-\d{2}-\d{2})`),
	}

	instagramPattern = regexp.MustCompile(`<a href="(https://www\.instagram\.com/[^"]+)"`)
)

// Shared mailbox local parts that never identify a person
var genericMailboxes = []string{"care@", "info@", "support@", "contact@", "admin@"}

// Page furniture that leaks into label captures on player pages
var playerBoilerplate = []string{"book coaching", "training schedule", "free trial"}

func containsAny(s string, needles []string) bool {
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func acceptCoachLocation(s string) bool {
	return runeLen(s) > 3
}

func acceptPlayerLocation(s string) bool {
	n := runeLen(s)
	return n > 3 && n < 200 && s != "-" &&
		!containsAny(s, playerBoilerplate) &&
		!strings.Contains(strings.ToLower(s), "description")
}

func acceptCoachEmail(s string) bool {
	return !containsAny(s, genericMailboxes)
}

func acceptPlayerEmail(s string) bool {
	return s != "-" &&
		strings.Contains(s, "@") &&
		runeLen(s) < 100 &&
		!containsAny(s, genericMailboxes) &&
		!containsAny(s, playerBoilerplate)
}

func acceptPhone(s string) bool {
	return digitCount(s) >= 10
}

func acceptAny(string) bool { return true }
