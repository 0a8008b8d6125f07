package classify

import (
	"net/url"
	"strings"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// URL fragments per kind, checked in this order
var (
	venueURLPatterns = []string{
		"/gym/", "/academy", "academy", "/school", "school",
		"/club", "club", "/fc", "fc", "/acad", "acad",
		"-aid-", "/aid-", "football-accademy", "football-academy",
	}
	coachURLPatterns  = []string{"coach", "-chid-"}
	playerURLPatterns = []string{"player", "-pid-"}
)

// KindFromURL guesses the page kind from its URL alone.
// Venue fragments win over coach, coach over player.
func KindFromURL(rawURL string) model.Kind {
	lower := strings.ToLower(matchTarget(rawURL))

	switch {
	case containsAny(lower, venueURLPatterns):
		return model.KindVenue
	case containsAny(lower, coachURLPatterns):
		return model.KindCoach
	case containsAny(lower, playerURLPatterns):
		return model.KindPlayer
	}
	return model.KindUnknown
}

func containsAny(s string, fragments []string) bool {
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

// matchTarget strips scheme and host so the site's own domain name
// ("bookmyplayer") does not match the player fragment
func matchTarget(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	target := u.EscapedPath()
	if u.RawQuery != "" {
		target += "?" + u.RawQuery
	}
	return target
}
