package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Diagnostics returned next to a bare coach record
var (
	ErrEmptyPayload     = errors.New("coach json: empty payload")
	ErrMalformedPayload = errors.New("coach json: malformed payload")
	ErrMissingPayload   = errors.New("coach json: no \"d\" object")
)

// IsJSONBody reports whether body looks like the coach API's JSON response
func IsJSONBody(body string) bool {
	return strings.HasPrefix(strings.TrimSpace(body), "{")
}

// coachJSONFields maps keys of the "d" object to coach fields, in output order
var coachJSONFields = []struct {
	key string
	set func(c *model.Coach, v string)
}{
	{"name", func(c *model.Coach, v string) { c.Name = v }},
	{"phone", func(c *model.Coach, v string) { c.Phone = NormalizePhone(v) }},
	{"email", func(c *model.Coach, v string) {
		if v != "-" && acceptCoachEmail(v) {
			c.Email = v
		}
	}},
	{"address", func(c *model.Coach, v string) { c.Address = v }},
	{"city", func(c *model.Coach, v string) { c.City = v }},
	{"state", func(c *model.Coach, v string) { c.State = v }},
	{"sport", func(c *model.Coach, v string) { c.Sport = v }},
	{"experience", func(c *model.Coach, v string) { c.Experience = v }},
	{"education", func(c *model.Coach, v string) { c.Education = v }},
	{"achievement", func(c *model.Coach, v string) { c.Achievement = v }},
	{"skill", func(c *model.Coach, v string) { c.Skills = v }},
	{"heighlight", func(c *model.Coach, v string) { c.Highlight = v }}, // sic, the API misspells it
	{"fee", func(c *model.Coach, v string) { c.Fee = v }},
	{"package", func(c *model.Coach, v string) { c.Package = v }},
	{"gender", func(c *model.Coach, v string) { c.Gender = v }},
	{"certificate", func(c *model.Coach, v string) { c.Certificate = v }},
	{"about", func(c *model.Coach, v string) { c.About = v }},
	{"postcode", func(c *model.Coach, v string) { c.Postcode = v }},
	{"lat", func(c *model.Coach, v string) { c.Latitude = v }},
	{"lng", func(c *model.Coach, v string) { c.Longitude = v }},
}

// DecodeCoachJSON builds a coach from the {"d": {...}} API payload.
// The returned record is always usable; a non-nil error is a diagnostic
// explaining why it is bare. Values keep their JSON source text: strings are
// trimmed, numbers are not reformatted and true renders as "true".
func DecodeCoachJSON(body, sourceURL string, now time.Time) (model.Coach, error) {
	c := model.Coach{Header: model.NewHeader(model.KindCoach, sourceURL, now)}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return c, ErrEmptyPayload
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	var top any
	if err := dec.Decode(&top); err != nil {
		return c, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return c, fmt.Errorf("%w: trailing data after object", ErrMalformedPayload)
	}

	obj, ok := top.(map[string]any)
	if !ok {
		return c, ErrMissingPayload
	}
	d, ok := obj["d"].(map[string]any)
	if !ok {
		return c, ErrMissingPayload
	}

	for _, f := range coachJSONFields {
		if v, ok := scalarString(d[f.key]); ok {
			f.set(&c, v)
		}
	}

	c.Location = joinLocation(c.City, c.State)
	return c, nil
}

// scalarString renders a decoded JSON value as a field string.
// Absent, null, blank, false and zero values report false.
func scalarString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case bool:
		if !val {
			return "", false
		}
		return "true", true
	case json.Number:
		if f, err := strconv.ParseFloat(val.String(), 64); err == nil && f == 0 {
			return "", false
		}
		return val.String(), true
	case map[string]any:
		if len(val) == 0 {
			return "", false
		}
		return compactJSON(val)
	case []any:
		if len(val) == 0 {
			return "", false
		}
		return compactJSON(val)
	}
	return "", false
}

func compactJSON(v any) (string, bool) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", false
	}
	return strings.TrimSpace(buf.String()), true
}

// joinLocation combines city and state, dropping the state when the city
// already names it
func joinLocation(city, state string) string {
	switch {
	case city != "" && state != "":
		if strings.Contains(strings.ToLower(city), strings.ToLower(state)) {
			return city
		}
		return city + ", " + state
	case city != "":
		return city
	default:
		return state
	}
}
