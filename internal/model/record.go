package model

import "time"

// Kind is the discriminant of a Record
type Kind string

const (
	KindVenue   Kind = "venue"
	KindCoach   Kind = "coach"
	KindPlayer  Kind = "player"
	KindUnknown Kind = "unknown"
	KindError   Kind = "error"
)

// IsProfile reports whether the kind carries extracted profile fields
func (k Kind) IsProfile() bool {
	return k == KindVenue || k == KindCoach || k == KindPlayer
}

// Record is the closed set of per-page outputs: Venue, Coach, Player, Unknown and Failure.
// Only types in this package can implement it.
type Record interface {
	Kind() Kind
	Meta() Header
	record()
}

// Header holds the fields every record carries
type Header struct {
	Type       Kind      `json:"type"`
	SourceURL  string    `json:"url"`
	CapturedAt time.Time `json:"scraped_at"`
}

// NewHeader builds a header for the given kind
func NewHeader(kind Kind, sourceURL string, capturedAt time.Time) Header {
	return Header{Type: kind, SourceURL: sourceURL, CapturedAt: capturedAt}
}

// Venue is a gym, academy, school or club listing.
// Empty strings mean the field was not found on the page.
type Venue struct {
	Header
	Name           string `json:"name,omitempty"`
	Phone          string `json:"phone,omitempty"`
	PhoneSecondary string `json:"phone2,omitempty"`
	Address        string `json:"address,omitempty"`
	LocationID     string `json:"location_id,omitempty"`
	Sport          string `json:"sport,omitempty"`
	ObjectType     string `json:"object_type,omitempty"`
	Description    string `json:"description,omitempty"`
	InstagramURL   string `json:"instagram_url,omitempty"`
}

// Coach is a coach profile, from either the HTML template or the JSON API payload
type Coach struct {
	Header
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	Sport       string `json:"sport,omitempty"`
	Location    string `json:"location,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`

	// JSON payload only
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Experience  string `json:"experience,omitempty"`
	Education   string `json:"education,omitempty"`
	Achievement string `json:"achievement,omitempty"`
	Skills      string `json:"skills,omitempty"`
	Highlight   string `json:"highlight,omitempty"`
	Fee         string `json:"fee,omitempty"`
	Package     string `json:"package,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Certificate string `json:"certificate,omitempty"`
	About       string `json:"about,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
	Latitude    string `json:"latitude,omitempty"`
	Longitude   string `json:"longitude,omitempty"`
}

// Player is a player profile
type Player struct {
	Header
	Name       string `json:"name,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	Address    string `json:"address,omitempty"`
	Location   string `json:"location,omitempty"`
	LocationID string `json:"location_id,omitempty"`
	ObjectID   string `json:"object_id,omitempty"`
}

// Unknown is produced when no extractor scored and the URL carried no type signature
type Unknown struct {
	Header
	ErrorMessage string `json:"error"`
}

// Failure is the "error" record: the page could not be fetched or processing failed
type Failure struct {
	Header
	ErrorMessage string `json:"error"`
}

// NewUnknown creates an Unknown record
func NewUnknown(sourceURL string, capturedAt time.Time, message string) Unknown {
	return Unknown{Header: NewHeader(KindUnknown, sourceURL, capturedAt), ErrorMessage: message}
}

// NewFailure creates an error record
func NewFailure(sourceURL string, capturedAt time.Time, message string) Failure {
	return Failure{Header: NewHeader(KindError, sourceURL, capturedAt), ErrorMessage: message}
}

func (r Venue) Kind() Kind   { return KindVenue }
func (r Coach) Kind() Kind   { return KindCoach }
func (r Player) Kind() Kind  { return KindPlayer }
func (r Unknown) Kind() Kind { return KindUnknown }
func (r Failure) Kind() Kind { return KindError }

func (r Venue) Meta() Header   { return r.Header }
func (r Coach) Meta() Header   { return r.Header }
func (r Player) Meta() Header  { return r.Header }
func (r Unknown) Meta() Header { return r.Header }
func (r Failure) Meta() Header { return r.Header }

func (Venue) record()   {}
func (Coach) record()   {}
func (Player) record()  {}
func (Unknown) record() {}
func (Failure) record() {}

// Messages carried by Unknown and Failure records
const (
	MsgFetchFailed  = "Failed to fetch page"
	MsgUndetermined = "Could not determine content type"
)

// Placeholders printed in place of missing profile values. They never
// count as extracted data.
const (
	NoName     = "Unknown"
	NoPhone    = "No phone"
	NoAddress  = "No address"
	NoEmail    = "No email"
	NoLocation = "No location"
)

// OrPlaceholder returns value, or placeholder when value is empty
func OrPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}

// Summary returns the name, phone, email and location of a profile record,
// or empty strings for kinds that do not carry them
func Summary(r Record) (name, phone, email, location string) {
	switch rec := r.(type) {
	case Venue:
		return rec.Name, rec.Phone, "", rec.Address
	case Coach:
		return rec.Name, rec.Phone, rec.Email, rec.Location
	case Player:
		return rec.Name, rec.Phone, rec.Email, rec.Location
	}
	return "", "", "", ""
}

// ErrorMessage returns the message of an Unknown or Failure record
func ErrorMessage(r Record) string {
	switch rec := r.(type) {
	case Unknown:
		return rec.ErrorMessage
	case Failure:
		return rec.ErrorMessage
	}
	return ""
}
