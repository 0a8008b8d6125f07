package classify

import "github.com/bhargavak04/Book-My-Player-Scrape/internal/model"

// Points awarded per populated field
const (
	pointsKindMatch   = 10
	pointsName        = 5
	pointsPhone       = 5
	pointsAddress     = 5
	pointsEmail       = 5
	pointsLocation    = 3
	pointsSport       = 3
	pointsDescription = 2
	pointsExperience  = 2
	pointsEducation   = 2
)

// Score is the extraction quality of one candidate record
type Score struct {
	Total  int // kind match plus field points, used for ranking
	Fields int // field points alone, zero means nothing was extracted
}

// Scorer rates how well an extractor's record fits the page
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores r as a candidate for kind
func (s *Scorer) Calculate(r model.Record, kind model.Kind) Score {
	var fields int

	switch rec := r.(type) {
	case model.Venue:
		fields += award(rec.Name, model.NoName, pointsName)
		fields += award(rec.Phone, model.NoPhone, pointsPhone)
		fields += award(rec.Address, model.NoAddress, pointsAddress)
		fields += award(rec.Sport, "", pointsSport)
		fields += award(rec.Description, "", pointsDescription)
	case model.Player:
		fields += award(rec.Name, model.NoName, pointsName)
		fields += award(rec.Phone, model.NoPhone, pointsPhone)
		fields += award(rec.Email, model.NoEmail, pointsEmail)
		fields += award(rec.Location, model.NoLocation, pointsLocation)
	case model.Coach:
		fields += award(rec.Name, model.NoName, pointsName)
		fields += award(rec.Phone, model.NoPhone, pointsPhone)
		fields += award(rec.Email, model.NoEmail, pointsEmail)
		fields += award(rec.Location, model.NoLocation, pointsLocation)
		fields += award(rec.Experience, "", pointsExperience)
		fields += award(rec.Education, "", pointsEducation)
	}

	total := fields
	if r != nil && r.Kind() == kind {
		total += pointsKindMatch
	}

	return Score{Total: total, Fields: fields}
}

// award gives points for a populated value; placeholders count as missing
func award(value, placeholder string, points int) int {
	if value == "" || (placeholder != "" && value == placeholder) {
		return 0
	}
	return points
}
