package classify

import (
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/extract"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"golang.org/x/net/html"
)

// signature is the set of primary anchors that identifies a template
type signature struct {
	kind model.Kind
	expr *xpath.Expr
}

// Checked in venue, coach, player order
var signatures = []signature{
	newSignature(model.KindVenue, extract.VenueAnchorPhone, extract.VenueAnchorAddress, extract.VenueAnchorName),
	newSignature(model.KindCoach, extract.CoachAnchorName, extract.CoachAnchorPhone, extract.CoachAnchorAddress),
	newSignature(model.KindPlayer, extract.PlayerAnchorName, extract.PlayerAnchorPhone, extract.PlayerAnchorAddress),
}

func newSignature(kind model.Kind, ids ...string) signature {
	preds := make([]string, len(ids))
	for i, id := range ids {
		preds[i] = fmt.Sprintf("@id='%s'", id)
	}
	return signature{
		kind: kind,
		expr: xpath.MustCompile("//*[" + strings.Join(preds, " or ") + "]"),
	}
}

// KindFromSignature reports the first template whose anchors appear in root
func KindFromSignature(root *html.Node) model.Kind {
	if root == nil {
		return model.KindUnknown
	}
	for _, sig := range signatures {
		if htmlquery.QuerySelector(root, sig.expr) != nil {
			return sig.kind
		}
	}
	return model.KindUnknown
}
