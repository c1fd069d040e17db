package engine

import (
	"regexp"
	"strings"
)

// CanonicalKey groups records that describe the same meeting instance:
// the meeting date plus the normalized counterpart name. Keys are only
// built from extractions confident enough to trust both parts; everything
// else goes through fuzzy matching instead, so that two different
// people's meetings sharing a name fragment are never merged on the
// fragment alone.
type CanonicalKey struct {
	Date Date
	Name string
}

// String renders the key in the stable form used to derive instance IDs.
func (k CanonicalKey) String() string {
	return k.Date.String() + "/" + k.Name
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	possessiveRe = regexp.MustCompile(`['’]s$`)
	trailingPunc = regexp.MustCompile(`[.,;:!?'"’-]+$`)
)

// normalizeName produces the comparison form of a person name: lowercase,
// trimmed, internal whitespace collapsed, possessives and trailing
// punctuation stripped.
func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = possessiveRe.ReplaceAllString(s, "")
	s = trailingPunc.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// buildKey turns an identity into its canonical key. The second return
// is false when the identity cannot be keyed: low confidence, no name,
// or (unless the engine is configured otherwise) no date.
func (e *Engine) buildKey(id Identity) (CanonicalKey, bool) {
	if id.Confidence == ConfidenceUnresolved {
		return CanonicalKey{}, false
	}
	name := normalizeName(id.bestName())
	if name == "" {
		return CanonicalKey{}, false
	}
	if id.Date.IsZero() {
		// Undated records are fuzzy-match candidates only, unless the
		// caller explicitly opts into name-only bucketing.
		if e.cfg.ExactDateRequired {
			return CanonicalKey{}, false
		}
		return CanonicalKey{Name: name}, true
	}
	return CanonicalKey{Date: id.Date, Name: name}, true
}
