package engine

import (
	"regexp"
	"strings"
	"time"
)

// The extractor mirrors the naming habits of the upstream tooling that
// produces these records: recordings and transcripts are prefixed with a
// "YYYYMMDD_HHMMSS_" stamp, calendar subjects pair the two participants
// around a lone "x", and one-off subjects use "Catch up with <name>"
// phrasing. Rules are tried in priority order and the first rule that
// yields a name wins; this matches the upstream behavior and keeps
// extraction reproducible.

var (
	extensionRe    = regexp.MustCompile(`(?i)\.(mp4|m4a|wav|vtt|txt|docx|json)$`)
	leadingStampRe = regexp.MustCompile(`^(\d{8})_(\d{6})[_\s-]+`)
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	bareDateRe     = regexp.MustCompile(`(^|[\s_])(\d{8})([\s_]|$)`)

	// Name corruption observed in the raw data: a date stamp (sometimes
	// with a counter) duplicated onto the end of a name fragment.
	trailingStampRe = regexp.MustCompile(`[-_]\d{8}(_\d{1,6})?$`)
	trailingJunkRe  = regexp.MustCompile(`[-_.,'\s]+$`)
)

// nameRule is one pattern in the extraction cascade. bind maps the regex
// submatches to the (primary, counterpart) pair. kindGated rules are too
// loose to trust on arbitrary text and only apply when the text carries a
// session keyword (check-in, interview, onboarding).
type nameRule struct {
	name      string
	re        *regexp.Regexp
	kindGated bool
	bind      func(m []string) (primary, counterpart string)
}

var nameRules = []nameRule{
	{
		// "Louise x Irvy", tolerating a doubled space on either side.
		name: "participant-pair",
		re:   regexp.MustCompile(`(?i)([a-z][a-z0-9'.-]*)\s{1,2}x\s{1,2}([a-z][a-z0-9'.-]*)`),
		bind: func(m []string) (string, string) { return m[1], m[2] },
	},
	{
		// Collapsed-space variant ("Louisex Irvy", "Louise xIrvy"). The
		// glued form cannot be told apart from ordinary words ending in x
		// ("Inbox sync"), so it only applies in session-keyword context.
		name:      "participant-pair-tight",
		re:        regexp.MustCompile(`(?i)\b([a-z][a-z0-9'.-]{2,})x\s{1,2}([a-z][a-z0-9'.-]*)|([a-z][a-z0-9'.-]*)\s{1,2}x([a-z][a-z0-9'.-]{2,})\b`),
		kindGated: true,
		bind: func(m []string) (string, string) {
			if m[1] != "" {
				return m[1], m[2]
			}
			return m[3], m[4]
		},
	},
	{
		name: "catch-up-with",
		re:   regexp.MustCompile(`(?i)\bcatch\s*-?\s*up\s+with\s+([a-z][a-z0-9'.-]*)`),
		bind: func(m []string) (string, string) { return "", m[1] },
	},
	{
		// "<Role> Check-in with <Person>", also interviews and onboarding.
		name: "session-with",
		re:   regexp.MustCompile(`(?i)\b(?:check[\s-]?in|interview|onboarding|orientation)\s+with\s+([a-z][a-z0-9'.-]*)`),
		bind: func(m []string) (string, string) { return "", m[1] },
	},
}

// kindKeywords classify the meeting kind independently of name
// extraction. First hit wins.
var kindKeywords = []struct {
	kind  MeetingKind
	words []string
}{
	{KindCheckIn, []string{"check-in", "check in", "checkin"}},
	{KindInterview, []string{"interview"}},
	{KindOnboarding, []string{"onboarding", "orientation"}},
	{KindOther, []string{"catch up", "catch-up", "meeting", "sync", "session", "1:1"}},
}

// Extract parses a record's raw subject or filename into a best-effort
// identity. It is pure and total: absence of information surfaces as
// empty fields and ConfidenceUnresolved, never as an error. When the text
// itself carries no date token, sourceHintDate (the source's own idea of
// the date, e.g. a file timestamp) is used instead.
func Extract(rawText string, sourceHintDate Date) Identity {
	text := strings.TrimSpace(rawText)
	text = extensionRe.ReplaceAllString(text, "")

	date, text := consumeDateToken(text)
	kind := classifyKind(text)

	var id Identity
	for _, rule := range nameRules {
		if rule.kindGated && !sessionKind(kind) {
			continue
		}
		m := rule.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		primary, counterpart := rule.bind(m)
		primary = cleanName(primary)
		counterpart = cleanName(counterpart)
		if primary == "" && counterpart == "" {
			continue
		}
		id.PrimaryPerson = primary
		id.CounterpartPerson = counterpart
		break
	}

	id.Kind = kind

	id.Date = date
	if id.Date.IsZero() && !sourceHintDate.IsZero() && sourceHintDate.Valid() {
		id.Date = sourceHintDate
	}

	id.Confidence = gradeConfidence(id)
	return id
}

// consumeDateToken pulls the highest-priority date token out of text and
// returns the remaining text with the token stripped, so that digits
// cannot later be mistaken for a name. Invalid dates are left in place.
func consumeDateToken(text string) (Date, string) {
	if m := leadingStampRe.FindStringSubmatch(text); m != nil {
		if d, ok := parseCompactDate(m[1]); ok {
			return d, text[len(m[0]):]
		}
	}
	if loc := isoDateRe.FindStringSubmatchIndex(text); loc != nil {
		s := text[loc[0]:loc[1]]
		if t, err := time.Parse("2006-01-02", s); err == nil {
			d := DateOf(t)
			if d.Valid() {
				return d, strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
			}
		}
	}
	if m := bareDateRe.FindStringSubmatchIndex(text); m != nil {
		s := text[m[4]:m[5]]
		if d, ok := parseCompactDate(s); ok {
			return d, strings.TrimSpace(text[:m[4]] + text[m[5]:])
		}
	}
	return Date{}, text
}

// parseCompactDate parses an 8-digit YYYYMMDD token.
func parseCompactDate(s string) (Date, bool) {
	t, err := time.Parse("20060102", s)
	if err != nil {
		return Date{}, false
	}
	d := DateOf(t)
	if !d.Valid() {
		return Date{}, false
	}
	return d, true
}

// cleanName normalizes an extracted name fragment: case-folded, trimmed,
// duplicated date-stamp suffixes stripped.
func cleanName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for {
		stripped := trailingStampRe.ReplaceAllString(s, "")
		if stripped == s {
			break
		}
		s = stripped
	}
	s = trailingJunkRe.ReplaceAllString(s, "")
	// A bare stamp leaves nothing behind; digits are not a name.
	if s == "" || !strings.ContainsFunc(s, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		return ""
	}
	return s
}

// sessionKind reports whether a kind was classified from a session
// keyword rather than generic meeting vocabulary.
func sessionKind(k MeetingKind) bool {
	switch k {
	case KindCheckIn, KindInterview, KindOnboarding:
		return true
	}
	return false
}

// classifyKind scans the text for meeting-kind keywords.
func classifyKind(text string) MeetingKind {
	lower := strings.ToLower(text)
	for _, kw := range kindKeywords {
		for _, w := range kw.words {
			if strings.Contains(lower, w) {
				return kw.kind
			}
		}
	}
	return KindUnknown
}
