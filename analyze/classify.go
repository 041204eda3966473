package analyze

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Role is the outcome of lead-paragraph classification.
type Role int

const (
	// RoleBody means the paragraph is ordinary body text.
	RoleBody Role = iota
	// RoleTitle means the paragraph was accepted as the document title.
	RoleTitle
	// RoleAuthor means the paragraph was accepted as the author line.
	RoleAuthor
	// RoleAmbiguous means no rule fired either way; callers treat the
	// paragraph as body but the case stays distinguishable for tests
	// and diagnostics.
	RoleAmbiguous
)

func (r Role) String() string {
	switch r {
	case RoleTitle:
		return "title"
	case RoleAuthor:
		return "author"
	case RoleAmbiguous:
		return "ambiguous"
	default:
		return "body"
	}
}

// Decision is a classification outcome with the rule that produced it.
type Decision struct {
	Role   Role
	Reason string
	// Author holds the captured author name for RoleAuthor decisions.
	Author string
}

// LeadFacts are the properties of a lead paragraph the decision table
// consumes.
type LeadFacts struct {
	Text      string
	Alignment string
	FirstSize float64
	Bold      bool
}

// titleMaxLen and authorMaxLen bound candidate text lengths in runes.
const (
	titleMaxLen  = 50
	authorMaxLen = 30
)

var authorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^（(.+)）$`),
	regexp.MustCompile(`^\((.+)\)$`),
	regexp.MustCompile(`^作者[:：]\s*(.+)$`),
}

// ClassifyTitle decides whether the first paragraph is the document
// title. These heuristics target Western and Chinese academic-paper
// conventions; anything else misclassifies, which is an accepted
// limitation.
func ClassifyTitle(first, second *LeadFacts) Decision {
	if first == nil || strings.TrimSpace(first.Text) == "" {
		return Decision{Role: RoleAmbiguous, Reason: "empty leading paragraph"}
	}

	switch {
	case first.Alignment == "center":
		return Decision{Role: RoleTitle, Reason: "centered"}
	case second != nil && first.FirstSize > second.FirstSize:
		return Decision{Role: RoleTitle, Reason: "larger than following paragraph"}
	case second != nil && first.Bold && !second.Bold:
		return Decision{Role: RoleTitle, Reason: "bold while following paragraph is not"}
	case second != nil && looksLikeTitleText(first.Text):
		return Decision{Role: RoleTitle, Reason: "short without terminal punctuation"}
	}
	return Decision{Role: RoleBody, Reason: "no title rule matched"}
}

// ClassifyAuthor decides whether the second paragraph is an author
// line. It only applies after a title was accepted.
func ClassifyAuthor(second *LeadFacts) Decision {
	if second == nil {
		return Decision{Role: RoleBody, Reason: "no second paragraph"}
	}
	text := strings.TrimSpace(second.Text)
	if text == "" || utf8.RuneCountInString(text) >= authorMaxLen {
		return Decision{Role: RoleBody, Reason: "length outside author range"}
	}
	for _, pat := range authorPatterns {
		if m := pat.FindStringSubmatch(text); m != nil {
			return Decision{
				Role:   RoleAuthor,
				Reason: "matched author pattern",
				Author: strings.TrimSpace(m[1]),
			}
		}
	}
	return Decision{Role: RoleBody, Reason: "no author pattern matched"}
}

func looksLikeTitleText(text string) bool {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) >= titleMaxLen {
		return false
	}
	return !strings.Contains(text, "。") && !strings.Contains(text, ".")
}
