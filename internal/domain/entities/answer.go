package entities

// AnswerComparison is what a single validation call compares.
// It lives only for the duration of that call.
type AnswerComparison struct {
	PlayerAnswer  string   // raw text as submitted
	CorrectAnswer string   // canonical answer
	Alternatives  []string // additional acceptable answers, in order
	Locale        string   // content language, used to localize the fuzzy judge prompt
}

// MatchKind tells how a verdict was reached.
type MatchKind string

const (
	MatchExact       MatchKind = "exact"       // normalized answer equals the canonical answer
	MatchAlternative MatchKind = "alternative" // normalized answer equals one of the alternatives
	MatchFuzzy       MatchKind = "fuzzy"       // accepted by the fuzzy judge
	MatchNone        MatchKind = "none"        // rejected
)

// Verdict is the accept/reject decision for one submission.
type Verdict struct {
	Accepted           bool
	MatchedOn          MatchKind
	MatchedAlternative string // alternative that matched, if any
}

// Rejected returns a verdict that accepts nothing.
func Rejected() Verdict {
	return Verdict{MatchedOn: MatchNone}
}

// JudgeResult is the fuzzy judge's answer to a comparison.
type JudgeResult struct {
	Accepted           bool   `json:"accepted"`
	MatchedAlternative string `json:"matched_alternative,omitempty"`
}
