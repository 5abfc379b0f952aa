package chat

import (
	"errors"
	"fmt"
	"strings"
)

// Verdict is the tri-state relevance classification for retrieved documents.
// It is deliberately not a boolean: partially relevant retrieval is a
// legitimate outcome that routes to blended retrieval rather than a binary
// accept/reject.
type Verdict int

const (
	Relevant Verdict = iota
	NotRelevant
	Ambiguous
)

// ErrMalformedVerdict marks a grader reply outside the three recognized
// values. It is a configuration/integration error, fatal for the turn,
// distinct from transient collaborator failures.
var ErrMalformedVerdict = errors.New("malformed relevance verdict")

func (v Verdict) String() string {
	switch v {
	case Relevant:
		return "RELEVANT"
	case NotRelevant:
		return "NOT_RELEVANT"
	case Ambiguous:
		return "AMBIGUOUS"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// ParseVerdict maps a grader reply to a Verdict. Surrounding whitespace,
// quotes and trailing punctuation are tolerated; anything else is
// ErrMalformedVerdict.
func ParseVerdict(s string) (Verdict, error) {
	cleaned := strings.ToUpper(strings.TrimSpace(s))
	cleaned = strings.Trim(cleaned, "\"'`.")

	switch cleaned {
	case "RELEVANT":
		return Relevant, nil
	case "NOT_RELEVANT":
		return NotRelevant, nil
	case "AMBIGUOUS":
		return Ambiguous, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMalformedVerdict, s)
}
