package chat

import (
	"iter"
	"strings"
)

// streamAnswer forwards model fragments to the consumer and accumulates the
// full answer for persistence. Each fragment is emitted immediately with raw
// newlines replaced by the paragraph marker; the accumulated answer keeps the
// original text so history stores what the model actually said.
//
// Returns the accumulated answer, whether the model stream ran to completion,
// and any error the model stream produced. completed is false both on error
// and when the consumer stopped pulling.
func streamAnswer(fragments iter.Seq2[string, error], yield func(Event, error) bool) (string, bool, error) {
	var answer strings.Builder

	for fragment, err := range fragments {
		if err != nil {
			return answer.String(), false, err
		}

		event := Event{
			Type:    EventFragment,
			Payload: strings.ReplaceAll(fragment, "\n", ParagraphMark),
		}
		if !yield(event, nil) {
			return answer.String(), false, nil
		}

		answer.WriteString(fragment)
	}

	return answer.String(), true, nil
}
