// Package grader classifies whether retrieved documents answer the user's
// question. The verdict is tri-state: RELEVANT, NOT_RELEVANT or AMBIGUOUS,
// where AMBIGUOUS means "some signal, not enough confidence" and routes to
// blended retrieval.
package grader

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/history"
)

const systemPrompt = `You are a relevance grader for a retrieval system.
Given a user question, the conversation so far and a set of retrieved documents, decide whether the documents answer the question.
Reply with exactly one word:
RELEVANT if the documents contain the answer.
NOT_RELEVANT if the documents are unrelated to the question.
AMBIGUOUS if the documents are partially relevant but insufficient on their own.`

// Invoker is the single-call slice of the model the grader needs.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Grader is the LLM-backed implementation of chat.Grader.
type Grader struct {
	llm Invoker
}

func New(llm Invoker) *Grader {
	return &Grader{llm: llm}
}

// Grade makes exactly one model call and parses the reply into a verdict. A
// reply outside the three recognized values surfaces as
// chat.ErrMalformedVerdict; it is never retried into shape here because a
// misconfigured grader must be visible, not papered over.
func (g *Grader) Grade(ctx context.Context, question string, docs []chat.Document, msgs []history.Message) (chat.Verdict, error) {
	reply, err := g.llm.Invoke(ctx, buildPrompt(question, docs, msgs))
	if err != nil {
		return 0, fmt.Errorf("grader model call failed: %w", err)
	}

	verdict, err := chat.ParseVerdict(reply)
	if err != nil {
		return 0, err
	}
	return verdict, nil
}

func buildPrompt(question string, docs []chat.Document, msgs []history.Message) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")

	if len(msgs) > 0 {
		sb.WriteString("Chat history:\n")
		for _, m := range msgs {
			sb.WriteString(fmt.Sprintf("%s: %s\n", m.Role, m.Content))
		}
		sb.WriteString("\n")
	}

	if len(docs) == 0 {
		sb.WriteString("Documents: (none retrieved)\n\n")
	} else {
		sb.WriteString("Documents:\n")
		for i, d := range docs {
			sb.WriteString(fmt.Sprintf("ID: %d\nSource: %s\nContent: %s\n\n", i, d.Source, d.Content))
		}
	}

	sb.WriteString(fmt.Sprintf("Question: %s\n\nVerdict:", question))
	return sb.String()
}
