package grader

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/history"
)

type fakeInvoker struct {
	reply   string
	err     error
	calls   int
	prompts []string
}

func (f *fakeInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    chat.Verdict
		wantErr bool
	}{
		{"relevant", "RELEVANT", chat.Relevant, false},
		{"not relevant", "NOT_RELEVANT", chat.NotRelevant, false},
		{"ambiguous with whitespace", " AMBIGUOUS\n", chat.Ambiguous, false},
		{"malformed", "the docs look fine", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeInvoker{reply: tt.reply}
			g := New(llm)

			got, err := g.Grade(context.Background(), "q", nil, nil)
			if tt.wantErr {
				if !errors.Is(err, chat.ErrMalformedVerdict) {
					t.Fatalf("error = %v, want ErrMalformedVerdict", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("verdict = %s, want %s", got, tt.want)
			}
			if llm.calls != 1 {
				t.Errorf("model calls = %d, want exactly 1", llm.calls)
			}
		})
	}
}

func TestGradePromptContents(t *testing.T) {
	llm := &fakeInvoker{reply: "RELEVANT"}
	g := New(llm)

	docs := []chat.Document{
		{Content: "refund policy text", Source: "hr/refunds"},
		{Content: "expense policy text", Source: "hr/expenses"},
	}
	msgs := []history.Message{
		{Role: history.RoleUser, Content: "earlier question"},
		{Role: history.RoleAssistant, Content: "earlier answer"},
	}

	if _, err := g.Grade(context.Background(), "What is the refund policy?", docs, msgs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := llm.prompts[0]
	for _, want := range []string{
		"What is the refund policy?",
		"refund policy text",
		"hr/expenses",
		"earlier question",
		"earlier answer",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestGradeNoDocuments(t *testing.T) {
	llm := &fakeInvoker{reply: "NOT_RELEVANT"}
	g := New(llm)

	if _, err := g.Grade(context.Background(), "q", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(llm.prompts[0], "(none retrieved)") {
		t.Error("prompt does not mark the empty document set")
	}
}

func TestGradeModelFailure(t *testing.T) {
	modelErr := errors.New("model unreachable")
	g := New(&fakeInvoker{err: modelErr})

	_, err := g.Grade(context.Background(), "q", nil, nil)
	if !errors.Is(err, modelErr) {
		t.Fatalf("error = %v, want the model error wrapped", err)
	}
	if errors.Is(err, chat.ErrMalformedVerdict) {
		t.Error("collaborator failure must stay distinct from a malformed verdict")
	}
}
