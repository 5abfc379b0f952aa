package chat

import (
	"context"
	"iter"

	"github.com/mikeboe/workplace-chat/pkg/history"
)

// TemplateID names an answer prompt template.
type TemplateID string

const (
	// TemplateRAG grounds the answer in indexed documents only.
	TemplateRAG TemplateID = "rag"
	// TemplateRAGWeb grounds the answer in web results, alone or blended
	// with indexed documents.
	TemplateRAGWeb TemplateID = "rag_web"
)

// HistoryStore reads and appends the ordered chat messages of a session.
// Load returns an empty slice, not an error, for an unknown session.
// AppendTurn persists the question/answer pair atomically: a turn never
// leaves a user message behind without its assistant message.
type HistoryStore interface {
	Load(ctx context.Context, sessionID string) ([]history.Message, error)
	AppendTurn(ctx context.Context, sessionID, question, answer string) error
}

// Retriever performs similarity search over the document index.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Document, error)
}

// WebSearcher fetches fresh results from a live web-search provider.
type WebSearcher interface {
	Search(ctx context.Context, query string) ([]Document, error)
}

// Grader classifies whether the retrieved documents answer the question.
// A single synchronous call with no observable side effects.
type Grader interface {
	Grade(ctx context.Context, question string, docs []Document, msgs []history.Message) (Verdict, error)
}

// Model is the language-model collaborator: one-shot invocation for
// condensation, fragment streaming for answer generation.
type Model interface {
	Invoke(ctx context.Context, prompt string) (string, error)
	Stream(ctx context.Context, prompt string) iter.Seq2[string, error]
}

// Renderer binds question, documents and history into prompt strings.
type Renderer interface {
	Condense(question string, msgs []history.Message) (string, error)
	Answer(id TemplateID, question string, docs []Document, msgs []history.Message) (string, error)
}
