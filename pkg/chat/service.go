package chat

import (
	"context"
	"iter"
	"log/slog"
)

// Service orchestrates one conversational turn: condensation against history,
// retrieval, relevance grading, routing, answer streaming and history
// persistence. All collaborators are injected so tests can substitute
// deterministic fakes.
type Service struct {
	history   HistoryStore
	retriever Retriever
	web       WebSearcher
	grader    Grader
	model     Model
	prompts   Renderer
	logger    *slog.Logger
}

func NewService(h HistoryStore, r Retriever, w WebSearcher, g Grader, m Model, p Renderer, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		history:   h,
		retriever: r,
		web:       w,
		grader:    g,
		model:     m,
		prompts:   p,
		logger:    logger,
	}
}

// Ask runs one turn and returns its output event stream. The sequence is
// finite, forward-only and consumed exactly once. It starts with a session
// event and, on success, ends with a done event; a stream that ends without
// a done event is the failure signal. The user and assistant messages are
// appended to history as one atomic turn, only after the model stream ran to
// completion; an aborted or failed turn leaves history untouched.
func (s *Service) Ask(ctx context.Context, sessionID, question string) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		if !yield(Event{Type: EventSession, Payload: sessionID}, nil) {
			return
		}
		s.logger.Debug("chat turn started", "session_id", sessionID)

		msgs, err := s.history.Load(ctx, sessionID)
		if err != nil {
			s.fail(yield, "failed to load history", err)
			return
		}

		// No history means the question already stands on its own; skip
		// the condensation model call entirely.
		condensed := question
		if len(msgs) > 0 {
			prompt, err := s.prompts.Condense(question, msgs)
			if err != nil {
				s.fail(yield, "failed to render condense prompt", err)
				return
			}
			condensed, err = s.model.Invoke(ctx, prompt)
			if err != nil {
				s.fail(yield, "condensation failed", err)
				return
			}
		}
		s.logger.Debug("condensed question", "question", question, "condensed", condensed)

		docs, err := s.retriever.Retrieve(ctx, condensed)
		if err != nil {
			s.fail(yield, "retrieval failed", err)
			return
		}

		verdict, err := s.grader.Grade(ctx, question, docs, msgs)
		if err != nil {
			s.fail(yield, "grading failed", err)
			return
		}
		s.logger.Debug("relevance verdict", "verdict", verdict.String(), "docs", len(docs))

		decision, err := route(verdict)
		if err != nil {
			s.fail(yield, "routing failed", err)
			return
		}

		// The status line goes out before web search so the caller sees
		// routing feedback ahead of the latency-heavy fetch.
		if !yield(Event{Type: EventStatus, Payload: decision.status}, nil) {
			return
		}

		if decision.useWebSearch {
			webDocs, err := s.web.Search(ctx, condensed)
			if err != nil {
				s.fail(yield, "web search failed", err)
				return
			}
			if decision.keepIndexDocs {
				docs = append(docs, webDocs...)
			} else {
				docs = webDocs
			}
		}

		prompt, err := s.prompts.Answer(decision.template, question, docs, msgs)
		if err != nil {
			s.fail(yield, "failed to render answer prompt", err)
			return
		}

		answer, completed, err := streamAnswer(s.model.Stream(ctx, prompt), yield)
		if err != nil {
			s.fail(yield, "answer stream failed", err)
			return
		}
		if !completed {
			s.logger.Debug("turn aborted mid-stream, skipping persistence", "session_id", sessionID)
			return
		}

		if err := s.history.AppendTurn(ctx, sessionID, question, answer); err != nil {
			s.fail(yield, "failed to persist turn", err)
			return
		}

		yield(Event{Type: EventDone, Payload: DoneTag}, nil)
		s.logger.Debug("chat turn completed", "session_id", sessionID, "answer_len", len(answer))
	}
}

func (s *Service) fail(yield func(Event, error) bool, msg string, err error) {
	s.logger.Error(msg, "error", err)
	yield(Event{Type: EventError, Payload: err.Error()}, err)
}
