package chat

// Routing status annotations, emitted to the output stream before any
// web-search latency is incurred.
const (
	StatusIndex    = "answering from indexed knowledge"
	StatusWeb      = "answering from web search"
	StatusIndexWeb = "answering from indexed knowledge + web search"
)

// routeDecision is the router's output: which documents survive, which
// template renders the answer prompt, and the status line shown to the user.
type routeDecision struct {
	template      TemplateID
	status        string
	keepIndexDocs bool
	useWebSearch  bool
}

// route maps a relevance verdict to a retrieval strategy. It is exhaustive
// over the three verdicts; any other value is ErrMalformedVerdict because the
// router has no defined behavior for a fourth state and must not guess.
func route(verdict Verdict) (routeDecision, error) {
	switch verdict {
	case Relevant:
		return routeDecision{
			template:      TemplateRAG,
			status:        StatusIndex,
			keepIndexDocs: true,
			useWebSearch:  false,
		}, nil
	case NotRelevant:
		return routeDecision{
			template:      TemplateRAGWeb,
			status:        StatusWeb,
			keepIndexDocs: false,
			useWebSearch:  true,
		}, nil
	case Ambiguous:
		return routeDecision{
			template:      TemplateRAGWeb,
			status:        StatusIndexWeb,
			keepIndexDocs: true,
			useWebSearch:  true,
		}, nil
	}
	return routeDecision{}, ErrMalformedVerdict
}
