package chat

// Wire tags and markers shared with the transport layer. The tags follow the
// SSE protocol the frontend consumes: a session tag first, then zero or more
// status and fragment lines, then exactly one done tag.
const (
	SessionIDTag = "[SESSION_ID]"
	DoneTag      = "[DONE]"

	// ParagraphMark replaces raw newlines inside answer fragments so line
	// breaks inside a fragment cannot collide with the event framing.
	ParagraphMark = "<p>"
)

// Document is one retrieved piece of context, whether it came from the
// document index or from web search. Both sources map into this one shape so
// the blended branch unions a homogeneous list.
type Document struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score,omitempty"`
}

// EventType discriminates the events of a turn's output stream.
type EventType string

const (
	EventSession  EventType = "session"
	EventStatus   EventType = "status"
	EventFragment EventType = "fragment"
	EventDone     EventType = "done"
	EventError    EventType = "error"
)

// Event is a single element of the turn's output stream.
type Event struct {
	Type    EventType `json:"type"`
	Payload string    `json:"payload"`
}
