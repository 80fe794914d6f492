package chat

// EventType tags a StreamEvent variant.
type EventType string

const (
	EventPartial  EventType = "partial"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
)

// StreamEvent is one unit of the incremental response protocol. The same
// envelope is serialized onto SSE frames and websocket text messages.
type StreamEvent struct {
	Type         EventType `json:"type"`
	Content      string    `json:"content"`
	FullResponse string    `json:"full_response,omitempty"`
	Sources      []string  `json:"sources"`
	SessionID    string    `json:"session_id"`
	ResponseTime float64   `json:"response_time,omitempty"`
	Timestamp    string    `json:"timestamp,omitempty"`
}

// Result is the composed non-streaming answer for one turn.
type Result struct {
	Response     string   `json:"response"`
	Sources      []string `json:"sources"`
	SessionID    string   `json:"session_id"`
	Timestamp    string   `json:"timestamp"`
	ResponseTime float64  `json:"response_time"`
}
