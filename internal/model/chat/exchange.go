package chat

import "time"

// Exchange records one completed query/response turn in a session.
// Exchanges are immutable once appended.
type Exchange struct {
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"createdAt"`
}
