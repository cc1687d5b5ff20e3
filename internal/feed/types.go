package feed

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected  = errors.New("not connected")
	ErrAlreadyClosed = errors.New("already closed")
)

// RecordEvent is one live record pushed by the gateway.
type RecordEvent struct {
	StreamID   string    // From the wire message
	Date       string    // ISO-8601 date
	Value      float64   // Record value
	ReceivedAt time.Time // Local timestamp when the message was read
}

// subscribeCommand asks the gateway to push records for the given streams.
type subscribeCommand struct {
	Cmd       string   `json:"cmd"`
	StreamIDs []string `json:"stream_ids"`
}

// wireRecord is the gateway's live record message.
type wireRecord struct {
	StreamID string  `json:"stream_id"`
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
}

// Config holds feed client settings.
type Config struct {
	URL          string        // Websocket endpoint
	Token        string        // Bearer token, same as the REST gateway
	ReadTimeout  time.Duration // Max silence before the connection is stale
	WriteTimeout time.Duration // Deadline for outgoing frames
	BufferSize   int           // Capacity of the records channel
}

// DefaultConfig returns sensible defaults for the given endpoint.
func DefaultConfig(url, token string) Config {
	return Config{
		URL:          url,
		Token:        token,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Second,
		BufferSize:   1000,
	}
}
