package models

import "time"

// IngestEvent describes the outcome of ingesting a single document.
// Events are published to Kafka when ingestion event publishing is enabled,
// so a separate consumer can track corpus coverage over time.
type IngestEvent struct {
	Source    string    `json:"source"`          // object key of the document
	Chunks    int       `json:"chunks"`          // chunks produced by the splitter
	Vectors   int       `json:"vectors"`         // vectors actually upserted
	Error     string    `json:"error,omitempty"` // non-empty when the document failed outright
	Timestamp time.Time `json:"timestamp"`
}
