package domain

import "time"

// VideoStatus enumerates dream video lifecycle states.
type VideoStatus string

const (
	VideoStatusPending    VideoStatus = "pending"
	VideoStatusGenerating VideoStatus = "generating"
	VideoStatusCompleted  VideoStatus = "completed"
	VideoStatusFailed     VideoStatus = "failed"
)

// Terminal reports whether no further automatic transition occurs without a
// new triggering call.
func (s VideoStatus) Terminal() bool {
	return s == VideoStatusCompleted || s == VideoStatusFailed
}

// Dream is the persisted record for one submitted dream and its generation
// outcome. Status is nil for legacy rows that never entered the pipeline,
// which observers treat as "no video yet".
type Dream struct {
	ID           string
	Title        string
	PhotoURL     *string
	VideoURL     *string
	VideoPrompt  string
	Status       *VideoStatus
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Generating reports whether a generation attempt is currently in flight.
func (d *Dream) Generating() bool {
	if d == nil || d.Status == nil {
		return false
	}
	return *d.Status == VideoStatusPending || *d.Status == VideoStatusGenerating
}
