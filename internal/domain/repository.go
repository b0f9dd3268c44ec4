package domain

import "context"

// NewDream carries the fields the orchestrator supplies at creation time.
// The store assigns the identifier and timestamps.
type NewDream struct {
	Title       string
	PhotoURL    *string
	VideoPrompt string
	Status      VideoStatus
}

// DreamUpdate describes a partial update of a dream record. Nil fields are
// left untouched. ClearError wipes error_message explicitly so a terminal
// success can erase a stale failure from an earlier attempt.
type DreamUpdate struct {
	Title        *string
	PhotoURL     *string
	VideoPrompt  *string
	VideoURL     *string
	Status       *VideoStatus
	ErrorMessage *string
	ClearError   bool
}

// DreamRepository defines persistence for dream records.
type DreamRepository interface {
	Create(ctx context.Context, dream NewDream) (*Dream, error)
	UpdateByID(ctx context.Context, id string, update DreamUpdate) (*Dream, error)
	GetByID(ctx context.Context, id string) (*Dream, error)
	FindLatest(ctx context.Context) (*Dream, error)
	DeleteByID(ctx context.Context, id string) error
}

// BlobStore uploads a binary under a key and returns a stable public URL.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
