package video

import "context"

// GenerateRequest carries everything the provider needs for one attempt.
type GenerateRequest struct {
	Prompt    string
	PhotoURL  string
	RequestID string
}

// Asset is the normalized result of a generation attempt.
type Asset struct {
	URL    string
	Format string
	Length int
}

// Generator invokes an external video-generation provider. Implementations
// hold no per-dream state and are safe to call concurrently for distinct
// dreams. Calls may take seconds to tens of seconds.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}
