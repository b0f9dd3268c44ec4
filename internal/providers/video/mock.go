package video

import (
	"context"
	"time"
)

const mockVideoURL = "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"

// Mock simulates a slow provider: it waits a fixed delay, then returns a
// sample video. Useful for local development and as the reference behavior
// when no real provider is configured.
type Mock struct {
	delay time.Duration
}

// NewMock creates a mock generator with the given artificial latency.
func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay}
}

func (m *Mock) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	select {
	case <-time.After(m.delay):
		return &Asset{
			URL:    mockVideoURL,
			Format: "video/mp4",
			Length: 20,
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var _ Generator = (*Mock)(nil)
