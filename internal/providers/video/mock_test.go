package video

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMockGenerateReturnsSampleVideo(t *testing.T) {
	m := NewMock(time.Millisecond)

	asset, err := m.Generate(context.Background(), GenerateRequest{Prompt: "anything"})
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if asset.URL == "" {
		t.Fatal("asset URL should be populated")
	}
	if asset.Format != "video/mp4" {
		t.Fatalf("Format = %q, want video/mp4", asset.Format)
	}
}

func TestMockGenerateHonorsCancellation(t *testing.T) {
	m := NewMock(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, GenerateRequest{Prompt: "anything"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Generate error = %v, want context.Canceled", err)
	}
}
