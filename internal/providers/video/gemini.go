package video

import (
	"context"

	"dreamreel/internal/providers/genai"
)

// GeminiGenerator adapts the Gemini client to the Generator contract.
type GeminiGenerator struct {
	client *genai.Client
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	asset, err := g.client.GenerateVideo(ctx, genai.VideoRequest{
		Prompt:    req.Prompt,
		PhotoURL:  req.PhotoURL,
		RequestID: req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	return &Asset{
		URL:    asset.URL,
		Format: asset.Format,
		Length: asset.Length,
	}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
