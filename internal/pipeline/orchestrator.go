package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"dreamreel/internal/domain"
	"dreamreel/internal/infra"
	"dreamreel/internal/providers/video"
)

// Photo is an optional reference image submitted with a dream.
type Photo struct {
	Name        string
	ContentType string
	Data        []byte
}

// Enricher turns a raw dream description into a generation prompt.
type Enricher interface {
	Enrich(title string) string
}

// Options configures the orchestrator.
type Options struct {
	Repo              domain.DreamRepository
	Blobs             domain.BlobStore
	Enricher          Enricher
	Generator         video.Generator
	Logger            infra.Logger
	Workers           int
	GenerationTimeout time.Duration
}

// Orchestrator owns the dream lifecycle: creation, enrichment, launching
// generation as a detached background task, and reconciling the outcome back
// into the record store. Creating and updating calls return as soon as the
// record is persisted in the generating state; the terminal status is written
// only by the background task.
type Orchestrator struct {
	repo      domain.DreamRepository
	blobs     domain.BlobStore
	enricher  Enricher
	generator video.Generator
	logger    infra.Logger
	timeout   time.Duration
	dispatch  *dispatcher
}

// New constructs the orchestrator and starts its background workers.
func New(opts Options) *Orchestrator {
	o := &Orchestrator{
		repo:      opts.Repo,
		blobs:     opts.Blobs,
		enricher:  opts.Enricher,
		generator: opts.Generator,
		logger:    opts.Logger,
		timeout:   opts.GenerationTimeout,
	}
	o.dispatch = newDispatcher(opts.Workers, o.runGeneration)
	return o
}

// Current returns the most recently created dream, or nil when none exists.
func (o *Orchestrator) Current(ctx context.Context) (*domain.Dream, error) {
	return o.repo.FindLatest(ctx)
}

// Create validates and persists a new dream in the generating state, then
// triggers a detached generation attempt. The returned record does not wait
// for that attempt.
func (o *Orchestrator) Create(ctx context.Context, title string, photo *Photo) (*domain.Dream, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidTitle)
	}

	photoURL, err := o.uploadPhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	prompt := o.enricher.Enrich(title)
	dream, err := o.repo.Create(ctx, domain.NewDream{
		Title:       title,
		PhotoURL:    photoURL,
		VideoPrompt: prompt,
		Status:      domain.VideoStatusGenerating,
	})
	if err != nil {
		return nil, fmt.Errorf("create dream: %w", err)
	}

	o.trigger(dream, prompt)
	return dream, nil
}

// Update applies an edit to an existing dream and re-triggers generation.
// The previous video URL is preserved until a new attempt succeeds; any stale
// error message is cleared immediately.
func (o *Orchestrator) Update(ctx context.Context, id, title string, photo *Photo) (*domain.Dream, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidTitle)
	}

	photoURL, err := o.uploadPhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	prompt := o.enricher.Enrich(title)
	status := domain.VideoStatusGenerating
	dream, err := o.repo.UpdateByID(ctx, id, domain.DreamUpdate{
		Title:       &title,
		PhotoURL:    photoURL,
		VideoPrompt: &prompt,
		Status:      &status,
		ClearError:  true,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update dream: %w", err)
	}

	o.trigger(dream, prompt)
	return dream, nil
}

// Delete removes a dream record. In-flight generation attempts for it are not
// cancelled; their terminal write will simply find no row.
func (o *Orchestrator) Delete(ctx context.Context, id string) error {
	return o.repo.DeleteByID(ctx, id)
}

// Drain waits for all in-flight generation attempts, for graceful shutdown.
func (o *Orchestrator) Drain(ctx context.Context) error {
	return o.dispatch.drain(ctx)
}

// Close stops accepting new generation tasks.
func (o *Orchestrator) Close() {
	o.dispatch.close()
}

func (o *Orchestrator) uploadPhoto(ctx context.Context, photo *Photo) (*string, error) {
	if photo == nil || len(photo.Data) == 0 {
		return nil, nil
	}
	contentType := photo.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := photoKey(photo.Name)
	url, err := o.blobs.Upload(ctx, key, photo.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: upload photo: %v", domain.ErrStorageFailure, err)
	}
	return &url, nil
}

// trigger hands the generation attempt to the background workers. The dream
// is already persisted in the generating state at this point, so an observer
// re-reading the record before the attempt finishes always sees generating.
func (o *Orchestrator) trigger(dream *domain.Dream, prompt string) {
	t := task{dreamID: dream.ID, prompt: prompt}
	if dream.PhotoURL != nil {
		t.photoURL = *dream.PhotoURL
	}
	o.dispatch.enqueue(t)
}

// runGeneration executes one detached generation attempt. It never returns an
// error to a caller: a failed attempt is absorbed into the record as the
// failed status plus a human-readable message. Between two racing attempts on
// one id, whichever terminal write lands last wins.
func (o *Orchestrator) runGeneration(t task) {
	ctx := context.Background()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	asset, err := o.generator.Generate(ctx, video.GenerateRequest{
		Prompt:    t.prompt,
		PhotoURL:  t.photoURL,
		RequestID: t.dreamID,
	})
	if err != nil {
		o.recordFailure(t.dreamID, fmt.Errorf("%w: %v", domain.ErrGenerationFailure, err))
		return
	}

	status := domain.VideoStatusCompleted
	if _, err := o.repo.UpdateByID(context.Background(), t.dreamID, domain.DreamUpdate{
		VideoURL:   &asset.URL,
		Status:     &status,
		ClearError: true,
	}); err != nil {
		o.logger.Error().Err(err).Str("dream_id", t.dreamID).Msg("pipeline: record completed status failed")
		return
	}
	o.logger.Info().Str("dream_id", t.dreamID).Str("video_url", asset.URL).Msg("pipeline: generation completed")
}

func (o *Orchestrator) recordFailure(dreamID string, genErr error) {
	o.logger.Error().Err(genErr).Str("dream_id", dreamID).Msg("pipeline: generation failed")
	status := domain.VideoStatusFailed
	message := fmt.Sprintf("Video generation failed: %v", genErr)
	if _, err := o.repo.UpdateByID(context.Background(), dreamID, domain.DreamUpdate{
		Status:       &status,
		ErrorMessage: &message,
	}); err != nil {
		o.logger.Error().Err(err).Str("dream_id", dreamID).Msg("pipeline: record failed status failed")
	}
}

func photoKey(name string) string {
	ext := strings.ToLower(path.Ext(name))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
	default:
		ext = ".jpg"
	}
	return fmt.Sprintf("dream-photos/%s%s", uuid.NewString(), ext)
}
