package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"dreamreel/internal/domain"
	"dreamreel/internal/infra"
	"dreamreel/internal/pipeline"
)

// DreamService is the slice of the pipeline orchestrator the HTTP surface
// depends on.
type DreamService interface {
	Current(ctx context.Context) (*domain.Dream, error)
	Create(ctx context.Context, title string, photo *pipeline.Photo) (*domain.Dream, error)
	Update(ctx context.Context, id, title string, photo *pipeline.Photo) (*domain.Dream, error)
	Delete(ctx context.Context, id string) error
}

// App is the handler container wired by the router.
type App struct {
	Logger infra.Logger
	Dreams DreamService
}

func NewApp(logger infra.Logger, dreams DreamService) *App {
	return &App{Logger: logger, Dreams: dreams}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"error": code, "message": message})
}

// serviceError maps pipeline errors onto HTTP responses.
func (a *App) serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidTitle):
		a.error(w, http.StatusBadRequest, "invalid_title", "title must not be empty")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "dream not found")
	case errors.Is(err, domain.ErrStorageFailure):
		a.error(w, http.StatusBadGateway, "storage_failure", "photo upload failed")
	default:
		a.Logger.Error().Err(err).Msg("handlers: unexpected service error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
