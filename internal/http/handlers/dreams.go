package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"dreamreel/internal/domain"
	"dreamreel/internal/pipeline"
)

// Photo uploads are capped well above typical phone camera sizes.
const maxUploadBytes = 10 << 20

type dreamResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	VideoURL     *string   `json:"video_url,omitempty"`
	VideoPrompt  string    `json:"video_prompt,omitempty"`
	VideoStatus  *string   `json:"video_status,omitempty"`
	ErrorMessage *string   `json:"error_message,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func dreamPayload(d *domain.Dream) dreamResponse {
	resp := dreamResponse{
		ID:           d.ID,
		Title:        d.Title,
		PhotoURL:     d.PhotoURL,
		VideoURL:     d.VideoURL,
		VideoPrompt:  d.VideoPrompt,
		ErrorMessage: d.ErrorMessage,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Status != nil {
		s := string(*d.Status)
		resp.VideoStatus = &s
	}
	return resp
}

// DreamCurrent returns the most recently created dream, or 204 when none
// exists yet.
func (a *App) DreamCurrent(w http.ResponseWriter, r *http.Request) {
	dream, err := a.Dreams.Current(r.Context())
	if err != nil {
		a.serviceError(w, err)
		return
	}
	if dream == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.json(w, http.StatusOK, dreamPayload(dream))
}

// DreamCreate accepts a dream submission and returns 202 immediately; the
// video is generated out of band and observed by re-fetching.
func (a *App) DreamCreate(w http.ResponseWriter, r *http.Request) {
	title, photo, err := parseDreamForm(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	dream, err := a.Dreams.Create(r.Context(), title, photo)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, dreamPayload(dream))
}

// DreamUpdate edits an existing dream and re-triggers generation.
func (a *App) DreamUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	title, photo, err := parseDreamForm(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	dream, err := a.Dreams.Update(r.Context(), id, title, photo)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusAccepted, dreamPayload(dream))
}

// DreamDelete removes a dream record.
func (a *App) DreamDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	if err := a.Dreams.Delete(r.Context(), id); err != nil {
		a.serviceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseDreamForm reads a submission either as multipart form data (title plus
// optional photo file) or as a bare JSON body with a title.
func parseDreamForm(r *http.Request) (string, *pipeline.Photo, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return "", nil, errors.New("invalid multipart payload")
		}
		title := r.FormValue("title")
		file, header, err := r.FormFile("photo")
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				return title, nil, nil
			}
			return "", nil, errors.New("invalid photo upload")
		}
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			return "", nil, errors.New("failed to read photo upload")
		}
		if len(data) > maxUploadBytes {
			return "", nil, errors.New("photo exceeds upload limit")
		}
		return title, &pipeline.Photo{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}, nil
	}

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", nil, errors.New("invalid payload")
	}
	return body.Title, nil, nil
}
