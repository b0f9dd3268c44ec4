package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"dreamreel/internal/domain"
	"dreamreel/internal/pipeline"
)

type fakeDreamService struct {
	current    *domain.Dream
	currentErr error
	createErr  error
	updateErr  error
	deleteErr  error

	gotTitle string
	gotID    string
	gotPhoto *pipeline.Photo
}

func (f *fakeDreamService) Current(ctx context.Context) (*domain.Dream, error) {
	return f.current, f.currentErr
}

func (f *fakeDreamService) Create(ctx context.Context, title string, photo *pipeline.Photo) (*domain.Dream, error) {
	f.gotTitle = title
	f.gotPhoto = photo
	if f.createErr != nil {
		return nil, f.createErr
	}
	status := domain.VideoStatusGenerating
	return &domain.Dream{ID: "dream-1", Title: title, Status: &status, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (f *fakeDreamService) Update(ctx context.Context, id, title string, photo *pipeline.Photo) (*domain.Dream, error) {
	f.gotID = id
	f.gotTitle = title
	f.gotPhoto = photo
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	status := domain.VideoStatusGenerating
	return &domain.Dream{ID: id, Title: title, Status: &status, CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (f *fakeDreamService) Delete(ctx context.Context, id string) error {
	f.gotID = id
	return f.deleteErr
}

func newTestRouter(svc DreamService) http.Handler {
	app := NewApp(zerolog.New(io.Discard), svc)
	r := chi.NewRouter()
	r.Get("/v1/dreams/current", app.DreamCurrent)
	r.Post("/v1/dreams", app.DreamCreate)
	r.Put("/v1/dreams/{id}", app.DreamUpdate)
	r.Delete("/v1/dreams/{id}", app.DreamDelete)
	return r
}

func TestDreamCurrentEmpty(t *testing.T) {
	router := newTestRouter(&fakeDreamService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dreams/current", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
}

func TestDreamCurrentReturnsLatest(t *testing.T) {
	status := domain.VideoStatusCompleted
	videoURL := "https://videos.test/dream-9.mp4"
	svc := &fakeDreamService{current: &domain.Dream{
		ID:       "dream-9",
		Title:    "Ocean sunset",
		VideoURL: &videoURL,
		Status:   &status,
	}}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dreams/current", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["id"] != "dream-9" || body["video_status"] != "completed" || body["video_url"] != videoURL {
		t.Fatalf("unexpected body: %v", body)
	}
	if _, present := body["error_message"]; present {
		t.Fatal("error_message should be omitted when absent")
	}
}

func TestDreamCreateJSON(t *testing.T) {
	svc := &fakeDreamService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/dreams", strings.NewReader(`{"title":"Fly over mountains"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body)
	}
	if svc.gotTitle != "Fly over mountains" {
		t.Fatalf("service received title %q", svc.gotTitle)
	}
	if svc.gotPhoto != nil {
		t.Fatal("JSON submissions carry no photo")
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["video_status"] != "generating" {
		t.Fatalf("video_status = %v, want generating", body["video_status"])
	}
}

func TestDreamCreateMultipartWithPhoto(t *testing.T) {
	svc := &fakeDreamService{}
	router := newTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", "A walk in the rain"); err != nil {
		t.Fatalf("writing title field: %v", err)
	}
	part, err := mw.CreateFormFile("photo", "me.jpg")
	if err != nil {
		t.Fatalf("creating file part: %v", err)
	}
	if _, err := part.Write([]byte("jpeg-bytes")); err != nil {
		t.Fatalf("writing file part: %v", err)
	}
	mw.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/dreams", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body)
	}
	if svc.gotTitle != "A walk in the rain" {
		t.Fatalf("service received title %q", svc.gotTitle)
	}
	if svc.gotPhoto == nil {
		t.Fatal("photo was not forwarded to the service")
	}
	if svc.gotPhoto.Name != "me.jpg" || string(svc.gotPhoto.Data) != "jpeg-bytes" {
		t.Fatalf("photo = %q/%q", svc.gotPhoto.Name, svc.gotPhoto.Data)
	}
}

func TestDreamCreateMultipartWithoutPhoto(t *testing.T) {
	svc := &fakeDreamService{}
	router := newTestRouter(svc)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("title", "No photo"); err != nil {
		t.Fatalf("writing title field: %v", err)
	}
	mw.Close()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/dreams", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusAccepted, rec.Body)
	}
	if svc.gotPhoto != nil {
		t.Fatal("no photo should be forwarded when the part is absent")
	}
}

func TestDreamCreateMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		status   int
		code     string
	}{
		{"invalid title", fmt.Errorf("%w: title required", domain.ErrInvalidTitle), http.StatusBadRequest, "invalid_title"},
		{"storage failure", fmt.Errorf("%w: upload: bucket gone", domain.ErrStorageFailure), http.StatusBadGateway, "storage_failure"},
		{"unexpected", fmt.Errorf("pgx: broken pipe"), http.StatusInternalServerError, "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeDreamService{createErr: tt.err})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/dreams", strings.NewReader(`{"title":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body["error"] != tt.code {
				t.Fatalf("error = %q, want %q", body["error"], tt.code)
			}
		})
	}
}

func TestDreamCreateRejectsMalformedJSON(t *testing.T) {
	router := newTestRouter(&fakeDreamService{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/dreams", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDreamUpdateUnknownID(t *testing.T) {
	svc := &fakeDreamService{updateErr: domain.ErrNotFound}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/v1/dreams/nope", strings.NewReader(`{"title":"Edited"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if svc.gotID != "nope" {
		t.Fatalf("service received id %q", svc.gotID)
	}
}

func TestDreamDelete(t *testing.T) {
	svc := &fakeDreamService{}
	router := newTestRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/dreams/dream-1", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if svc.gotID != "dream-1" {
		t.Fatalf("service received id %q", svc.gotID)
	}

	router = newTestRouter(&fakeDreamService{deleteErr: domain.ErrNotFound})
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/dreams/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
