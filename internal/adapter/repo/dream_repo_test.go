package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"dreamreel/internal/domain"
)

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, v := range r.values {
		if i >= len(dest) {
			break
		}
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case **string:
			if v == nil {
				*d = nil
			} else {
				s := v.(string)
				*d = &s
			}
		case *time.Time:
			*d = v.(time.Time)
		}
	}
	return nil
}

type fakeExecutor struct {
	row      fakeRow
	execTag  pgconn.CommandTag
	execErr  error
	gotQuery string
	gotArgs  []any
}

func (e *fakeExecutor) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	e.gotQuery = query
	e.gotArgs = args
	return e.execTag, e.execErr
}

func (e *fakeExecutor) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	e.gotQuery = query
	e.gotArgs = args
	return e.row
}

func (e *fakeExecutor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	e.gotQuery = query
	e.gotArgs = args
	return nil, errors.New("not used")
}

func dreamRowValues() []any {
	now := time.Unix(1700000000, 0)
	return []any{
		"11111111-2222-3333-4444-555555555555",
		"A walk on the beach",
		"https://blobs.test/me.jpg",
		nil,
		"Create a cinematic video",
		"generating",
		nil,
		now,
		now,
	}
}

func TestGetByIDScansRow(t *testing.T) {
	exec := &fakeExecutor{row: fakeRow{values: dreamRowValues()}}
	r := NewDreamRepository(exec)

	dream, err := r.GetByID(context.Background(), "11111111-2222-3333-4444-555555555555")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if dream.Title != "A walk on the beach" {
		t.Fatalf("Title = %q", dream.Title)
	}
	if dream.Status == nil || *dream.Status != domain.VideoStatusGenerating {
		t.Fatalf("Status = %v, want generating", dream.Status)
	}
	if dream.VideoURL != nil {
		t.Fatal("VideoURL should be nil")
	}
	if dream.PhotoURL == nil || *dream.PhotoURL != "https://blobs.test/me.jpg" {
		t.Fatalf("PhotoURL = %v", dream.PhotoURL)
	}
}

func TestGetByIDMapsNoRows(t *testing.T) {
	exec := &fakeExecutor{row: fakeRow{err: pgx.ErrNoRows}}
	r := NewDreamRepository(exec)

	_, err := r.GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID error = %v, want ErrNotFound", err)
	}
}

func TestUpdateByIDMapsNoRows(t *testing.T) {
	exec := &fakeExecutor{row: fakeRow{err: pgx.ErrNoRows}}
	r := NewDreamRepository(exec)

	status := domain.VideoStatusCompleted
	_, err := r.UpdateByID(context.Background(), "missing", domain.DreamUpdate{Status: &status})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("UpdateByID error = %v, want ErrNotFound", err)
	}
}

func TestFindLatestReturnsNilOnEmptyTable(t *testing.T) {
	exec := &fakeExecutor{row: fakeRow{err: pgx.ErrNoRows}}
	r := NewDreamRepository(exec)

	dream, err := r.FindLatest(context.Background())
	if err != nil {
		t.Fatalf("FindLatest returned error: %v", err)
	}
	if dream != nil {
		t.Fatalf("FindLatest = %+v, want nil", dream)
	}
}

func TestDeleteByIDChecksAffectedRows(t *testing.T) {
	exec := &fakeExecutor{execTag: pgconn.NewCommandTag("DELETE 0")}
	r := NewDreamRepository(exec)

	if err := r.DeleteByID(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("DeleteByID error = %v, want ErrNotFound", err)
	}

	exec.execTag = pgconn.NewCommandTag("DELETE 1")
	if err := r.DeleteByID(context.Background(), "present"); err != nil {
		t.Fatalf("DeleteByID returned error: %v", err)
	}
}

func TestUpdateByIDPassesClearErrorFlag(t *testing.T) {
	exec := &fakeExecutor{row: fakeRow{values: dreamRowValues()}}
	r := NewDreamRepository(exec)

	status := domain.VideoStatusGenerating
	title := "Edited"
	if _, err := r.UpdateByID(context.Background(), "id-1", domain.DreamUpdate{
		Title:      &title,
		Status:     &status,
		ClearError: true,
	}); err != nil {
		t.Fatalf("UpdateByID returned error: %v", err)
	}
	if len(exec.gotArgs) != 8 {
		t.Fatalf("got %d args, want 8", len(exec.gotArgs))
	}
	if clear, ok := exec.gotArgs[7].(bool); !ok || !clear {
		t.Fatalf("clear-error arg = %v, want true", exec.gotArgs[7])
	}
}
