package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

func TestListImportLogs_NewestFirst(t *testing.T) {
	db := newTestDB(t)

	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := domain.BatchImportLog{
			ImportType: "sessions",
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			Status:     domain.ImportStatusSuccess,
		}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed log %d: %v", i, err)
		}
	}

	out, err := ListImportLogs(context.Background(), db, 0, 10)
	if err != nil {
		t.Fatalf("ListImportLogs: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(out))
	}
	if !out[0].StartedAt.After(out[1].StartedAt) || !out[1].StartedAt.After(out[2].StartedAt) {
		t.Fatalf("logs not ordered newest first: %+v", out)
	}
}

func TestGetImportLog(t *testing.T) {
	db := newTestDB(t)

	rec := domain.BatchImportLog{
		ImportType: "sessions",
		StartedAt:  time.Now().UTC(),
		Status:     domain.ImportStatusFailed,
	}
	if err := db.Create(&rec).Error; err != nil {
		t.Fatalf("seed log: %v", err)
	}

	got, err := GetImportLog(context.Background(), db, rec.ID)
	if err != nil {
		t.Fatalf("GetImportLog: %v", err)
	}
	if got.Status != domain.ImportStatusFailed {
		t.Fatalf("unexpected log: %+v", got)
	}

	if _, err := GetImportLog(context.Background(), db, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
