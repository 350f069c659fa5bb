package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

func TestCreateSession_And_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	d := seedDepartment(t, db, "sess")
	e := seedEmployee(t, db, "Anna", "Petrova", &d.ID)
	w := seedWorkstation(t, db, "ws-sess", d.ID)

	base := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		_, err := CreateSession(context.Background(), db, &domain.ScreenSession{
			EmployeeID:    e.ID,
			WorkstationID: w.ID,
			StartedAt:     start,
			EndedAt:       start.Add(30 * time.Minute),
			ActiveSeconds: 1500,
		})
		if err != nil {
			t.Fatalf("CreateSession %d: %v", i, err)
		}
	}

	out, err := ListSessions(context.Background(), db, 0, 10)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(out))
	}
	if !out[0].StartedAt.After(out[1].StartedAt) || !out[1].StartedAt.After(out[2].StartedAt) {
		t.Fatalf("sessions not ordered newest first: %+v", out)
	}
}

func TestCreateSession_DanglingEmployeeIsForeignKeyViolation(t *testing.T) {
	db := newTestDB(t)
	d := seedDepartment(t, db, "fk")
	w := seedWorkstation(t, db, "ws-fk", d.ID)

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	_, err := CreateSession(context.Background(), db, &domain.ScreenSession{
		EmployeeID:    9999,
		WorkstationID: w.ID,
		StartedAt:     start,
		EndedAt:       start.Add(time.Hour),
		ActiveSeconds: 600,
	})
	diag, ok := AsDiagnostic(err)
	if !ok || diag.ViolationKind() != ViolationForeignKey {
		t.Fatalf("expected foreign key violation, got ok=%v err=%v", ok, err)
	}
}

func TestDeleteSession(t *testing.T) {
	db := newTestDB(t)
	d := seedDepartment(t, db, "sdel")
	e := seedEmployee(t, db, "Del", "Session", &d.ID)
	w := seedWorkstation(t, db, "ws-sdel", d.ID)

	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	s, err := CreateSession(context.Background(), db, &domain.ScreenSession{
		EmployeeID:    e.ID,
		WorkstationID: w.ID,
		StartedAt:     start,
		EndedAt:       start.Add(time.Hour),
		ActiveSeconds: 600,
	})
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := DeleteSession(context.Background(), db, s.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := GetSession(context.Background(), db, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := DeleteSession(context.Background(), db, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
