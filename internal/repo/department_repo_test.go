package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

func TestCreateDepartment_SetsCreatedAt(t *testing.T) {
	db := newTestDB(t)

	start := time.Now().UTC().Add(-time.Minute)
	d, err := CreateDepartment(context.Background(), db, &domain.Department{
		Name: "Engineering", Code: "ENG", IsActive: true,
	})
	if err != nil {
		t.Fatalf("CreateDepartment: %v", err)
	}
	if d.ID == 0 || d.CreatedAt.Before(start) {
		t.Fatalf("unexpected fields: %+v", d)
	}
}

func TestCreateDepartment_DuplicateNameIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)

	if _, err := CreateDepartment(context.Background(), db, &domain.Department{Name: "Sales", Code: "S1"}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := CreateDepartment(context.Background(), db, &domain.Department{Name: "Sales", Code: "S2"})
	if err == nil {
		t.Fatalf("expected unique violation on duplicate name")
	}
	diag, ok := AsDiagnostic(err)
	if !ok || diag.ViolationKind() != ViolationUnique {
		t.Fatalf("expected ViolationUnique diagnostic, got ok=%v err=%v", ok, err)
	}
}

func TestListDepartments_PaginatesInIDOrder(t *testing.T) {
	db := newTestDB(t)

	for _, tag := range []string{"a", "b", "c"} {
		seedDepartment(t, db, tag)
	}

	page, err := ListDepartments(context.Background(), db, 1, 1)
	if err != nil {
		t.Fatalf("ListDepartments: %v", err)
	}
	if len(page) != 1 || page[0].Name != "Dept b" {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty, err := ListDepartments(context.Background(), db, 10, 5)
	if err != nil {
		t.Fatalf("ListDepartments past end: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %+v", empty)
	}
}

func TestGetDepartment_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := GetDepartment(context.Background(), db, 42)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateDepartment_ReplacesMutableFields(t *testing.T) {
	db := newTestDB(t)
	d := seedDepartment(t, db, "upd")

	desc := "renamed"
	got, err := UpdateDepartment(context.Background(), db, d.ID, &domain.Department{
		Name: "Renamed", Code: "RN", Description: &desc, IsActive: false,
	})
	if err != nil {
		t.Fatalf("UpdateDepartment: %v", err)
	}
	if got.Name != "Renamed" || got.Code != "RN" || got.IsActive || got.Description == nil || *got.Description != "renamed" {
		t.Fatalf("unexpected updated row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt must survive updates: %+v", got)
	}
}

func TestUpdateDepartment_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := UpdateDepartment(context.Background(), db, 42, &domain.Department{Name: "X", Code: "X"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteDepartment_CascadesAndClearsReferences(t *testing.T) {
	db := newTestDB(t)

	d := seedDepartment(t, db, "del")
	w := seedWorkstation(t, db, "ws-del", d.ID)
	e := seedEmployee(t, db, "Anna", "Petrova", &d.ID)

	if err := DeleteDepartment(context.Background(), db, d.ID); err != nil {
		t.Fatalf("DeleteDepartment: %v", err)
	}

	// Workstation is cascade-deleted with its department.
	if _, err := GetWorkstation(context.Background(), db, w.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected workstation cascade delete, got %v", err)
	}
	// Employee survives with a cleared department reference.
	got, err := GetEmployee(context.Background(), db, e.ID)
	if err != nil {
		t.Fatalf("GetEmployee after department delete: %v", err)
	}
	if got.DepartmentID != nil {
		t.Fatalf("expected department reference cleared, got %+v", got)
	}
}

func TestDeleteDepartment_Missing(t *testing.T) {
	db := newTestDB(t)

	if err := DeleteDepartment(context.Background(), db, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
