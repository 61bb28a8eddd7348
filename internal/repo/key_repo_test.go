package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/mkarlsen/go-posts-backend/internal/domain"
)

func mustCreateKey(t *testing.T, db *gorm.DB, userID string) *domain.APIKey {
	t.Helper()
	k, err := CreateKey(context.Background(), db, userID)
	if err != nil {
		t.Fatalf("CreateKey: %v", err)
	}
	return k
}

func TestCreateKey_PersistsAndSetsFields(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")

	start := time.Now().UTC().Add(-time.Minute)
	k := mustCreateKey(t, db, u.ID)
	if k.ID == "" || k.UserID != u.ID {
		t.Fatalf("unexpected APIKey fields: %+v", k)
	}
	if k.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", k.CreatedAt)
	}
}

func TestGetKey_OwnershipEnforced(t *testing.T) {
	db := newRepoDB(t)
	owner := mustCreateUser(t, db, "a@b.se", "ada")
	other := mustCreateUser(t, db, "c@d.se", "grace")
	k := mustCreateKey(t, db, owner.ID)

	got, err := GetKey(context.Background(), db, k.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetKey: %v", err)
	}
	if got.ID != k.ID {
		t.Fatalf("got %+v", got)
	}

	// Another user's key id looks exactly like a missing key.
	if _, err := GetKey(context.Background(), db, k.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign key id: err = %v, want ErrNotFound", err)
	}
}

func TestListKeysPage_OrderAndFilter(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")
	other := mustCreateUser(t, db, "c@d.se", "grace")
	mustCreateKey(t, db, other.ID)

	// Seed with known CreatedAt so order is deterministic.
	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		k := mustCreateKey(t, db, u.ID)
		db.Model(&domain.APIKey{}).Where("id = ?", k.ID).
			Update("created_at", t1.Add(time.Duration(i)*time.Hour))
		ids = append(ids, k.ID)
	}

	total, err := CountKeys(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("CountKeys: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3 (foreign keys must not count)", total)
	}

	page, err := ListKeysPage(context.Background(), db, u.ID, 0, 2)
	if err != nil {
		t.Fatalf("ListKeysPage: %v", err)
	}
	if len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[1] {
		t.Fatalf("page = %+v, want newest first", page)
	}

	rest, err := ListKeysPage(context.Background(), db, u.ID, 2, 2)
	if err != nil {
		t.Fatalf("ListKeysPage offset: %v", err)
	}
	if len(rest) != 1 || rest[0].ID != ids[0] {
		t.Fatalf("rest = %+v", rest)
	}
}

func TestGetKeyUser(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")
	k := mustCreateKey(t, db, u.ID)

	got, err := GetKeyUser(context.Background(), db, k.ID)
	if err != nil {
		t.Fatalf("GetKeyUser: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("resolved user: %+v", got)
	}

	if _, err := GetKeyUser(context.Background(), db, NewID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown key: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteKey_OwnershipAndNotFound(t *testing.T) {
	db := newRepoDB(t)
	owner := mustCreateUser(t, db, "a@b.se", "ada")
	other := mustCreateUser(t, db, "c@d.se", "grace")
	k := mustCreateKey(t, db, owner.ID)

	if err := DeleteKey(context.Background(), db, k.ID, other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete: err = %v, want ErrNotFound", err)
	}
	if err := DeleteKey(context.Background(), db, k.ID, owner.ID); err != nil {
		t.Fatalf("DeleteKey: %v", err)
	}
	if err := DeleteKey(context.Background(), db, k.ID, owner.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}
