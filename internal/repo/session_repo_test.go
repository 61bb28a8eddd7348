package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateSession_PersistsAndSetsFields(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")

	start := time.Now().UTC().Add(-time.Minute)
	s, err := CreateSession(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if s.ID == "" || s.UserID != u.ID {
		t.Fatalf("unexpected Session fields: %+v", s)
	}
	if s.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", s.CreatedAt)
	}
}

func TestGetSessionUser(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")
	s, err := CreateSession(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	got, err := GetSessionUser(context.Background(), db, s.ID)
	if err != nil {
		t.Fatalf("GetSessionUser: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Fatalf("resolved user: %+v", got)
	}

	if _, err := GetSessionUser(context.Background(), db, NewID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown session: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	db := newRepoDB(t)
	u := mustCreateUser(t, db, "a@b.se", "ada")
	s, err := CreateSession(context.Background(), db, u.ID)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := DeleteSession(context.Background(), db, s.ID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := DeleteSession(context.Background(), db, s.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: err = %v, want ErrNotFound", err)
	}
}
