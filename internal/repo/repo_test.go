package repo

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestRepo(t *testing.T) *SQLRepository {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, dialect, err := Open(context.Background(), "sqlite:"+path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db, dialect)
}

func TestParseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		dialect Dialect
		dsn     string
	}{
		{"", SQLite, DefaultSQLitePath},
		{"sqlite:/tmp/x.db", SQLite, "/tmp/x.db"},
		{"sqlite:///tmp/x.db", SQLite, "/tmp/x.db"},
		{"data/scartix.db", SQLite, "data/scartix.db"},
		{"postgres://u:p@localhost/db", Postgres, "postgres://u:p@localhost/db?sslmode=require"},
		{"postgres://u:p@localhost/db?connect_timeout=5", Postgres, "postgres://u:p@localhost/db?connect_timeout=5&sslmode=require"},
		{"user=postgres dbname=postgres sslmode=disable", Postgres, "user=postgres dbname=postgres sslmode=disable"},
		{"user=postgres dbname=postgres", Postgres, "user=postgres dbname=postgres sslmode=require"},
	}
	for _, tc := range cases {
		d, dsn := ParseURL(tc.in)
		if d != tc.dialect || dsn != tc.dsn {
			t.Fatalf("ParseURL(%q) = %s %q, want %s %q", tc.in, d, dsn, tc.dialect, tc.dsn)
		}
	}
}

func TestUsersRoundTrip(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	id, err := r.CreateUser(ctx, User{Login: "ana", Email: "ana@lab.org", Password: "hash", Institution: "UPM"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.CreateUser(ctx, User{Login: "ana", Email: "x@y", Password: "h"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	gotID, hash, err := r.GetBylogin(ctx, "ana")
	if err != nil || gotID != id || hash != "hash" {
		t.Fatalf("GetBylogin = %d %q %v", gotID, hash, err)
	}
	if missing, _, err := r.GetBylogin(ctx, "nobody"); err != nil || missing != 0 {
		t.Fatalf("unknown login = %d %v", missing, err)
	}

	if err := r.UpdateProfile(ctx, id, "TU Delft", "cartilage lab"); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, err := r.GetProfileByID(ctx, id)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.Login != "ana" || p.Institution != "TU Delft" || p.Description != "cartilage lab" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
	if _, err := r.GetProfileByID(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPredictionsNewestFirst(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()
	uid, err := r.CreateUser(ctx, User{Login: "bo", Email: "bo@lab.org", Password: "h"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	for _, p := range []int{30, 60, 90} {
		if _, err := r.SavePrediction(ctx, PredictionRecord{UserID: uid, Porosity: p, BestTissue: "skin", BestScore: 0.5}); err != nil {
			t.Fatalf("save %d: %v", p, err)
		}
	}
	recs, err := r.ListPredictions(ctx, uid, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].Porosity != 90 || recs[1].Porosity != 60 {
		t.Fatalf("unexpected order: %d, %d", recs[0].Porosity, recs[1].Porosity)
	}

	others, err := r.ListPredictions(ctx, uid+1, 0)
	if err != nil || len(others) != 0 {
		t.Fatalf("other user: %v %v", others, err)
	}
}

func TestTickets(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	ctx := context.Background()

	id, err := r.CreateTicket(ctx, Ticket{Reference: "ref-1", Name: "Ana", Email: "ana@lab.org", Subject: "Login", Message: "cannot log in"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	tk, err := r.GetTicket(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if tk.Status != TicketOpen || tk.Reference != "ref-1" {
		t.Fatalf("unexpected ticket %+v", tk)
	}

	if err := r.UpdateTicketStatus(ctx, id, TicketResolved); err != nil {
		t.Fatalf("update: %v", err)
	}
	tk, _ = r.GetTicket(ctx, id)
	if tk.Status != TicketResolved {
		t.Fatalf("status: got %s", tk.Status)
	}
	if err := r.UpdateTicketStatus(ctx, id+100, TicketRejected); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
