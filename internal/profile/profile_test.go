package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"scartix/internal/auth"
	"scartix/internal/repo"
)

func TestGetAndUpdateProfile(t *testing.T) {
	t.Parallel()

	db, dialect, err := repo.Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "p.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := repo.New(db, dialect)
	id, err := store.CreateUser(context.Background(), repo.User{Login: "ana", Email: "ana@lab.org", Password: "h", Institution: "UPM"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	h := &ProfileHandler{Repo: store}
	ctx := auth.WithUser(context.Background(), id, "ana")

	req := httptest.NewRequest(http.MethodPatch, "/api/user/profile", strings.NewReader(`{"institution":" KTH ","description":"TPMS"}`))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req.WithContext(ctx))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile", nil).WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	var got repo.Profile
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Institution != "KTH" || got.Description != "TPMS" || got.Login != "ana" {
		t.Fatalf("unexpected profile %+v", got)
	}

	req = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/user/profile/999", nil).WithContext(ctx), map[string]string{"id": "999"})
	rec = httptest.NewRecorder()
	h.GetProfile(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing profile: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetProfile(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: %d", rec.Code)
	}
}

func TestGetOtherProfileHidesEmail(t *testing.T) {
	t.Parallel()

	db, dialect, err := repo.Open(context.Background(), "sqlite:"+filepath.Join(t.TempDir(), "p.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	store := repo.New(db, dialect)
	ana, err := store.CreateUser(context.Background(), repo.User{Login: "ana", Email: "ana@lab.org", Password: "h", Institution: "UPM"})
	if err != nil {
		t.Fatalf("create ana: %v", err)
	}
	bo, err := store.CreateUser(context.Background(), repo.User{Login: "bo", Email: "bo@lab.org", Password: "h"})
	if err != nil {
		t.Fatalf("create bo: %v", err)
	}
	h := &ProfileHandler{Repo: store}

	get := func(caller, target int) map[string]any {
		t.Helper()
		id := strconv.Itoa(target)
		req := httptest.NewRequest(http.MethodGet, "/api/user/profile/"+id, nil)
		req = mux.SetURLVars(req.WithContext(auth.WithUser(context.Background(), caller, "x")), map[string]string{"id": id})
		rec := httptest.NewRecorder()
		h.GetProfile(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("get %d as %d: %d", target, caller, rec.Code)
		}
		var out map[string]any
		if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out
	}

	other := get(bo, ana)
	if _, ok := other["email"]; ok {
		t.Fatalf("other user's profile exposes email: %v", other)
	}
	if other["login"] != "ana" || other["institution"] != "UPM" {
		t.Fatalf("public fields missing: %v", other)
	}
	if own := get(ana, ana); own["email"] != "ana@lab.org" {
		t.Fatalf("own profile email %v", own["email"])
	}
}
