package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Dominion-AI/suitsadmin/internal/models"
	"github.com/Dominion-AI/suitsadmin/internal/session"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *session.Store {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return session.NewStore(db)
}

func TestDoWithoutSession(t *testing.T) {
	store := setupTestStore(t)
	client := New("http://backend.invalid", store)

	var out any
	err := client.Get(context.Background(), "/sale/sales/", &out)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]string{"ok": "1"})
	}))
	defer srv.Close()

	store := setupTestStore(t)
	if _, err := store.Create("access-token", "refresh-token", "ayse"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	client := New(srv.URL, store)

	var out map[string]string
	if err := client.Get(context.Background(), "/sale/sales/", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotAuth != "Bearer access-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
}

func TestDoRefreshesOnceOn401(t *testing.T) {
	var refreshCalls, dataCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/token/refresh/":
			atomic.AddInt32(&refreshCalls, 1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh"] != "refresh-token" {
				t.Errorf("unexpected refresh token: %q", body["refresh"])
			}
			json.NewEncoder(w).Encode(map[string]string{"access": "fresh-access"})
		case "/sale/sales/":
			atomic.AddInt32(&dataCalls, 1)
			if r.Header.Get("Authorization") != "Bearer fresh-access" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "token geçersiz"})
				return
			}
			json.NewEncoder(w).Encode([]map[string]any{})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	store := setupTestStore(t)
	if _, err := store.Create("stale-access", "refresh-token", "ayse"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	client := New(srv.URL, store)

	var out []map[string]any
	if err := client.Get(context.Background(), "/sale/sales/", &out); err != nil {
		t.Fatalf("get after refresh: %v", err)
	}

	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("expected exactly 1 refresh, got %d", n)
	}
	if n := atomic.LoadInt32(&dataCalls); n != 2 {
		t.Fatalf("expected original + retried request, got %d", n)
	}

	sess, err := store.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if sess.AccessToken != "fresh-access" {
		t.Fatalf("expected stored access token to be updated, got %s", sess.AccessToken)
	}
}

func TestDoSecond401DestroysSession(t *testing.T) {
	var refreshCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/token/refresh/" {
			atomic.AddInt32(&refreshCalls, 1)
			json.NewEncoder(w).Encode(map[string]string{"access": "still-bad"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := setupTestStore(t)
	if _, err := store.Create("access", "refresh-token", "ayse"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	client := New(srv.URL, store)

	err := client.Get(context.Background(), "/sale/sales/", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if n := atomic.LoadInt32(&refreshCalls); n != 1 {
		t.Fatalf("expected single refresh attempt, got %d", n)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected session destroyed, got %v", err)
	}
}

func TestRefreshFailureDestroysSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/token/refresh/" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "refresh geçersiz"})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := setupTestStore(t)
	if _, err := store.Create("access", "dead-refresh", "ayse"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	client := New(srv.URL, store)

	err := client.Get(context.Background(), "/sale/sales/", nil)
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if _, err := store.Current(); !errors.Is(err, session.ErrNoSession) {
		t.Fatalf("expected session destroyed after failed refresh, got %v", err)
	}
}

func TestDecodeAPIErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "masa dolu"})
	}))
	defer srv.Close()

	store := setupTestStore(t)
	if _, err := store.Create("access", "refresh", "ayse"); err != nil {
		t.Fatalf("create session: %v", err)
	}
	client := New(srv.URL, store)

	err := client.Post(context.Background(), "/table/tables/", map[string]int{"table_number": 1}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "masa dolu" {
		t.Fatalf("unexpected APIError: %+v", apiErr)
	}
}

func TestPostPublicSkipsBearerAndRefresh(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			sawAuth = true
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "şifre hatalı"})
	}))
	defer srv.Close()

	// Oturum yokken de çalışmalı
	client := New(srv.URL, setupTestStore(t))

	err := client.PostPublic(context.Background(), "/users/token/", map[string]string{"username": "a", "password": "b"}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 passthrough, got %d", apiErr.StatusCode)
	}
	if sawAuth {
		t.Fatal("public request must not carry a bearer token")
	}
}
