package engagement

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blackgoldstudios/animax/internal/auth"
	"github.com/blackgoldstudios/animax/internal/signals"
)

func newTestMux(t *testing.T) (*http.ServeMux, signals.Store) {
	t.Helper()
	t.Setenv("ANIMAX_JWT_SECRET", "test-secret")

	store := signals.NewMemoryStore()
	mux := http.NewServeMux()
	New(store).RegisterRoutes(mux)
	return mux, store
}

func sessionCookie(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateSessionToken(userID, userID+"@example.com", "Viewer", "basic", nil, true)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookie, Value: token}
}

func TestToggleRequiresAuth(t *testing.T) {
	mux, _ := newTestMux(t)

	req := httptest.NewRequest(http.MethodPost, "/signals/liked/toggle",
		strings.NewReader(`{"content_id":"m-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestToggleOnThenOff(t *testing.T) {
	mux, _ := newTestMux(t)
	cookie := sessionCookie(t, "viewer-1")

	toggle := func() map[string]interface{} {
		req := httptest.NewRequest(http.MethodPost, "/signals/liked/toggle",
			strings.NewReader(`{"content_id":"m-1"}`))
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body map[string]interface{}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		return body
	}

	if body := toggle(); body["present"] != true {
		t.Fatalf("first toggle should add: %v", body)
	}
	if body := toggle(); body["present"] != false {
		t.Fatalf("second toggle should remove: %v", body)
	}
}

func TestToggleRejectsBadInput(t *testing.T) {
	mux, _ := newTestMux(t)
	cookie := sessionCookie(t, "viewer-1")

	cases := []struct {
		name string
		path string
		body string
		want int
	}{
		{"unknown namespace", "/signals/favorites/toggle", `{"content_id":"m-1"}`, http.StatusBadRequest},
		{"missing content id", "/signals/liked/toggle", `{}`, http.StatusBadRequest},
		{"malformed json", "/signals/liked/toggle", `{`, http.StatusBadRequest},
		{"unknown operation", "/signals/liked/clear", `{"content_id":"m-1"}`, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(tc.body))
			req.AddCookie(cookie)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSnapshotReturnsAllSets(t *testing.T) {
	mux, store := newTestMux(t)
	cookie := sessionCookie(t, "viewer-2")

	ctx := context.Background()
	if _, err := store.Toggle(ctx, "viewer-2", signals.NamespaceLiked, "m-1"); err != nil {
		t.Fatalf("seed liked: %v", err)
	}
	if _, err := store.Toggle(ctx, "viewer-2", signals.NamespaceMyList, "s-1"); err != nil {
		t.Fatalf("seed my-list: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/signals", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Liked   []string `json:"liked"`
		MyList  []string `json:"my_list"`
		Watched []string `json:"watched"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Liked) != 1 || body.Liked[0] != "m-1" {
		t.Fatalf("unexpected liked set: %v", body.Liked)
	}
	if len(body.MyList) != 1 || body.MyList[0] != "s-1" {
		t.Fatalf("unexpected my-list set: %v", body.MyList)
	}
	if len(body.Watched) != 0 {
		t.Fatalf("expected empty watched set, got %v", body.Watched)
	}
}
