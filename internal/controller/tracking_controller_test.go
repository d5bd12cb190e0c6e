package controller_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/unclebandit/phishsim-backend/internal/controller"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

// --- Mock repositories ---

type mockSentEmailRepo struct {
	token uuid.UUID
	urls  []string
}

func (m *mockSentEmailRepo) CreateWithLinks(msg *model.SentEmail, linkURLs []string, deliver func() error) error {
	return nil
}

func (m *mockSentEmailRepo) GetByToken(token uuid.UUID) (*model.SentEmail, error) {
	if token == m.token {
		return &model.SentEmail{ID: 1, TrackingToken: token}, nil
	}
	return nil, nil
}

func (m *mockSentEmailRepo) GetTrackedLinkURL(token uuid.UUID, linkIndex int) (string, error) {
	if token == m.token && linkIndex >= 0 && linkIndex < len(m.urls) {
		return m.urls[linkIndex], nil
	}
	return "", nil
}

type countingInteractionRepo struct {
	mu     sync.Mutex
	opens  int
	clicks int
}

func (m *countingInteractionRepo) InsertOpenIfAbsent(sentEmailID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens++
	return nil
}

func (m *countingInteractionRepo) InsertClick(sentEmailID, linkIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks++
	return nil
}

func (m *countingInteractionRepo) counts() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opens, m.clicks
}

func newTrackingRouter(token uuid.UUID) (*chi.Mux, *countingInteractionRepo) {
	interactions := &countingInteractionRepo{}
	tracking := &service.TrackingService{
		SentEmailRepo:   &mockSentEmailRepo{token: token, urls: []string{"https://a.com", "https://b.com"}},
		InteractionRepo: interactions,
		FallbackURL:     "https://fallback.example",
	}

	q := queue.NewInMemoryQueue()
	queue.StartTrackingSubscribers(q, tracking)

	ctrl := &controller.TrackingController{Tracking: tracking, Queue: q}

	r := chi.NewRouter()
	r.Get("/track/{token}", ctrl.TrackPixel)
	r.Get("/click/{token}/{index}", ctrl.TrackClick)
	return r, interactions
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition never met")
}

// --- Tests ---

func TestTrackPixelAlwaysServesImage(t *testing.T) {
	token := uuid.New()
	r, _ := newTrackingRouter(token)

	for _, raw := range []string{token.String(), uuid.New().String(), "garbage"} {
		req := httptest.NewRequest("GET", "/track/"+raw, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("token %q: expected 200, got %d", raw, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("token %q: expected image/png, got %s", raw, ct)
		}
		if w.Body.Len() == 0 {
			t.Errorf("token %q: empty pixel body", raw)
		}
	}
}

func TestTrackPixelRecordsOpenInBackground(t *testing.T) {
	token := uuid.New()
	r, interactions := newTrackingRouter(token)

	req := httptest.NewRequest("GET", "/track/"+token.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	waitFor(t, func() bool {
		opens, _ := interactions.counts()
		return opens == 1
	})
}

func TestTrackClickRedirectsToOriginalURL(t *testing.T) {
	token := uuid.New()
	r, interactions := newTrackingRouter(token)

	req := httptest.NewRequest("GET", "/click/"+token.String()+"/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "https://b.com" {
		t.Errorf("expected redirect to https://b.com, got %s", loc)
	}

	waitFor(t, func() bool {
		_, clicks := interactions.counts()
		return clicks == 1
	})
}

func TestTrackClickUnresolvedFallsBack(t *testing.T) {
	token := uuid.New()
	r, _ := newTrackingRouter(token)

	cases := []string{
		"/click/" + uuid.New().String() + "/0", // unknown token
		"/click/" + token.String() + "/7",      // unknown index
		"/click/not-a-uuid/0",                  // malformed token
	}
	for _, path := range cases {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		resp := w.Result()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("%s: expected 303, got %d", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "https://fallback.example" {
			t.Errorf("%s: expected fallback redirect, got %s", path, loc)
		}
	}
}
