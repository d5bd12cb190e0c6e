package service_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

// mockInteractionRepo enforces the same at-most-one-open rule the partial
// unique index provides in Postgres.
type mockInteractionRepo struct {
	mu     sync.Mutex
	opens  map[int]bool
	clicks []int // link indices in insert order
}

func newMockInteractionRepo() *mockInteractionRepo {
	return &mockInteractionRepo{opens: map[int]bool{}}
}

func (m *mockInteractionRepo) InsertOpenIfAbsent(sentEmailID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opens[sentEmailID] = true
	return nil
}

func (m *mockInteractionRepo) InsertClick(sentEmailID, linkIndex int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clicks = append(m.clicks, linkIndex)
	return nil
}

func (m *mockInteractionRepo) openCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.opens)
}

func newTrackingFixture(t *testing.T) (*service.TrackingService, *mockInteractionRepo, uuid.UUID) {
	t.Helper()
	store := newMockSentEmailStore()
	token := uuid.New()
	err := store.CreateWithLinks(
		&model.SentEmail{CampaignID: 1, EmployeeID: 1, TrackingToken: token},
		[]string{"https://a.com", "https://b.com"},
		func() error { return nil },
	)
	if err != nil {
		t.Fatal(err)
	}

	interactions := newMockInteractionRepo()
	svc := &service.TrackingService{
		SentEmailRepo:   store,
		InteractionRepo: interactions,
		FallbackURL:     "https://fallback.example",
	}
	return svc, interactions, token
}

func TestRecordOpenIsIdempotent(t *testing.T) {
	svc, interactions, token := newTrackingFixture(t)

	if err := svc.RecordOpen(token.String()); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordOpen(token.String()); err != nil {
		t.Fatal(err)
	}

	if interactions.openCount() != 1 {
		t.Errorf("expected exactly one open, got %d", interactions.openCount())
	}
}

func TestRecordOpenUnknownTokenIsSilent(t *testing.T) {
	svc, interactions, _ := newTrackingFixture(t)

	if err := svc.RecordOpen(uuid.New().String()); err != nil {
		t.Fatalf("unknown token must be a no-op, got %v", err)
	}
	if err := svc.RecordOpen("not-a-uuid"); err != nil {
		t.Fatalf("malformed token must be a no-op, got %v", err)
	}
	if interactions.openCount() != 0 {
		t.Errorf("no opens should be recorded for unknown tokens")
	}
}

func TestRecordClickNeverDedupes(t *testing.T) {
	svc, interactions, token := newTrackingFixture(t)

	for i := 0; i < 2; i++ {
		if err := svc.RecordClick(token.String(), 0); err != nil {
			t.Fatal(err)
		}
	}

	if len(interactions.clicks) != 2 {
		t.Errorf("expected two click rows, got %d", len(interactions.clicks))
	}
}

func TestResolveClickRoundTrip(t *testing.T) {
	svc, _, token := newTrackingFixture(t)

	if got := svc.ResolveClick(token.String(), 0); got != "https://a.com" {
		t.Errorf("index 0 resolved to %s", got)
	}
	if got := svc.ResolveClick(token.String(), 1); got != "https://b.com" {
		t.Errorf("index 1 resolved to %s", got)
	}
}

func TestResolveClickFallsBack(t *testing.T) {
	svc, _, token := newTrackingFixture(t)

	if got := svc.ResolveClick(token.String(), 9); got != "https://fallback.example" {
		t.Errorf("unknown index must fall back, got %s", got)
	}
	if got := svc.ResolveClick(uuid.New().String(), 0); got != "https://fallback.example" {
		t.Errorf("unknown token must fall back, got %s", got)
	}
	if got := svc.ResolveClick("garbage", 0); got != "https://fallback.example" {
		t.Errorf("malformed token must fall back, got %s", got)
	}
}

// Recording and resolution are independent: a click on an unresolvable link
// index is still recorded against the message.
func TestRecordClickWithUnknownIndexStillRecords(t *testing.T) {
	svc, interactions, token := newTrackingFixture(t)

	if err := svc.RecordClick(token.String(), 9); err != nil {
		t.Fatal(err)
	}
	if len(interactions.clicks) != 1 || interactions.clicks[0] != 9 {
		t.Errorf("click with unknown index must still be recorded: %v", interactions.clicks)
	}
}
