// internal/service/tracking_service.go
package service

import (
	"log"

	"github.com/google/uuid"

	"github.com/unclebandit/phishsim-backend/internal/repository"
)

// TrackingService records opens and clicks arriving from mail clients and
// browsers. Callers are untrusted and uncontrolled: unknown or malformed
// tokens are silent no-ops, never errors surfaced outward.
type TrackingService struct {
	SentEmailRepo   repository.SentEmailRepositoryInterface
	InteractionRepo repository.InteractionRepositoryInterface
	FallbackURL     string
}

// RecordOpen records at most one open per sent email. Repeated pixel loads,
// including concurrent ones from prefetching clients, land on the storage
// uniqueness constraint and are dropped there.
func (s *TrackingService) RecordOpen(token string) error {
	tok, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	msg, err := s.SentEmailRepo.GetByToken(tok)
	if err != nil {
		return err
	}
	if msg == nil {
		log.Println("tracking token not found:", token)
		return nil
	}
	return s.InteractionRepo.InsertOpenIfAbsent(msg.ID)
}

// RecordClick records every click; multiple clicks on the same link are
// meaningful signal and are never deduped.
func (s *TrackingService) RecordClick(token string, linkIndex int) error {
	tok, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	msg, err := s.SentEmailRepo.GetByToken(tok)
	if err != nil {
		return err
	}
	if msg == nil {
		log.Println("tracking token not found:", token)
		return nil
	}
	return s.InteractionRepo.InsertClick(msg.ID, linkIndex)
}

// ResolveClick maps (token, linkIndex) back to the original destination. The
// browser always has to land somewhere, so any failure resolves to the
// configured fallback.
func (s *TrackingService) ResolveClick(token string, linkIndex int) string {
	fallback := s.FallbackURL
	if fallback == "" {
		fallback = "/"
	}

	tok, err := uuid.Parse(token)
	if err != nil {
		return fallback
	}
	url, err := s.SentEmailRepo.GetTrackedLinkURL(tok, linkIndex)
	if err != nil {
		log.Println("⚠️ failed to resolve tracked link:", err)
		return fallback
	}
	if url == "" {
		return fallback
	}
	return url
}
