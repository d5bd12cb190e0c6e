package mailer

import (
	"context"
	"fmt"
	"log"
	"math/rand"
)

// Mailer is the outbound delivery collaborator. Deliver blocks until the
// transport acknowledges or rejects the message; there are no partial
// results. toName may be empty.
type Mailer interface {
	Deliver(ctx context.Context, toAddress, toName, subject, htmlBody string) error
}

// MockMailer is the development and seeding transport. FailureRate in [0,1]
// makes a fraction of deliveries fail so rollback paths can be exercised
// without a real provider.
type MockMailer struct {
	FailureRate float64
}

func NewMockMailer(failureRate float64) *MockMailer {
	return &MockMailer{FailureRate: failureRate}
}

func (m *MockMailer) Deliver(ctx context.Context, toAddress, toName, subject, htmlBody string) error {
	if m.FailureRate > 0 && rand.Float64() < m.FailureRate {
		return fmt.Errorf("mock delivery to %s failed", toAddress)
	}
	log.Printf("📧 mock delivery to %s (%q): %s", toAddress, toName, subject)
	return nil
}

var _ Mailer = (*MockMailer)(nil)
