// internal/model/sent_email.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SentEmail is the durable record of one delivered message. Its tracking
// token is the only key by which later opens and clicks are correlated back
// to the message, so it must never be guessable and never reused.
type SentEmail struct {
	ID            int       `db:"id" json:"id"`
	CampaignID    int       `db:"campaign_id" json:"campaign_id"`
	EmployeeID    int       `db:"employee_id" json:"employee_id"`
	TemplateID    int       `db:"template_id" json:"template_id"`
	TrackingToken uuid.UUID `db:"tracking_token" json:"tracking_token"`
	Subject       string    `db:"subject" json:"subject"`
	Body          string    `db:"body" json:"body"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
