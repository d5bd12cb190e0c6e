// internal/model/interaction.go
package model

import (
	"encoding/json"
	"time"
)

const (
	InteractionOpened  = "email_opened"
	InteractionClicked = "link_clicked"
)

type Interaction struct {
	ID              int             `db:"id" json:"id"`
	SentEmailID     int             `db:"sent_email_id" json:"sent_email_id"`
	InteractionType string          `db:"interaction_type" json:"interaction_type"`
	Metadata        json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
