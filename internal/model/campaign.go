// internal/model/campaign.go
package model

import "time"

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
)

type Campaign struct {
	ID          int        `db:"id" json:"id"`
	CompanyID   int        `db:"company_id" json:"company_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	Status      string     `db:"status" json:"status"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	StartedAt   *time.Time `db:"started_at" json:"started_at,omitempty"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
}
