package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

type SentEmailRepositoryInterface interface {
	CreateWithLinks(msg *model.SentEmail, linkURLs []string, deliver func() error) error
	GetByToken(token uuid.UUID) (*model.SentEmail, error)
	GetTrackedLinkURL(token uuid.UUID, linkIndex int) (string, error)
}

type SentEmailRepository struct {
	DB *sql.DB
}

// CreateWithLinks runs the whole per-recipient send unit in one transaction:
// insert the provisional sent_emails row, insert one tracked_links row per
// rewritten hyperlink (index i = position i in linkURLs), then invoke the
// delivery callback. The transaction commits only if delivery succeeds, so a
// failed send leaves no token and no link rows behind, and no reader ever
// observes a sent email without its tracked links.
func (r *SentEmailRepository) CreateWithLinks(msg *model.SentEmail, linkURLs []string, deliver func() error) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO sent_emails (campaign_id, employee_id, template_id, tracking_token, subject, body)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err = tx.QueryRow(query, msg.CampaignID, msg.EmployeeID, msg.TemplateID, msg.TrackingToken, msg.Subject, msg.Body).
		Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert sent_email: %w", err)
	}

	for i, url := range linkURLs {
		_, err = tx.Exec(
			`INSERT INTO tracked_links (sent_email_id, link_index, original_url) VALUES ($1, $2, $3)`,
			msg.ID, i, url,
		)
		if err != nil {
			return fmt.Errorf("insert tracked_link %d: %w", i, err)
		}
	}

	if err := deliver(); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByToken resolves a tracking token to its sent email. Returns nil, nil
// when the token is unknown; the tracking path treats that as a silent no-op.
func (r *SentEmailRepository) GetByToken(token uuid.UUID) (*model.SentEmail, error) {
	var msg model.SentEmail
	err := r.DB.QueryRow(`
        SELECT id, campaign_id, employee_id, template_id, tracking_token, subject, body, created_at
        FROM sent_emails WHERE tracking_token=$1
    `, token).Scan(
		&msg.ID, &msg.CampaignID, &msg.EmployeeID, &msg.TemplateID,
		&msg.TrackingToken, &msg.Subject, &msg.Body, &msg.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// GetTrackedLinkURL resolves (token, linkIndex) to the original destination.
// Returns "", nil when either the token or the index is unknown.
func (r *SentEmailRepository) GetTrackedLinkURL(token uuid.UUID, linkIndex int) (string, error) {
	var url string
	err := r.DB.QueryRow(`
        SELECT tl.original_url
        FROM tracked_links tl
        JOIN sent_emails se ON se.id = tl.sent_email_id
        WHERE se.tracking_token=$1 AND tl.link_index=$2
    `, token, linkIndex).Scan(&url)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return url, nil
}

var _ SentEmailRepositoryInterface = (*SentEmailRepository)(nil)
