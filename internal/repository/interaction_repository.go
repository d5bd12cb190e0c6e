package repository

import (
	"database/sql"
	"encoding/json"
)

type InteractionRepositoryInterface interface {
	InsertOpenIfAbsent(sentEmailID int) error
	InsertClick(sentEmailID, linkIndex int) error
}

type InteractionRepository struct {
	DB *sql.DB
}

// InsertOpenIfAbsent records an email_opened interaction at most once per
// sent email. Deduplication rides on the partial unique index, so concurrent
// duplicate pixel loads cannot double-count an open.
func (r *InteractionRepository) InsertOpenIfAbsent(sentEmailID int) error {
	query := `
        INSERT INTO interactions (sent_email_id, interaction_type, metadata)
        VALUES ($1, 'email_opened', '{}')
        ON CONFLICT (sent_email_id) WHERE interaction_type = 'email_opened' DO NOTHING
    `
	_, err := r.DB.Exec(query, sentEmailID)
	return err
}

// InsertClick records a link_clicked interaction. Clicks are never deduped;
// every call inserts a row.
func (r *InteractionRepository) InsertClick(sentEmailID, linkIndex int) error {
	metadata, err := json.Marshal(map[string]int{"link_index": linkIndex})
	if err != nil {
		return err
	}
	query := `
        INSERT INTO interactions (sent_email_id, interaction_type, metadata)
        VALUES ($1, 'link_clicked', $2)
    `
	_, err = r.DB.Exec(query, sentEmailID, metadata)
	return err
}

var _ InteractionRepositoryInterface = (*InteractionRepository)(nil)
