// internal/model/tracked_link.go
package model

// TrackedLink maps one rewritten hyperlink instance back to its original
// destination. The same URL appearing twice in a body gets two rows with
// distinct indices.
type TrackedLink struct {
	SentEmailID int    `db:"sent_email_id" json:"sent_email_id"`
	LinkIndex   int    `db:"link_index" json:"link_index"`
	OriginalURL string `db:"original_url" json:"original_url"`
}
