// internal/model/template.go
package model

import "time"

type Template struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Subject      string    `db:"subject" json:"subject"`
	Body         string    `db:"body" json:"body"`
	TemplateType string    `db:"template_type" json:"template_type"`
	IsPublic     bool      `db:"is_public" json:"is_public"`
	CompanyID    *int      `db:"company_id" json:"company_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
