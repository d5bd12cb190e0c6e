// internal/model/company.go
package model

import (
	"encoding/json"
	"time"
)

type Company struct {
	ID        int             `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	Domain    string          `db:"domain" json:"domain"`
	Settings  json.RawMessage `db:"settings" json:"settings"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
