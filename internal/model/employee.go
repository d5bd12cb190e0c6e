// internal/model/employee.go
package model

import (
	"encoding/json"
	"strings"
	"time"
)

type Employee struct {
	ID         int             `db:"id" json:"id"`
	CompanyID  int             `db:"company_id" json:"company_id"`
	Email      string          `db:"email" json:"email"`
	FirstName  string          `db:"first_name" json:"first_name"`
	LastName   string          `db:"last_name" json:"last_name"`
	Department string          `db:"department" json:"department"`
	Metadata   json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// FullName joins whichever name parts are present; empty when both are blank.
func (e *Employee) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}
