package repository

import (
	"database/sql"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

type TemplateRepositoryInterface interface {
	Create(t *model.Template) error
	List(companyID int) ([]model.Template, error)
	GetByID(id int) (*model.Template, error)
	Update(t *model.Template) error
	Delete(id int) error
}

type TemplateRepository struct {
	DB *sql.DB
}

const templateColumns = `id, name, subject, body, COALESCE(template_type, ''), is_public, company_id, created_at`

func (r *TemplateRepository) Create(t *model.Template) error {
	query := `
        INSERT INTO templates (name, subject, body, template_type, is_public, company_id)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, t.Name, t.Subject, t.Body, t.TemplateType, t.IsPublic, t.CompanyID).
		Scan(&t.ID, &t.CreatedAt)
}

// List returns public templates plus, when companyID > 0, that company's
// private ones.
func (r *TemplateRepository) List(companyID int) ([]model.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM templates WHERE is_public = TRUE OR company_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		var t model.Template
		if err := rows.Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.TemplateType, &t.IsPublic, &t.CompanyID, &t.CreatedAt); err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) GetByID(id int) (*model.Template, error) {
	var t model.Template
	err := r.DB.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE id=$1`, id).
		Scan(&t.ID, &t.Name, &t.Subject, &t.Body, &t.TemplateType, &t.IsPublic, &t.CompanyID, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) Update(t *model.Template) error {
	query := `
        UPDATE templates
        SET name=$1, subject=$2, body=$3, template_type=NULLIF($4, '')
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, t.Name, t.Subject, t.Body, t.TemplateType, t.ID)
	return err
}

func (r *TemplateRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM templates WHERE id=$1`, id)
	return err
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)
