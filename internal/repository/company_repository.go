package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

type CompanyRepositoryInterface interface {
	Create(c *model.Company) error
	List() ([]model.Company, error)
	GetByID(id int) (*model.Company, error)
	Update(c *model.Company) error
	Delete(id int) error
}

type CompanyRepository struct {
	DB *sql.DB
}

func (r *CompanyRepository) Create(c *model.Company) error {
	if len(c.Settings) == 0 {
		c.Settings = json.RawMessage(`{}`)
	}
	query := `
        INSERT INTO companies (name, domain, settings)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, c.Name, c.Domain, c.Settings).Scan(&c.ID, &c.CreatedAt)
}

func (r *CompanyRepository) List() ([]model.Company, error) {
	rows, err := r.DB.Query(`
        SELECT id, name, domain, settings, created_at
        FROM companies ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := []model.Company{}
	for rows.Next() {
		var c model.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Domain, &c.Settings, &c.CreatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) GetByID(id int) (*model.Company, error) {
	var c model.Company
	err := r.DB.QueryRow(`
        SELECT id, name, domain, settings, created_at
        FROM companies WHERE id=$1
    `, id).Scan(&c.ID, &c.Name, &c.Domain, &c.Settings, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompanyRepository) Update(c *model.Company) error {
	query := `
        UPDATE companies
        SET name=$1, domain=$2, settings=$3
        WHERE id=$4
    `
	_, err := r.DB.Exec(query, c.Name, c.Domain, c.Settings, c.ID)
	return err
}

func (r *CompanyRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM companies WHERE id=$1`, id)
	return err
}

var _ CompanyRepositoryInterface = (*CompanyRepository)(nil)
