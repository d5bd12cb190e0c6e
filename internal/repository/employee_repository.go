package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

type EmployeeRepositoryInterface interface {
	Create(e *model.Employee) error
	List(companyID int) ([]model.Employee, error)
	GetByID(id int) (*model.Employee, error)
	ListByCompany(companyID int) ([]model.Employee, error)
	Update(e *model.Employee) error
	Delete(id int) error
}

type EmployeeRepository struct {
	DB *sql.DB
}

const employeeColumns = `id, company_id, email, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(department, ''), metadata, created_at`

func (r *EmployeeRepository) Create(e *model.Employee) error {
	if len(e.Metadata) == 0 {
		e.Metadata = json.RawMessage(`{}`)
	}
	query := `
        INSERT INTO employees (company_id, email, first_name, last_name, department, metadata)
        VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), $6)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, e.CompanyID, e.Email, e.FirstName, e.LastName, e.Department, e.Metadata).
		Scan(&e.ID, &e.CreatedAt)
}

// List returns all employees, or the employees of one company when
// companyID > 0.
func (r *EmployeeRepository) List(companyID int) ([]model.Employee, error) {
	if companyID > 0 {
		return r.ListByCompany(companyID)
	}
	rows, err := r.DB.Query(`SELECT ` + employeeColumns + ` FROM employees ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

// ListByCompany is the dispatch roster read: every employee belonging to the
// campaign's company.
func (r *EmployeeRepository) ListByCompany(companyID int) ([]model.Employee, error) {
	rows, err := r.DB.Query(`SELECT `+employeeColumns+` FROM employees WHERE company_id=$1 ORDER BY id`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func scanEmployees(rows *sql.Rows) ([]model.Employee, error) {
	employees := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.Email, &e.FirstName, &e.LastName, &e.Department, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *EmployeeRepository) GetByID(id int) (*model.Employee, error) {
	var e model.Employee
	err := r.DB.QueryRow(`SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id).
		Scan(&e.ID, &e.CompanyID, &e.Email, &e.FirstName, &e.LastName, &e.Department, &e.Metadata, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Update(e *model.Employee) error {
	query := `
        UPDATE employees
        SET email=$1, first_name=NULLIF($2, ''), last_name=NULLIF($3, ''),
            department=NULLIF($4, ''), metadata=$5
        WHERE id=$6
    `
	_, err := r.DB.Exec(query, e.Email, e.FirstName, e.LastName, e.Department, e.Metadata, e.ID)
	return err
}

func (r *EmployeeRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM employees WHERE id=$1`, id)
	return err
}

var _ EmployeeRepositoryInterface = (*EmployeeRepository)(nil)
