// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

type ErrTemplateNotFound struct {
	TemplateID int
}

func (e *ErrTemplateNotFound) Error() string {
	return fmt.Sprintf("template with ID %d not found", e.TemplateID)
}

func NewTemplateNotFound(id int) error {
	return &ErrTemplateNotFound{TemplateID: id}
}

type ErrCompanyNotFound struct {
	CompanyID int
}

func (e *ErrCompanyNotFound) Error() string {
	return fmt.Sprintf("company with ID %d not found", e.CompanyID)
}

func NewCompanyNotFound(id int) error {
	return &ErrCompanyNotFound{CompanyID: id}
}

type ErrEmployeeNotFound struct {
	EmployeeID int
}

func (e *ErrEmployeeNotFound) Error() string {
	return fmt.Sprintf("employee with ID %d not found", e.EmployeeID)
}

func NewEmployeeNotFound(id int) error {
	return &ErrEmployeeNotFound{EmployeeID: id}
}

// ErrNoEmployees means a dispatch was requested for a company with an empty
// roster. Surfaced as a bad request, not a zero-send no-op.
type ErrNoEmployees struct {
	CompanyID int
}

func (e *ErrNoEmployees) Error() string {
	return fmt.Sprintf("no employees found for company %d", e.CompanyID)
}

func NewNoEmployees(companyID int) error {
	return &ErrNoEmployees{CompanyID: companyID}
}
