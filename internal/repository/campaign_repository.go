package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	List(companyID int) ([]model.Campaign, error)
	GetByID(id int) (*model.Campaign, error)
	Update(c *model.Campaign) error
	Delete(id int) error
	MarkActive(campaignID int) error
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, company_id, name, COALESCE(description, ''), status, created_at, started_at, completed_at`

func (r *CampaignRepository) Create(c *model.Campaign) error {
	if c.Status == "" {
		c.Status = model.CampaignStatusDraft
	}
	query := `
        INSERT INTO campaigns (company_id, name, description, status)
        VALUES ($1, $2, NULLIF($3, ''), $4)
        RETURNING id, created_at
    `
	return r.DB.QueryRow(query, c.CompanyID, c.Name, c.Description, c.Status).Scan(&c.ID, &c.CreatedAt)
}

func (r *CampaignRepository) List(companyID int) ([]model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []interface{}{}
	if companyID > 0 {
		query += ` WHERE company_id=$1`
		args = append(args, companyID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.Campaign{}
	for rows.Next() {
		var c model.Campaign
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Status, &c.CreatedAt, &c.StartedAt, &c.CompletedAt); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	var c model.Campaign
	err := r.DB.QueryRow(`SELECT `+campaignColumns+` FROM campaigns WHERE id=$1`, id).
		Scan(&c.ID, &c.CompanyID, &c.Name, &c.Description, &c.Status, &c.CreatedAt, &c.StartedAt, &c.CompletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// Update writes name, description and status. Moving to completed stamps
// completed_at once; other transitions leave the timestamps alone.
func (r *CampaignRepository) Update(c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET name=$1, description=NULLIF($2, ''), status=$3,
            completed_at=CASE WHEN $3='completed' AND completed_at IS NULL THEN $4 ELSE completed_at END
        WHERE id=$5
    `
	_, err := r.DB.Exec(query, c.Name, c.Description, c.Status, time.Now(), c.ID)
	return err
}

func (r *CampaignRepository) Delete(id int) error {
	_, err := r.DB.Exec(`DELETE FROM campaigns WHERE id=$1`, id)
	return err
}

// MarkActive transitions a draft campaign to active and stamps started_at.
// Idempotent: an already-active campaign is left untouched.
func (r *CampaignRepository) MarkActive(campaignID int) error {
	query := `
        UPDATE campaigns
        SET status='active', started_at=NOW()
        WHERE id=$1 AND status='draft'
    `
	_, err := r.DB.Exec(query, campaignID)
	return err
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
