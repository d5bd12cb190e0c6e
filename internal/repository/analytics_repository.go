package repository

import (
	"database/sql"
)

type CampaignTotals struct {
	Sent    int64
	Opened  int64
	Clicked int64
}

type DepartmentCounts struct {
	Department    string
	EmployeeCount int64
	EmailsSent    int64
	EmailsOpened  int64
	LinksClicked  int64
}

type AnalyticsRepositoryInterface interface {
	GetCampaignStats(campaignID int) (CampaignTotals, []DepartmentCounts, error)
}

type AnalyticsRepository struct {
	DB *sql.DB
}

// GetCampaignStats reads campaign totals and the department breakdown in a
// single read-only transaction so the two result sets come from one
// snapshot. Counts are per distinct sent email: a message with five clicks
// still counts once in Clicked.
func (r *AnalyticsRepository) GetCampaignStats(campaignID int) (CampaignTotals, []DepartmentCounts, error) {
	var totals CampaignTotals
	departments := []DepartmentCounts{}

	tx, err := r.DB.Begin()
	if err != nil {
		return totals, nil, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(`
        SELECT
            COUNT(DISTINCT se.id),
            COUNT(DISTINCT CASE WHEN i.interaction_type = 'email_opened' THEN se.id END),
            COUNT(DISTINCT CASE WHEN i.interaction_type = 'link_clicked' THEN se.id END)
        FROM sent_emails se
        LEFT JOIN interactions i ON i.sent_email_id = se.id
        WHERE se.campaign_id = $1
    `, campaignID).Scan(&totals.Sent, &totals.Opened, &totals.Clicked)
	if err != nil {
		return totals, nil, err
	}

	// Departments are ordered by click count descending with the department
	// name as a deterministic tie-break.
	rows, err := tx.Query(`
        SELECT
            COALESCE(e.department, 'Unknown') AS department,
            COUNT(DISTINCT e.id),
            COUNT(DISTINCT se.id),
            COUNT(DISTINCT CASE WHEN i.interaction_type = 'email_opened' THEN se.id END),
            COUNT(DISTINCT CASE WHEN i.interaction_type = 'link_clicked' THEN se.id END) AS links_clicked
        FROM employees e
        LEFT JOIN sent_emails se ON se.employee_id = e.id AND se.campaign_id = $1
        LEFT JOIN interactions i ON i.sent_email_id = se.id
        WHERE e.company_id = (SELECT company_id FROM campaigns WHERE id = $1)
        GROUP BY COALESCE(e.department, 'Unknown')
        ORDER BY links_clicked DESC, department ASC
    `, campaignID)
	if err != nil {
		return totals, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d DepartmentCounts
		if err := rows.Scan(&d.Department, &d.EmployeeCount, &d.EmailsSent, &d.EmailsOpened, &d.LinksClicked); err != nil {
			return totals, nil, err
		}
		departments = append(departments, d)
	}
	if err := rows.Err(); err != nil {
		return totals, nil, err
	}

	return totals, departments, tx.Commit()
}

var _ AnalyticsRepositoryInterface = (*AnalyticsRepository)(nil)
