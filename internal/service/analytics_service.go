// internal/service/analytics_service.go
package service

import (
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type CampaignAnalytics struct {
	CampaignID   int               `json:"campaign_id"`
	CampaignName string            `json:"campaign_name"`
	TotalSent    int64             `json:"total_sent"`
	TotalOpened  int64             `json:"total_opened"`
	TotalClicked int64             `json:"total_clicked"`
	OpenRate     float64           `json:"open_rate"`
	ClickRate    float64           `json:"click_rate"`
	Departments  []DepartmentStats `json:"departments"`
}

type DepartmentStats struct {
	Department    string  `json:"department"`
	EmployeeCount int64   `json:"employee_count"`
	EmailsSent    int64   `json:"emails_sent"`
	EmailsOpened  int64   `json:"emails_opened"`
	LinksClicked  int64   `json:"links_clicked"`
	OpenRate      float64 `json:"open_rate"`
	ClickRate     float64 `json:"click_rate"`
}

type AnalyticsService struct {
	CampaignRepo  repository.CampaignRepositoryInterface
	AnalyticsRepo repository.AnalyticsRepositoryInterface
}

// GetCampaignAnalytics rolls sent emails and interactions up into campaign
// totals and a per-department breakdown. A campaign with nothing sent yields
// a fully populated zero report.
func (s *AnalyticsService) GetCampaignAnalytics(campaignID int) (*CampaignAnalytics, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	totals, deptCounts, err := s.AnalyticsRepo.GetCampaignStats(campaignID)
	if err != nil {
		return nil, err
	}

	departments := make([]DepartmentStats, 0, len(deptCounts))
	for _, d := range deptCounts {
		departments = append(departments, DepartmentStats{
			Department:    d.Department,
			EmployeeCount: d.EmployeeCount,
			EmailsSent:    d.EmailsSent,
			EmailsOpened:  d.EmailsOpened,
			LinksClicked:  d.LinksClicked,
			OpenRate:      rate(d.EmailsOpened, d.EmailsSent),
			ClickRate:     rate(d.LinksClicked, d.EmailsSent),
		})
	}

	return &CampaignAnalytics{
		CampaignID:   campaignID,
		CampaignName: campaign.Name,
		TotalSent:    totals.Sent,
		TotalOpened:  totals.Opened,
		TotalClicked: totals.Clicked,
		OpenRate:     rate(totals.Opened, totals.Sent),
		ClickRate:    rate(totals.Clicked, totals.Sent),
		Departments:  departments,
	}, nil
}

// rate is 100*part/total, and exactly 0.0 when total is zero.
func rate(part, total int64) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}
