// internal/service/dispatch_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/mailer"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

const defaultDispatchWorkers = 4

type DispatchService struct {
	CampaignRepo  repository.CampaignRepositoryInterface
	CompanyRepo   repository.CompanyRepositoryInterface
	EmployeeRepo  repository.EmployeeRepositoryInterface
	TemplateRepo  repository.TemplateRepositoryInterface
	SentEmailRepo repository.SentEmailRepositoryInterface
	Mailer        mailer.Mailer
	BaseURL       string
	Workers       int // bound on concurrent deliveries toward the transport
}

type DispatchResult struct {
	CampaignID  int    `json:"campaign_id"`
	SentCount   int    `json:"sent_count"`
	FailedCount int    `json:"failed_count"`
	Message     string `json:"message"`
}

// SendCampaign attempts exactly one send per employee of the campaign's
// company and tallies successes and failures. Per-employee failures never
// abort the batch. Dispatching the same campaign again sends a fresh batch to
// every employee; there is no cross-run idempotency key, which is what lets a
// campaign be re-dispatched to pick up new joiners.
func (s *DispatchService) SendCampaign(ctx context.Context, campaignID, templateID int) (*DispatchResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	template, err := s.TemplateRepo.GetByID(templateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, appErrors.NewTemplateNotFound(templateID)
	}

	companyName := ""
	if company, err := s.CompanyRepo.GetByID(campaign.CompanyID); err == nil && company != nil {
		companyName = company.Name
	}

	employees, err := s.EmployeeRepo.ListByCompany(campaign.CompanyID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, appErrors.NewNoEmployees(campaign.CompanyID)
	}

	workers := s.Workers
	if workers <= 0 {
		workers = defaultDispatchWorkers
	}

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		sent, failed int
	)
	jobs := make(chan model.Employee)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for emp := range jobs {
				if err := s.sendOne(ctx, campaign, template, companyName, &emp); err != nil {
					log.Printf("⚠️ failed to send to %s: %v", emp.Email, err)
					mu.Lock()
					failed++
					mu.Unlock()
				} else {
					mu.Lock()
					sent++
					mu.Unlock()
				}
			}
		}()
	}

	for _, emp := range employees {
		jobs <- emp
	}
	close(jobs)
	wg.Wait()

	// The pass ran, so a draft campaign goes active whatever the per-employee
	// outcomes were.
	if campaign.Status == model.CampaignStatusDraft {
		if err := s.CampaignRepo.MarkActive(campaignID); err != nil {
			log.Println("⚠️ failed to mark campaign active:", err)
		}
	}

	return &DispatchResult{
		CampaignID:  campaignID,
		SentCount:   sent,
		FailedCount: failed,
		Message:     fmt.Sprintf("Campaign sent: %d successful, %d failed", sent, failed),
	}, nil
}

// sendOne runs the whole per-recipient unit: fresh token, personalization,
// link rewrite, pixel append, then the transactional create-and-deliver. A
// delivery failure rolls back the sent email and its tracked links, so the
// token never outlives a failed send.
func (s *DispatchService) sendOne(ctx context.Context, campaign *model.Campaign, template *model.Template, companyName string, emp *model.Employee) error {
	token := uuid.New()

	data := PersonalizationData(emp, companyName)
	subject := RenderTemplate(template.Subject, data)
	body := RenderTemplate(template.Body, data)

	rewritten, links := RewriteLinks(body, s.BaseURL, token)
	finalBody := rewritten + TrackingPixel(s.BaseURL, token)

	msg := &model.SentEmail{
		CampaignID:    campaign.ID,
		EmployeeID:    emp.ID,
		TemplateID:    template.ID,
		TrackingToken: token,
		Subject:       subject,
		Body:          finalBody,
	}

	return s.SentEmailRepo.CreateWithLinks(msg, links, func() error {
		return s.Mailer.Deliver(ctx, emp.Email, emp.FullName(), subject, finalBody)
	})
}
