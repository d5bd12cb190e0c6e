// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

type CampaignController struct {
	Dispatch  *service.DispatchService
	Analytics *service.AnalyticsService
}

// SendCampaign is the one write entry point for sending: one batch per call,
// tallied per employee.
func (c *CampaignController) SendCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		TemplateID int `json:"template_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	result, err := c.Dispatch.SendCampaign(r.Context(), id, body.TemplateID)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (c *CampaignController) GetCampaignAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	analytics, err := c.Analytics.GetCampaignAnalytics(id)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analytics)
}

func statusForError(err error) int {
	var campaignNF *appErrors.ErrCampaignNotFound
	var templateNF *appErrors.ErrTemplateNotFound
	if errors.As(err, &campaignNF) || errors.As(err, &templateNF) {
		return http.StatusNotFound
	}
	var noEmployees *appErrors.ErrNoEmployees
	if errors.As(err, &noEmployees) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
