// internal/handler/campaign_handler.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type CampaignHandler struct {
	Repo repository.CampaignRepositoryInterface
}

func (h *CampaignHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CompanyID   int    `json:"company_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.CompanyID == 0 || payload.Name == "" {
		http.Error(w, "company_id and name are required", http.StatusBadRequest)
		return
	}

	campaign := &model.Campaign{
		CompanyID:   payload.CompanyID,
		Name:        payload.Name,
		Description: payload.Description,
		Status:      model.CampaignStatusDraft,
	}
	if err := h.Repo.Create(campaign); err != nil {
		http.Error(w, "failed to create campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (h *CampaignHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := strconv.Atoi(r.URL.Query().Get("company_id"))
	campaigns, err := h.Repo.List(companyID)
	if err != nil {
		http.Error(w, "failed to list campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaigns)
}

func (h *CampaignHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	campaign, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), campaignErrStatus(err))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// Update handles name, description and manual status transitions. Completing
// a campaign happens here; dispatch never completes one on its own.
func (h *CampaignHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), campaignErrStatus(err))
		return
	}

	var payload struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if payload.Name != nil {
		campaign.Name = *payload.Name
	}
	if payload.Description != nil {
		campaign.Description = *payload.Description
	}
	if payload.Status != nil {
		switch *payload.Status {
		case model.CampaignStatusDraft, model.CampaignStatusActive, model.CampaignStatusCompleted:
			campaign.Status = *payload.Status
		default:
			http.Error(w, "invalid status: "+*payload.Status, http.StatusBadRequest)
			return
		}
	}

	if err := h.Repo.Update(campaign); err != nil {
		http.Error(w, "failed to update campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (h *CampaignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		http.Error(w, "failed to delete campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func campaignErrStatus(err error) int {
	var notFound *appErrors.ErrCampaignNotFound
	if errors.As(err, &notFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
