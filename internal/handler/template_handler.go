// internal/handler/template_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type TemplateHandler struct {
	Repo repository.TemplateRepositoryInterface
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name         string `json:"name"`
		Subject      string `json:"subject"`
		Body         string `json:"body"`
		TemplateType string `json:"template_type"`
		IsPublic     bool   `json:"is_public"`
		CompanyID    *int   `json:"company_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.Subject == "" || payload.Body == "" {
		http.Error(w, "name, subject and body are required", http.StatusBadRequest)
		return
	}

	template := &model.Template{
		Name:         payload.Name,
		Subject:      payload.Subject,
		Body:         payload.Body,
		TemplateType: payload.TemplateType,
		IsPublic:     payload.IsPublic,
		CompanyID:    payload.CompanyID,
	}
	if err := h.Repo.Create(template); err != nil {
		http.Error(w, "failed to create template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(template)
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := strconv.Atoi(r.URL.Query().Get("company_id"))
	templates, err := h.Repo.List(companyID)
	if err != nil {
		http.Error(w, "failed to list templates: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(templates)
}

func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	template, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if template == nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(template)
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}

	template, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if template == nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Name         *string `json:"name"`
		Subject      *string `json:"subject"`
		Body         *string `json:"body"`
		TemplateType *string `json:"template_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if payload.Name != nil {
		template.Name = *payload.Name
	}
	if payload.Subject != nil {
		template.Subject = *payload.Subject
	}
	if payload.Body != nil {
		template.Body = *payload.Body
	}
	if payload.TemplateType != nil {
		template.TemplateType = *payload.TemplateType
	}

	if err := h.Repo.Update(template); err != nil {
		http.Error(w, "failed to update template: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(template)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid template id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		http.Error(w, "failed to delete template: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
