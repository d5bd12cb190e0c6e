// internal/handler/company_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type CompanyHandler struct {
	Repo repository.CompanyRepositoryInterface
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name   string `json:"name"`
		Domain string `json:"domain"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Name == "" || payload.Domain == "" {
		http.Error(w, "name and domain are required", http.StatusBadRequest)
		return
	}

	company := &model.Company{Name: payload.Name, Domain: payload.Domain}
	if err := h.Repo.Create(company); err != nil {
		http.Error(w, "failed to create company: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(company)
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Repo.List()
	if err != nil {
		http.Error(w, "failed to list companies: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companies)
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}
	company, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if company == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}

	company, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if company == nil {
		http.Error(w, "company not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Name     *string          `json:"name"`
		Domain   *string          `json:"domain"`
		Settings *json.RawMessage `json:"settings"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if payload.Name != nil {
		company.Name = *payload.Name
	}
	if payload.Domain != nil {
		company.Domain = *payload.Domain
	}
	if payload.Settings != nil {
		company.Settings = *payload.Settings
	}

	if err := h.Repo.Update(company); err != nil {
		http.Error(w, "failed to update company: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid company id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		http.Error(w, "failed to delete company: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
