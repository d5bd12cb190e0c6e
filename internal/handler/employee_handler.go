// internal/handler/employee_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type EmployeeHandler struct {
	Repo repository.EmployeeRepositoryInterface
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		CompanyID  int             `json:"company_id"`
		Email      string          `json:"email"`
		FirstName  string          `json:"first_name"`
		LastName   string          `json:"last_name"`
		Department string          `json:"department"`
		Metadata   json.RawMessage `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.CompanyID == 0 || payload.Email == "" {
		http.Error(w, "company_id and email are required", http.StatusBadRequest)
		return
	}

	employee := &model.Employee{
		CompanyID:  payload.CompanyID,
		Email:      payload.Email,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Department: payload.Department,
		Metadata:   payload.Metadata,
	}
	if err := h.Repo.Create(employee); err != nil {
		http.Error(w, "failed to create employee: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID, _ := strconv.Atoi(r.URL.Query().Get("company_id"))
	employees, err := h.Repo.List(companyID)
	if err != nil {
		http.Error(w, "failed to list employees: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employees)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}
	employee, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if employee == nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}

	employee, err := h.Repo.GetByID(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if employee == nil {
		http.Error(w, "employee not found", http.StatusNotFound)
		return
	}

	var payload struct {
		Email      *string          `json:"email"`
		FirstName  *string          `json:"first_name"`
		LastName   *string          `json:"last_name"`
		Department *string          `json:"department"`
		Metadata   *json.RawMessage `json:"metadata"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if payload.Email != nil {
		employee.Email = *payload.Email
	}
	if payload.FirstName != nil {
		employee.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		employee.LastName = *payload.LastName
	}
	if payload.Department != nil {
		employee.Department = *payload.Department
	}
	if payload.Metadata != nil {
		employee.Metadata = *payload.Metadata
	}

	if err := h.Repo.Update(employee); err != nil {
		http.Error(w, "failed to update employee: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(employee)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid employee id", http.StatusBadRequest)
		return
	}
	if err := h.Repo.Delete(id); err != nil {
		http.Error(w, "failed to delete employee: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
