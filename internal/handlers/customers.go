package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
)

// listCustomers returns all customers with their stores preloaded.
func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	var customers []models.Customer
	if err := r.db.WithContext(req.Context()).Preload("Stores").Order("name").Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

// createCustomer upserts a customer by name.
func (r *Router) createCustomer(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	customer, err := r.store.UpsertCustomerByName(req.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to upsert customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}
