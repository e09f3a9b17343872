package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/superdevstar50/empowerfresh-challenge/internal/config"
	"github.com/superdevstar50/empowerfresh-challenge/internal/database"
	"github.com/superdevstar50/empowerfresh-challenge/internal/etl"
	"github.com/superdevstar50/empowerfresh-challenge/internal/storage"
	"go.uber.org/zap"
)

// Router wraps the mux router with the service's collaborators. The HTTP
// layer is thin plumbing around the import core.
type Router struct {
	*mux.Router
	db     *database.DB
	store  *storage.GormStore
	jobs   etl.JobStore
	runner *etl.Runner
	cfg    *config.Config
	log    *zap.Logger
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, store *storage.GormStore, jobs etl.JobStore, runner *etl.Runner, cfg *config.Config, log *zap.Logger) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		store:  store,
		jobs:   jobs,
		runner: runner,
		cfg:    cfg,
		log:    log,
	}

	r.Use(requestLogging(log))

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// API routes
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/upload", r.uploadFiles).Methods("POST")
	api.HandleFunc("/etl", r.submitJob).Methods("POST")
	api.HandleFunc("/jobs", r.listJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", r.getJob).Methods("GET")
	api.HandleFunc("/customers", r.listCustomers).Methods("GET")
	api.HandleFunc("/customers", r.createCustomer).Methods("POST")
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/prices", r.listPrices).Methods("GET")
	api.HandleFunc("/sales", r.listSales).Methods("GET")
	api.HandleFunc("/stats", r.salesStats).Methods("GET")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
