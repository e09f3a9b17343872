package handlers

import (
	"net/http"
	"strconv"

	"github.com/superdevstar50/empowerfresh-challenge/internal/models"
	"gorm.io/gorm"
)

// Paginated is the envelope for paginated list endpoints.
type Paginated struct {
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"totalPages"`
	Data       interface{} `json:"data"`
}

func pageParams(req *http.Request) (page, limit int) {
	page, limit = 1, 50
	if raw := req.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			page = n
		}
	}
	if raw := req.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}
	return page, limit
}

func (r *Router) paginate(w http.ResponseWriter, req *http.Request, query *gorm.DB, out interface{}) {
	page, limit := pageParams(req)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to count records")
		return
	}
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(out).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch records")
		return
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	respondJSON(w, http.StatusOK, Paginated{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Data:       out,
	})
}

// listProducts returns a page of products, optionally filtered by customer.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	query := r.db.WithContext(req.Context()).Model(&models.Product{}).Order("upc_plu")
	if customerID := req.URL.Query().Get("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	var products []models.Product
	r.paginate(w, req, query, &products)
}

// listPrices returns a page of pricing events, optionally filtered by store.
func (r *Router) listPrices(w http.ResponseWriter, req *http.Request) {
	query := r.db.WithContext(req.Context()).Model(&models.Price{}).Order("id DESC")
	if storeID := req.URL.Query().Get("store_id"); storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}
	var prices []models.Price
	r.paginate(w, req, query, &prices)
}

// listSales returns a page of sales events, optionally filtered by store.
func (r *Router) listSales(w http.ResponseWriter, req *http.Request) {
	query := r.db.WithContext(req.Context()).Model(&models.Sale{}).Order("id DESC")
	if storeID := req.URL.Query().Get("store_id"); storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}
	var sales []models.Sale
	r.paginate(w, req, query, &sales)
}
