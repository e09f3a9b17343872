package handlers

import (
	"net/http"
)

// SalesAggregateRow is one line of the sales rollup report.
type SalesAggregateRow struct {
	UpcPlu           string  `json:"upc_plu"`
	Description      *string `json:"description"`
	StoreCode        string  `json:"store_code"`
	CustomerName     string  `json:"customer_name"`
	TransactionCount int64   `json:"transaction_count"`
	TotalUnitsSold   float64 `json:"total_units_sold"`
	TotalRevenue     float64 `json:"total_revenue"`
	AvgUnitPrice     float64 `json:"avg_unit_price"`
	FirstSale        *string `json:"first_sale"`
	LastSale         *string `json:"last_sale"`
}

// salesStats serves the read-only sales rollup. Reporting is a consumer of
// the shared storage, deliberately outside the import pipeline.
func (r *Router) salesStats(w http.ResponseWriter, req *http.Request) {
	var rows []SalesAggregateRow
	err := r.db.WithContext(req.Context()).Raw(`
		SELECT s.upc_plu,
		       p.description,
		       st.store_code,
		       c.name AS customer_name,
		       COUNT(*) AS transaction_count,
		       COALESCE(SUM(s.units_sold), 0) AS total_units_sold,
		       COALESCE(SUM(s.total_sale), 0) AS total_revenue,
		       COALESCE(AVG(s.unit_price), 0) AS avg_unit_price,
		       MIN(s.sale_time) AS first_sale,
		       MAX(s.sale_time) AS last_sale
		FROM sales s
		JOIN stores st ON st.id = s.store_id
		JOIN customers c ON c.id = st.customer_id
		LEFT JOIN products p ON p.customer_id = c.id AND p.upc_plu = s.upc_plu
		GROUP BY s.upc_plu, p.description, st.store_code, c.name
		ORDER BY total_revenue DESC
		LIMIT 100
	`).Scan(&rows).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute sales stats")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}
