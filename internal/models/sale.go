package models

import (
	"time"

	"gorm.io/datatypes"
)

// Sale is an append-only sales event for a product at one store. Duplicate
// detection is done in the pipeline on (store, upc, sale time, total sale).
type Sale struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StoreID   uint           `gorm:"index;not null" json:"store_id"`
	UpcPlu    string         `gorm:"index;not null" json:"upc_plu"`
	SaleTime  *string        `json:"sale_time"`
	UnitPrice *float64       `json:"unit_price"`
	UnitsSold *float64       `json:"units_sold"`
	TotalSale *float64       `json:"total_sale"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Sale) TableName() string { return "sales" }
