package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a catalog entry keyed by (customer, UPC/PLU). Re-imports update
// the descriptive fields in place; products are never deleted by the
// pipeline. Metadata carries any vendor columns we did not recognize.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CustomerID  uint           `gorm:"uniqueIndex:idx_products_customer_upc;not null" json:"customer_id"`
	UpcPlu      string         `gorm:"uniqueIndex:idx_products_customer_upc;not null" json:"upc_plu"`
	Description *string        `json:"description"`
	Department  *string        `json:"department"`
	Category    *string        `json:"category"`
	UnitSize    *string        `json:"unit_size"`
	PackSize    *string        `json:"pack_size"`
	Metadata    datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Product) TableName() string { return "products" }
