package models

import (
	"time"

	"gorm.io/datatypes"
)

// Price is an append-only pricing event for a product at one store. A price
// change is always a new row, never an edit. Duplicate detection is done in
// the pipeline on (store, upc, price type, start date); there is deliberately
// no unique constraint here.
type Price struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StoreID   uint           `gorm:"index;not null" json:"store_id"`
	UpcPlu    string         `gorm:"index;not null" json:"upc_plu"`
	Price     *float64       `json:"price"`
	PriceType *string        `json:"price_type"`
	StartDate *string        `json:"start_date"`
	EndDate   *string        `json:"end_date"`
	Metadata  datatypes.JSON `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

func (Price) TableName() string { return "prices" }
