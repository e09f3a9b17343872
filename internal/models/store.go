package models

import "time"

// Store is a single retail location belonging to a customer. The import
// pipeline creates stores on first sight of a code; Name defaults to the
// code and is never overwritten by an import.
type Store struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CustomerID uint      `gorm:"uniqueIndex:idx_stores_customer_code;not null" json:"customer_id"`
	StoreCode  string    `gorm:"uniqueIndex:idx_stores_customer_code;not null" json:"store_code"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Store) TableName() string { return "stores" }
