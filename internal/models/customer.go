package models

import "time"

// Customer is a retail chain whose point-of-sale exports we ingest.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Stores   []Store   `gorm:"foreignKey:CustomerID" json:"stores,omitempty"`
	Products []Product `gorm:"foreignKey:CustomerID" json:"products,omitempty"`
}

func (Customer) TableName() string { return "customers" }
