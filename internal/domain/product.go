package domain

import (
	"github.com/google/uuid"
)

// Product is a nutrition lookup entry, keyed by barcode. Macro values are
// per 100 grams.
type Product struct {
	Base
	Barcode    string  `gorm:"size:50;not null;uniqueIndex" json:"barcode"`
	Name       string  `gorm:"size:255;not null" json:"name"`
	Type       string  `gorm:"size:50" json:"type"`
	VendorName string  `gorm:"size:255" json:"vendorName"`
	Proteins   float64 `gorm:"not null" json:"proteins"`
	Fats       float64 `gorm:"not null" json:"fats"`
	Carbs      float64 `gorm:"not null" json:"carbs"`
	Calories   float64 `gorm:"not null" json:"calories"`
}

// Portion returns the product's nutrition scaled to the consumed amount in
// grams.
func (p *Product) Portion(amount float64) MealProduct {
	factor := amount / 100
	return MealProduct{
		Barcode:  p.Barcode,
		Name:     p.Name,
		Amount:   amount,
		Calories: p.Calories * factor,
		Proteins: p.Proteins * factor,
		Fats:     p.Fats * factor,
		Carbs:    p.Carbs * factor,
	}
}

// CustomerHistoryProduct records one consumed product in the customer's
// nutrition history.
type CustomerHistoryProduct struct {
	Base
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	Customer   *User     `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	Barcode    string    `gorm:"size:50;not null" json:"barcode"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Type       string    `gorm:"size:50" json:"type"`
	VendorName string    `gorm:"size:255" json:"vendorName"`
	Proteins   float64   `gorm:"not null" json:"proteins"`
	Fats       float64   `gorm:"not null" json:"fats"`
	Carbs      float64   `gorm:"not null" json:"carbs"`
	Calories   float64   `gorm:"not null" json:"calories"`
	Amount     float64   `gorm:"not null" json:"amount"`
}
