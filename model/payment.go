package model

import "time"

// Payment is an append-only audit row. Exactly one is written per successful
// check-in and per successful extension. Never updated or deleted; a payment
// outlives the visit it references.
type Payment struct {
	DTO
	PublicCode string    `gorm:"unique;size:20" json:"publicCode"`
	VisitId    *uint     `gorm:"index" json:"visitId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Method     string    `gorm:"not null" json:"method"`
	PaidAt     time.Time `gorm:"not null;index" json:"paidAt"`

	Visit *Visit `gorm:"foreignKey:VisitId" json:"-"`
}
