package model

import "time"

// Sale is a standalone counter sale with no visit attached (snacks, merch,
// donations). Line items snapshot the unit price at time of sale.
type Sale struct {
	DTO
	PublicCode string    `gorm:"unique;size:20" json:"publicCode"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Method     string    `gorm:"not null" json:"method"`
	PaidAt     time.Time `gorm:"not null;index" json:"paidAt"`

	Items []SaleItem `gorm:"foreignKey:SaleId;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type SaleItem struct {
	DTO
	SaleId    uint    `gorm:"not null;index" json:"saleId"`
	ProductId uint    `gorm:"not null" json:"productId"`
	Qty       int     `gorm:"not null" json:"qty"`
	UnitPrice float64 `gorm:"not null" json:"unitPrice"`

	Sale    Sale    `gorm:"foreignKey:SaleId" json:"-"`
	Product Product `gorm:"foreignKey:ProductId" json:"-"`
}

type SaleLineInput struct {
	ProductId uint `json:"productId" validate:"required,gt=0"`
	Qty       int  `json:"qty" validate:"required,min=1"`
}

type CreateSaleInput struct {
	Items          []SaleLineInput `json:"items" validate:"omitempty,dive"`
	DonationAmount float64         `json:"donationAmount" validate:"omitempty,min=0"`
	Method         string          `json:"method" validate:"required,oneof=CASH PAYNOW"`
}
