package model

import "time"

// Visit is one checked-in party occupying the venue for a paid time window.
// EstEndTime is the group clock and is only authoritative while no seat rows
// exist; once seats are materialized the per-seat end times win.
type Visit struct {
	DTO
	PublicCode      string     `gorm:"unique;size:20" json:"publicCode"`
	Name            string     `gorm:"not null" json:"name"`
	Pax             int        `gorm:"not null" json:"pax"`
	Status          string     `gorm:"not null;default:'DRAFT';index" json:"status"`
	EstEndTime      *time.Time `json:"estEndTime"`
	DrinksCollected int        `gorm:"not null;default:0" json:"drinksCollected"`

	Seats    []VisitSeat `gorm:"foreignKey:VisitId;constraint:OnDelete:CASCADE" json:"seats,omitempty"`
	Payments []Payment   `gorm:"foreignKey:VisitId" json:"payments,omitempty"`
}

type CreateVisitInput struct {
	Name string `json:"name" validate:"required,max=120"`
	Pax  int    `json:"pax" validate:"required,min=1,max=50"`
}

type StartVisitInput struct {
	Hours         int    `json:"hours" validate:"required,min=1,max=24"`
	BufferMinutes *int   `json:"bufferMinutes" validate:"omitempty,min=0,max=120"`
	Method        string `json:"method" validate:"required,oneof=CASH PAYNOW"`
}

type ExtendSeatsInput struct {
	SeatNos  []int  `json:"seatNos" validate:"required,min=1,dive,min=1"`
	AddHours int    `json:"addHours" validate:"required,min=1,max=24"`
	Method   string `json:"method" validate:"required,oneof=CASH PAYNOW"`
}

type CollectDrinkInput struct {
	Qty int `json:"qty" validate:"required,min=1"`
}

type EndSeatInput struct {
	SeatNo int `json:"seatNo" validate:"required,min=1"`
}

// VisitView is the dashboard projection of a visit with derived fields.
type VisitView struct {
	Visit
	PeopleLeft   int        `json:"peopleLeft"`
	GroupEndTime *time.Time `json:"groupEndTime"`
}
