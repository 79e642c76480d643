package model

import "time"

// VisitSeat is one person-slot within a visit. Rows are created lazily the
// first time a partial operation needs them; (visit_id, seat_no) is unique.
// A seat with a nil EndTime is treated as open (always active).
type VisitSeat struct {
	DTO
	VisitId uint       `gorm:"not null;uniqueIndex:idx_visit_seat_no" json:"visitId"`
	SeatNo  int        `gorm:"not null;uniqueIndex:idx_visit_seat_no" json:"seatNo"`
	EndTime *time.Time `json:"endTime"`

	Visit Visit `gorm:"foreignKey:VisitId" json:"-"`
}
