package helper

import (
	"sort"
	"time"

	"github.com/0mgABear/crowdwatch/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seat ledger. A visit starts with no seat rows and runs off its group clock
// (EstEndTime); the first partial operation materializes one row per pax and
// from then on the per-seat end times are authoritative.

// IsSeatActive reports whether a seat still counts as inside. A nil EndTime
// means an open seat with no expiry yet; it is always active.
func IsSeatActive(s model.VisitSeat, now time.Time) bool {
	if s.EndTime == nil {
		return true
	}
	return s.EndTime.After(now)
}

// ActiveSeats returns the active subset ordered by seat number.
func ActiveSeats(seats []model.VisitSeat, now time.Time) []model.VisitSeat {
	var active []model.VisitSeat
	for _, s := range seats {
		if IsSeatActive(s, now) {
			active = append(active, s)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].SeatNo < active[j].SeatNo })
	return active
}

// PeopleRemaining is the canonical "people still inside" count for a visit:
// the active-seat count once seat rows exist, otherwise the full pax.
func PeopleRemaining(visit model.Visit, now time.Time) int {
	if len(visit.Seats) > 0 {
		return len(ActiveSeats(visit.Seats, now))
	}
	return visit.Pax
}

// GroupEndTime is the display clock for the whole visit: the latest active
// seat expiry when seats exist, else the group estimate.
func GroupEndTime(visit model.Visit, now time.Time) *time.Time {
	active := ActiveSeats(visit.Seats, now)
	if len(active) == 0 {
		return visit.EstEndTime
	}
	latest := active[0].EndTime
	for _, s := range active[1:] {
		if s.EndTime == nil {
			continue
		}
		if latest == nil || s.EndTime.After(*latest) {
			latest = s.EndTime
		}
	}
	if latest == nil {
		return visit.EstEndTime
	}
	return latest
}

// BuildSeatRows produces the pax seat rows for a visit that has none yet, all
// sharing the group clock. A visit with no estimate gets now+1h so a row is
// never born without an expiry.
func BuildSeatRows(visit model.Visit, now time.Time) []model.VisitSeat {
	end := visit.EstEndTime
	if end == nil {
		fallback := now.Add(time.Hour)
		end = &fallback
	}
	rows := make([]model.VisitSeat, 0, visit.Pax)
	for i := 1; i <= visit.Pax; i++ {
		endCopy := *end
		rows = append(rows, model.VisitSeat{VisitId: visit.ID, SeatNo: i, EndTime: &endCopy})
	}
	return rows
}

// MaterializeSeats inserts the seat rows if absent, inside the caller's
// transaction. Insert-if-absent on (visit_id, seat_no): a concurrent call can
// never duplicate a row or clobber an already-extended end time. It returns
// the full seat set as persisted.
func MaterializeSeats(tx *gorm.DB, visit model.Visit, now time.Time) ([]model.VisitSeat, error) {
	rows := BuildSeatRows(visit, now)
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "visit_id"}, {Name: "seat_no"}},
		DoNothing: true,
	}).Create(&rows).Error; err != nil {
		return nil, err
	}

	var seats []model.VisitSeat
	if err := tx.Where("visit_id = ?", visit.ID).Order("seat_no").Find(&seats).Error; err != nil {
		return nil, err
	}
	return seats, nil
}

// ExtendedEndTime anchors an extension at max(current, now) so a lapsed seat
// buys time from the moment of purchase, never from its stale expiry.
func ExtendedEndTime(current *time.Time, now time.Time, addHours int) time.Time {
	anchor := now
	if current != nil && current.After(now) {
		anchor = *current
	}
	return anchor.Add(time.Duration(addHours) * time.Hour)
}
