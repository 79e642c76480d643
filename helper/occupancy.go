package helper

import (
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"

	"gorm.io/gorm"
)

// TotalPeopleInside sums people remaining over the given visits, counting
// only ACTIVE ones. Derived on every call; nothing is cached.
func TotalPeopleInside(visits []model.Visit, now time.Time) int {
	total := 0
	for _, v := range visits {
		if v.Status != constants.VISIT_ACTIVE {
			continue
		}
		total += PeopleRemaining(v, now)
	}
	return total
}

// LoadActiveVisits fetches ACTIVE visits with their seat rows, ordered the
// way the dashboard shows them (soonest group clock first).
func LoadActiveVisits(db *gorm.DB) ([]model.Visit, error) {
	var visits []model.Visit
	err := db.
		Preload("Seats", func(q *gorm.DB) *gorm.DB { return q.Order("seat_no") }).
		Where("status = ?", constants.VISIT_ACTIVE).
		Order("est_end_time").
		Find(&visits).Error
	if err != nil {
		return nil, err
	}
	return visits, nil
}
