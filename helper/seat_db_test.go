package helper

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Visit{}, &model.VisitSeat{}, &model.Payment{}, &model.Product{}))
	return db
}

func TestMaterializeSeatsIdempotent(t *testing.T) {
	db := openTestDB(t)

	now := time.Now().Truncate(time.Second)
	est := now.Add(2 * time.Hour)
	visit := model.Visit{PublicCode: "VIS-mat00001", Name: "Tan", Pax: 3, Status: constants.VISIT_ACTIVE, EstEndTime: &est}
	require.NoError(t, db.Create(&visit).Error)

	seats, err := MaterializeSeats(db, visit, now)
	require.NoError(t, err)
	require.Len(t, seats, 3)

	// Extend seat 2, then materialize again: the second pass must neither add
	// rows nor reset the extended clock back to the group estimate.
	extended := now.Add(5 * time.Hour)
	require.NoError(t, db.Model(&model.VisitSeat{}).
		Where("visit_id = ? AND seat_no = ?", visit.ID, 2).
		Update("end_time", extended).Error)

	again, err := MaterializeSeats(db, visit, now)
	require.NoError(t, err)
	require.Len(t, again, 3)

	var count int64
	require.NoError(t, db.Model(&model.VisitSeat{}).Where("visit_id = ?", visit.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	require.NotNil(t, again[1].EndTime)
	assert.WithinDuration(t, extended, *again[1].EndTime, time.Second)
	require.NotNil(t, again[0].EndTime)
	assert.WithinDuration(t, est, *again[0].EndTime, time.Second)
	require.NotNil(t, again[2].EndTime)
	assert.WithinDuration(t, est, *again[2].EndTime, time.Second)
}

func TestDrinksServedCountsVisitStartDay(t *testing.T) {
	db := openTestDB(t)

	start, end := DayWindow(time.Now())

	earlier := model.Visit{PublicCode: "VIS-drk00001", Name: "Lim", Pax: 2, Status: constants.VISIT_CLOSED, DrinksCollected: 2}
	earlier.CreatedAt = start.Add(-2 * time.Hour)
	require.NoError(t, db.Create(&earlier).Error)

	today := model.Visit{PublicCode: "VIS-drk00002", Name: "Goh", Pax: 4, Status: constants.VISIT_ACTIVE, DrinksCollected: 3}
	today.CreatedAt = start.Add(time.Hour)
	require.NoError(t, db.Create(&today).Error)

	served, err := DrinksServed(db, start, end)
	require.NoError(t, err)
	assert.Equal(t, int64(3), served)
}
