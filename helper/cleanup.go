package helper

import (
	"log"
	"time"

	"github.com/0mgABear/crowdwatch/constants"
	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/model"

	"github.com/robfig/cron/v3"
)

var cleanupScheduler *cron.Cron

// StartDraftCleanupScheduler sweeps abandoned DRAFT visits every 30 minutes.
// Only drafts are ever removed; an ACTIVE or CLOSED visit is never touched.
func StartDraftCleanupScheduler() {
	cleanupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := cleanupScheduler.AddFunc("*/30 * * * *", cleanupStaleDrafts)
	if err != nil {
		log.Printf("failed to start draft cleanup scheduler: %v", err)
		return
	}

	cleanupScheduler.Start()
	log.Println("Draft cleanup scheduler started (every 30 minutes)")
}

func cleanupStaleDrafts() {
	cutoff := time.Now().Add(-constants.DRAFT_TTL_HOURS * time.Hour)
	result := database.DB.
		Where("status = ? AND created_at < ?", constants.VISIT_DRAFT, cutoff).
		Delete(&model.Visit{})

	if result.Error != nil {
		log.Printf("failed to sweep stale drafts: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Removed %d stale draft visits", result.RowsAffected)
	}
}

func StopDraftCleanupScheduler() {
	if cleanupScheduler != nil {
		cleanupScheduler.Stop()
		log.Println("Draft cleanup scheduler stopped")
	}
}
