package helper

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/0mgABear/crowdwatch/config"

	"github.com/redis/go-redis/v9"
)

// DashboardChannel carries change notifications for every successful
// mutation; the websocket feed and any other reader subscribe to it and
// recompute their views independently. Delivery is best-effort after commit.
const DashboardChannel = "dashboard:events"

const (
	EventVisitChanged = "VISIT_CHANGED"
	EventSeatChanged  = "SEAT_CHANGED"
	EventDrinkChanged = "DRINK_CHANGED"
	EventSaleCreated  = "SALE_CREATED"
)

type DashboardEvent struct {
	Type    string    `json:"type"`
	VisitId uint      `json:"visitId,omitempty"`
	At      time.Time `json:"at"`
}

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// Redis returns the shared client, creating it on first use. The feed
// goroutine and publishing handlers race to be first, so creation is
// once-guarded.
func Redis() *redis.Client {
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
		})
	})
	return redisClient
}

// PublishEvent pushes a change notification. Failures are logged and
// swallowed; the mutation has already committed and must not be failed for a
// feed hiccup.
func PublishEvent(eventType string, visitId uint) {
	event := DashboardEvent{Type: eventType, VisitId: visitId, At: time.Now()}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal dashboard event: %v", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := Redis().Publish(ctx, DashboardChannel, payload).Err(); err != nil {
		log.Printf("failed to publish dashboard event: %v", err)
	}
}
