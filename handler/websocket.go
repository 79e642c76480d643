package handler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/0mgABear/crowdwatch/database"
	"github.com/0mgABear/crowdwatch/helper"

	"github.com/gofiber/contrib/websocket"
)

var (
	dashboardClients = make(map[*websocket.Conn]bool)
	dashboardMutex   sync.Mutex
)

type dashboardSnapshot struct {
	Type              string `json:"type"`
	TotalPeopleInside int    `json:"totalPeopleInside"`
	ActiveGroups      int    `json:"activeGroups"`
}

// DashboardWebsocket streams change notifications to connected dashboards.
// Each client gets an occupancy snapshot on connect, then every event from
// the Redis channel is fanned out as-is; clients refetch what they render.
func DashboardWebsocket(c *websocket.Conn) {
	dashboardMutex.Lock()
	dashboardClients[c] = true
	total := len(dashboardClients)
	dashboardMutex.Unlock()
	log.Printf("New dashboard WS connection. Total connections: %d", total)

	defer func() {
		dashboardMutex.Lock()
		delete(dashboardClients, c)
		dashboardMutex.Unlock()
		c.Close()
	}()

	sendSnapshot(c)

	// Keep the connection until the client goes away; fan-out happens in
	// StartDashboardFeed.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func sendSnapshot(c *websocket.Conn) {
	visits, err := helper.LoadActiveVisits(database.DB)
	if err != nil {
		log.Printf("failed to load snapshot for dashboard WS: %v", err)
		return
	}
	now := time.Now()
	snap := dashboardSnapshot{
		Type:              "SNAPSHOT",
		TotalPeopleInside: helper.TotalPeopleInside(visits, now),
		ActiveGroups:      len(visits),
	}
	if err := c.WriteJSON(snap); err != nil {
		log.Printf("failed to send dashboard snapshot: %v", err)
	}
}

// StartDashboardFeed subscribes to the Redis event channel once and relays
// every payload to all connected dashboard clients.
func StartDashboardFeed() {
	go func() {
		pubsub := helper.Redis().Subscribe(context.Background(), helper.DashboardChannel)
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			payload := []byte(msg.Payload)

			dashboardMutex.Lock()
			for conn := range dashboardClients {
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					conn.Close()
					delete(dashboardClients, conn)
				}
			}
			dashboardMutex.Unlock()
		}
	}()
	log.Println("Dashboard feed started")
}
