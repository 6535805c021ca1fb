package handler

import (
	"context"
	"strconv"
	"sync"

	"gym_manager/service"

	"github.com/gofiber/contrib/websocket"
)

var (
	feedClients = make(map[uint]map[*websocket.Conn]bool)
	feedMu      sync.Mutex
)

// CheckInFeedSocket stream kết quả check-in của một chi nhánh cho màn hình
// nhân viên. Mỗi chi nhánh một room, backed by Redis pub/sub.
func CheckInFeedSocket(c *websocket.Conn) {
	branchIdStr := c.Params("branchId")
	id64, _ := strconv.ParseUint(branchIdStr, 10, 64)
	branchId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		feedMu.Lock()
		if feedClients[branchId] != nil {
			delete(feedClients[branchId], c)
		}
		feedMu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	feedMu.Lock()
	if feedClients[branchId] == nil {
		feedClients[branchId] = make(map[*websocket.Conn]bool)
	}
	feedClients[branchId][c] = true
	feedMu.Unlock()

	// Sub kênh Redis của chi nhánh
	pubsub := redisClient.Subscribe(context.Background(), service.FeedChannel(branchId))
	defer pubsub.Close()

	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		feedMu.Lock()
		for conn := range feedClients[branchId] {
			// Client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(feedClients[branchId], conn)
			}
		}
		feedMu.Unlock()
	}
}
