package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"gym_manager/model"

	"github.com/redis/go-redis/v9"
)

// Feed đẩy kết quả check-in realtime cho console nhân viên (mỗi chi nhánh
// một channel). Publish lỗi không được phép ảnh hưởng kết quả check-in.
type Feed interface {
	PublishCheckIn(branchID uint, event FeedEvent)
}

type FeedEvent struct {
	TicketCode string            `json:"ticketCode"`
	Method     string            `json:"method"`
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	TicketInfo *model.TicketInfo `json:"ticketInfo,omitempty"`
}

func FeedChannel(branchID uint) string {
	return fmt.Sprintf("checkin:branch:%d", branchID)
}

type redisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) Feed {
	return &redisFeed{client: client}
}

func (f *redisFeed) PublishCheckIn(branchID uint, event FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Lỗi marshal feed event: %v", err)
		return
	}
	if err := f.client.Publish(context.Background(), FeedChannel(branchID), payload).Err(); err != nil {
		log.Printf("Lỗi publish feed chi nhánh %d: %v", branchID, err)
	}
}
