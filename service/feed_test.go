package service

import (
	"encoding/json"
	"testing"
	"time"

	"gym_manager/constants"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedChannelName(t *testing.T) {
	assert.Equal(t, "checkin:branch:7", FeedChannel(7))
}

func TestRedisFeedPublishesOnBranchChannel(t *testing.T) {
	client, mock := redismock.NewClientMock()
	feed := NewRedisFeed(client)

	event := FeedEvent{
		TicketCode: "T001",
		Method:     constants.METHOD_QR_CHUNG,
		Status:     constants.CHECKIN_SUCCESS,
		Message:    constants.MSG_CHECKIN_OK,
		Timestamp:  time.Date(2026, 8, 29, 9, 30, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectPublish(FeedChannel(3), payload).SetVal(1)

	feed.PublishCheckIn(3, event)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisFeedPublishErrorDoesNotPanic(t *testing.T) {
	client, mock := redismock.NewClientMock()
	feed := NewRedisFeed(client)

	event := FeedEvent{
		TicketCode: "T001",
		Method:     constants.METHOD_MANUAL,
		Status:     constants.CHECKIN_FAILED,
		Message:    constants.MSG_TICKET_LOCKED,
		Timestamp:  time.Date(2026, 8, 29, 9, 31, 0, 0, time.UTC),
	}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	mock.ExpectPublish(FeedChannel(3), payload).SetErr(assert.AnError)

	// publish lỗi chỉ được log, không ảnh hưởng caller
	feed.PublishCheckIn(3, event)

	assert.NoError(t, mock.ExpectationsWereMet())
}
