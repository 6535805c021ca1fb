package handler

import (
	"gym_manager/config"
	"gym_manager/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	redisClient *redis.Client

	entStore       service.EntitlementStore
	auditRecorder  service.AuditRecorder
	checkinService *service.CheckInService
)

// InitServices nối store/audit/feed vào authorizer. Gọi sau database.ConnectDB.
func InitServices(db *gorm.DB) {
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
	})

	entStore = service.NewEntitlementStore(db)
	auditRecorder = service.NewAuditRecorder(db)
	checkinService = service.NewCheckInService(entStore, auditRecorder, service.NewRedisFeed(redisClient))
}
