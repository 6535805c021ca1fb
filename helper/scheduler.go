package helper

import (
	"log"
	"time"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/model"
	"gym_manager/utils"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"
)

var reportScheduler gocron.Scheduler
var cleanupScheduler *cron.Cron

// DailyCheckInSummary gom số liệu check-in ngày hôm trước cho từng tenant.
func DailyCheckInSummary() {
	log.Println("[CRON] DailyCheckInSummary triggered")

	db := database.DB
	loc := utils.AppLocation()
	yesterday := time.Now().In(loc).AddDate(0, 0, -1)
	start, end := utils.DayRange(yesterday, loc)

	var tenants []model.Tenant
	if err := db.Find(&tenants).Error; err != nil {
		log.Printf("Lỗi quét tenant: %v", err)
		return
	}

	for _, tenant := range tenants {
		var success, failed int64
		db.Model(&model.CheckInLog{}).
			Where("tenant_id = ? AND status = ? AND timestamp BETWEEN ? AND ?", tenant.ID, constants.CHECKIN_SUCCESS, start, end).
			Count(&success)
		db.Model(&model.CheckInLog{}).
			Where("tenant_id = ? AND status = ? AND timestamp BETWEEN ? AND ?", tenant.ID, constants.CHECKIN_FAILED, start, end).
			Count(&failed)

		if success > 0 || failed > 0 {
			log.Printf("[REPORT] %s %s: %d check-in thành công, %d thất bại",
				tenant.Slug, yesterday.Format("2006-01-02"), success, failed)
		}
	}
}

func StartReportScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(utils.AppLocation()),
	)
	if err != nil {
		log.Fatal(err)
	}

	reportScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(DailyCheckInSummary),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Check-in report scheduler started (00:05 ICT)")
}

func StopReportScheduler() {
	if reportScheduler != nil {
		_ = reportScheduler.Shutdown()
	}
}

func StartCleanupScheduler() {
	cleanupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// reset token hết hạn không cần giữ lại
	_, err := cleanupScheduler.AddFunc("*/5 * * * *", cleanupExpiredResetTokens)
	if err != nil {
		log.Printf("Lỗi khởi tạo cleanup scheduler: %v", err)
		return
	}

	cleanupScheduler.Start()
	log.Println("Cleanup scheduler started (5m)")
}

func cleanupExpiredResetTokens() {
	result := database.DB.
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetToken{})

	if result.Error != nil {
		log.Printf("Lỗi dọn reset token: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã xoá %d reset token hết hạn", result.RowsAffected)
	}
}
