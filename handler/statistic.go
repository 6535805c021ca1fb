package handler

import (
	"errors"
	"time"

	"gym_manager/constants"
	"gym_manager/database"
	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetOverviewStats trả số liệu tổng quan cho dashboard của tenant.
// Platform admin xem được toàn hệ thống.
func GetOverviewStats(c *fiber.Ctx) error {
	claim, isPlatformAdmin, isOwner, isStaff := helper.GetInfoAccountFromToken(c)
	if !isPlatformAdmin && !isOwner && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB
	scope := helper.ScopeFromClaim(claim)

	type Stats struct {
		Branches      int64 `json:"branches"`
		Customers     int64 `json:"customers"`
		ActiveTickets int64 `json:"activeTickets"`

		TodayCheckIns  int64   `json:"todayCheckIns"`
		TodayFailed    int64   `json:"todayFailed"`
		TodayManual    int64   `json:"todayManual"`
		CheckInsGrowth float64 `json:"checkInsGrowth"` // %
	}

	var stats Stats

	loc := utils.AppLocation()
	todayStart, todayEnd := utils.DayRange(time.Now().In(loc), loc)

	branchQ := db.Model(&model.Branch{})
	customerQ := db.Model(&model.Customer{})
	ticketQ := db.Model(&model.Ticket{}).Where("status = ? AND remaining_uses > 0", constants.TICKET_ACTIVE)
	if scope.TenantID != nil {
		branchQ = branchQ.Where("tenant_id = ?", *scope.TenantID)
		customerQ = customerQ.Where("tenant_id = ?", *scope.TenantID)
		ticketQ = ticketQ.Where("tenant_id = ?", *scope.TenantID)
	}
	branchQ.Count(&stats.Branches)
	customerQ.Count(&stats.Customers)
	ticketQ.Count(&stats.ActiveTickets)

	// Log check-in không mang tenant_id trực tiếp, lọc qua branch.
	countLogs := func(start, end time.Time, status string, manualOnly bool) int64 {
		q := db.Model(&model.CheckInLog{}).
			Where("timestamp BETWEEN ? AND ?", start, end)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if manualOnly {
			q = q.Where("is_manual_by_staff = ?", true)
		}
		if scope.TenantID != nil {
			q = q.Where("branch_id IN (?)",
				db.Model(&model.Branch{}).Select("id").Where("tenant_id = ?", *scope.TenantID))
		}
		var n int64
		q.Count(&n)
		return n
	}

	stats.TodayCheckIns = countLogs(todayStart, todayEnd, constants.CHECKIN_SUCCESS, false)
	stats.TodayFailed = countLogs(todayStart, todayEnd, constants.CHECKIN_FAILED, false)
	stats.TodayManual = countLogs(todayStart, todayEnd, "", true)

	yesterdayStart := todayStart.AddDate(0, 0, -1)
	yesterdayEnd := todayEnd.AddDate(0, 0, -1)
	yesterdayCheckIns := countLogs(yesterdayStart, yesterdayEnd, constants.CHECKIN_SUCCESS, false)

	stats.CheckInsGrowth = utils.CalculateGrowth(float64(stats.TodayCheckIns), float64(yesterdayCheckIns))

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
