package service

import (
	"time"

	"gym_manager/helper"
	"gym_manager/model"
	"gym_manager/utils"

	"gorm.io/gorm"
)

// AuditRecorder ghi CheckInLog append-only. Không có update/delete; xoá chỉ
// xảy ra khi xoá cả tenant (cascade ở tầng DB).
type AuditRecorder interface {
	Append(entry *model.CheckInLog) error
	List(scope helper.Scope, filter model.FilterCheckInLog) ([]model.CheckInLog, int64, error)
}

type gormAudit struct {
	db *gorm.DB
}

func NewAuditRecorder(db *gorm.DB) AuditRecorder {
	return &gormAudit{db: db}
}

func (a *gormAudit) Append(entry *model.CheckInLog) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	return a.db.Create(entry).Error
}

func (a *gormAudit) List(scope helper.Scope, filter model.FilterCheckInLog) ([]model.CheckInLog, int64, error) {
	query := a.db.Model(&model.CheckInLog{})
	if scope.Filtered() {
		query = query.Where("tenant_id = ?", *scope.TenantID)
	}
	if filter.BranchId > 0 {
		query = query.Where("branch_id = ?", filter.BranchId)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		loc := utils.AppLocation()
		day, err := time.ParseInLocation("2006-01-02", filter.Date, loc)
		if err == nil {
			start, end := utils.DayRange(day, loc)
			query = query.Where("timestamp BETWEEN ? AND ?", start, end)
		}
	}

	var total int64
	query.Count(&total)

	var logs []model.CheckInLog
	query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	if err := query.Order("timestamp desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
