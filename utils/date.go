package utils

import "time"

// DayRange trả về [00:00:00, 23:59:59] của ngày theo timezone truyền vào.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, loc)
	return start, end
}

// LocalDate định dạng ngày YYYY-MM-DD giờ địa phương (dùng cho daypass token).
func LocalDate(t time.Time) string {
	return t.In(AppLocation()).Format("2006-01-02")
}

// AppLocation cố định ICT; toàn bộ mốc ngày trong hệ thống tính theo múi này.
func AppLocation() *time.Location {
	return time.FixedZone("ICT", 7*3600)
}
