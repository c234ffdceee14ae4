package util

import (
	"fmt"
	"time"
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// BucketOf 计算时间所在的 (星期, 小时) 桶，统一按 UTC
func BucketOf(t time.Time) (dayOfWeek int, hourOfDay int) {
	u := t.UTC()
	return int(u.Weekday()), u.Hour()
}

// WeekdayName 0 为周日
func WeekdayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[dayOfWeek]
}

// FormatClock 12 小时制，例如 9:00 AM、12:30 PM
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}
