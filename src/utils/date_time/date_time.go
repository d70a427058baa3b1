package datetime

import (
	"strconv"
	"strings"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

const ISO_DATE_LAYOUT = "2006-01-02"

func ParseISODate(raw string) (time.Time, error) {
	return time.Parse(ISO_DATE_LAYOUT, strings.TrimSpace(raw))
}

// StartMinutes parses the start of a "HH:MM-HH:MM" lesson time into minutes
// since midnight. Malformed values sort first as minute 0.
func StartMinutes(lessonTime string) int {
	start, _, _ := strings.Cut(lessonTime, "-")
	hours, minutes, found := strings.Cut(start, ":")
	if !found {
		return 0
	}
	hh, err := strconv.Atoi(strings.TrimSpace(hours))
	if err != nil {
		return 0
	}
	mm, err := strconv.Atoi(strings.TrimSpace(minutes))
	if err != nil {
		return 0
	}
	return hh*60 + mm
}

func MondayOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -offset)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, day.Location())
}

// WeekdaySymbol returns the sheet symbol ("Mon".."Sun") for a calendar day.
func WeekdaySymbol(day time.Time) string {
	return entities.Weekdays[(int(day.Weekday())+6)%7]
}

// WeekRangeString formats the Monday..Sunday span as "02.01–08.01".
func WeekRangeString(monday time.Time) string {
	return monday.Format("02.01") + "–" + monday.AddDate(0, 0, 6).Format("02.01")
}
