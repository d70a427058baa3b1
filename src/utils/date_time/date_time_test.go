package datetime

import (
	"testing"
	"time"
)

func TestParseISODate(t *testing.T) {
	parsed, err := ParseISODate(" 2026-03-02 ")
	if err != nil {
		t.Fatalf("ParseISODate failed: %v", err)
	}
	if parsed.Format(ISO_DATE_LAYOUT) != "2026-03-02" {
		t.Errorf("ParseISODate = %s", parsed.Format(ISO_DATE_LAYOUT))
	}

	if _, err := ParseISODate("02.03.2026"); err == nil {
		t.Error("ParseISODate accepted a non-ISO date")
	}
}

func TestStartMinutes(t *testing.T) {
	cases := []struct {
		lessonTime string
		want       int
	}{
		{"08:00-08:45", 480},
		{"8:05-8:50", 485},
		{"09:00", 540},
		{"", 0},
		{"morning", 0},
		{"ab:cd-ef:gh", 0},
	}
	for _, c := range cases {
		if got := StartMinutes(c.lessonTime); got != c.want {
			t.Errorf("StartMinutes(%q) = %d, want %d", c.lessonTime, got, c.want)
		}
	}
}

func TestMondayOfWeek(t *testing.T) {
	// 2026-03-04 is a Wednesday, 2026-03-08 a Sunday.
	for _, day := range []time.Time{
		time.Date(2026, time.March, 2, 15, 30, 0, 0, time.UTC),
		time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 8, 23, 59, 0, 0, time.UTC),
	} {
		monday := MondayOfWeek(day)
		if monday.Format(ISO_DATE_LAYOUT) != "2026-03-02" {
			t.Errorf("MondayOfWeek(%s) = %s", day.Format(ISO_DATE_LAYOUT), monday.Format(ISO_DATE_LAYOUT))
		}
		if monday.Hour() != 0 || monday.Minute() != 0 {
			t.Errorf("MondayOfWeek did not truncate the time: %s", monday)
		}
	}
}

func TestWeekdaySymbol(t *testing.T) {
	if got := WeekdaySymbol(time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)); got != "Mon" {
		t.Errorf("WeekdaySymbol(monday) = %s", got)
	}
	if got := WeekdaySymbol(time.Date(2026, time.March, 8, 0, 0, 0, 0, time.UTC)); got != "Sun" {
		t.Errorf("WeekdaySymbol(sunday) = %s", got)
	}
}

func TestWeekRangeString(t *testing.T) {
	monday := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	if got := WeekRangeString(monday); got != "02.03–08.03" {
		t.Errorf("WeekRangeString = %s", got)
	}
}
