package schedule

import (
	"sort"
	"strings"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
	datetime "github.com/ivkamenev/school_schedule_bot/src/utils/date_time"
)

// Aggregate turns raw sheet records into per-group views. Rows outside the
// tracked groups and rows with a missing weekday, time, subject or an
// unparseable exam date are dropped one by one, never failing the whole
// aggregation.
func Aggregate(scheduleRows, examRows []map[string]string, groups []string) (map[string]entities.ScheduleView, map[string]entities.ExamView) {
	return AggregateSchedule(scheduleRows, groups), AggregateExams(examRows, groups)
}

func AggregateSchedule(rows []map[string]string, groups []string) map[string]entities.ScheduleView {
	views := map[string]entities.ScheduleView{}
	for _, row := range rows {
		group := strings.TrimSpace(row["group"])
		weekday := strings.TrimSpace(row["weekday"])
		lessonTime := strings.TrimSpace(row["time"])
		subject := strings.TrimSpace(row["subject"])
		if !containsGroup(groups, group) || !entities.IsWeekday(weekday) || lessonTime == "" || subject == "" {
			continue
		}
		lesson := entities.Lesson{
			Time:    lessonTime,
			Subject: subject,
			Teacher: strings.TrimSpace(row["teacher"]),
			Room:    strings.TrimSpace(row["room"]),
		}
		view, ok := views[group]
		if !ok {
			view = entities.ScheduleView{}
			views[group] = view
		}
		view[weekday] = append(view[weekday], lesson)
	}

	for _, view := range views {
		for _, lessons := range view {
			// Stable, so lessons at identical times keep their sheet order
			// and do not churn the fingerprints.
			sort.SliceStable(lessons, func(i, j int) bool {
				return datetime.StartMinutes(lessons[i].Time) < datetime.StartMinutes(lessons[j].Time)
			})
		}
	}
	return views
}

func AggregateExams(rows []map[string]string, groups []string) map[string]entities.ExamView {
	views := map[string]entities.ExamView{}
	for _, row := range rows {
		group := strings.TrimSpace(row["group"])
		date := strings.TrimSpace(row["date"])
		subject := strings.TrimSpace(row["subject"])
		if !containsGroup(groups, group) || date == "" || subject == "" {
			continue
		}
		parsed, err := datetime.ParseISODate(date)
		if err != nil {
			continue
		}
		views[group] = append(views[group], entities.Exam{
			Date:    parsed.Format(datetime.ISO_DATE_LAYOUT),
			Time:    strings.TrimSpace(row["time"]),
			Subject: subject,
			Note:    strings.TrimSpace(row["note"]),
		})
	}

	for _, view := range views {
		sort.SliceStable(view, func(i, j int) bool {
			if view[i].Date != view[j].Date {
				return view[i].Date < view[j].Date
			}
			return view[i].Time < view[j].Time
		})
	}
	return views
}

// ExamsForRange keeps exams with start <= date <= end, both ends inclusive.
func ExamsForRange(exams entities.ExamView, start, end string) entities.ExamView {
	filtered := entities.ExamView{}
	for _, exam := range exams {
		if exam.Date >= start && exam.Date <= end {
			filtered = append(filtered, exam)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Date != filtered[j].Date {
			return filtered[i].Date < filtered[j].Date
		}
		return filtered[i].Time < filtered[j].Time
	})
	return filtered
}

func containsGroup(groups []string, group string) bool {
	for _, tracked := range groups {
		if tracked == group {
			return true
		}
	}
	return false
}
