package schedule

import (
	"reflect"
	"testing"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

var testGroups = []string{"10", "11"}

func TestAggregateScheduleFiltersAndSorts(t *testing.T) {
	rows := []map[string]string{
		{"group": "10", "weekday": "Mon", "time": "09:00-09:45", "subject": "Физика", "teacher": "Иванова", "room": "204"},
		{"group": "10", "weekday": "Mon", "time": "08:00-08:45", "subject": "Алгебра"},
		{"group": "12", "weekday": "Mon", "time": "08:00-08:45", "subject": "Химия"},
		{"group": "10", "weekday": "Funday", "time": "08:00-08:45", "subject": "Химия"},
		{"group": "10", "weekday": "Tue", "time": "", "subject": "Химия"},
		{"group": "10", "weekday": "Tue", "time": "08:00-08:45", "subject": ""},
		{"group": "11", "weekday": "Fri", "time": "10:00-10:45", "subject": "История"},
	}

	views := AggregateSchedule(rows, testGroups)

	wantMonday := []entities.Lesson{
		{Time: "08:00-08:45", Subject: "Алгебра"},
		{Time: "09:00-09:45", Subject: "Физика", Teacher: "Иванова", Room: "204"},
	}
	if !reflect.DeepEqual(views["10"]["Mon"], wantMonday) {
		t.Errorf("AggregateSchedule Monday = %v, want %v", views["10"]["Mon"], wantMonday)
	}
	if len(views["10"]["Tue"]) != 0 {
		t.Errorf("rows with empty time or subject survived: %v", views["10"]["Tue"])
	}
	if _, ok := views["12"]; ok {
		t.Error("untracked group 12 produced a view")
	}
	if len(views["11"]["Fri"]) != 1 {
		t.Errorf("group 11 Friday = %v, want one lesson", views["11"]["Fri"])
	}
}

func TestAggregateScheduleKeepsSheetOrderAtEqualTimes(t *testing.T) {
	rows := []map[string]string{
		{"group": "10", "weekday": "Wed", "time": "08:00-08:45", "subject": "Первый"},
		{"group": "10", "weekday": "Wed", "time": "08:00-08:45", "subject": "Второй"},
	}
	views := AggregateSchedule(rows, testGroups)
	lessons := views["10"]["Wed"]
	if len(lessons) != 2 || lessons[0].Subject != "Первый" || lessons[1].Subject != "Второй" {
		t.Errorf("lessons at equal times reordered: %v", lessons)
	}
}

func TestAggregateExamsDropsUnparseableDates(t *testing.T) {
	rows := []map[string]string{
		{"group": "10", "date": "2026-03-10", "subject": "Геометрия", "time": "09:00"},
		{"group": "10", "date": "10.03.2026", "subject": "Физика"},
		{"group": "10", "date": "2026-03-01", "subject": "Русский"},
		{"group": "12", "date": "2026-03-01", "subject": "Химия"},
	}

	views := AggregateExams(rows, testGroups)

	want := entities.ExamView{
		{Date: "2026-03-01", Subject: "Русский"},
		{Date: "2026-03-10", Time: "09:00", Subject: "Геометрия"},
	}
	if !reflect.DeepEqual(views["10"], want) {
		t.Errorf("AggregateExams = %v, want %v", views["10"], want)
	}
	if _, ok := views["12"]; ok {
		t.Error("untracked group 12 produced exams")
	}
}

func TestExamsForRangeInclusiveBounds(t *testing.T) {
	exams := entities.ExamView{
		{Date: "2026-03-01", Subject: "A"},
		{Date: "2026-03-02", Subject: "B"},
		{Date: "2026-03-08", Subject: "C"},
		{Date: "2026-03-09", Subject: "D"},
	}

	got := ExamsForRange(exams, "2026-03-02", "2026-03-08")

	want := entities.ExamView{
		{Date: "2026-03-02", Subject: "B"},
		{Date: "2026-03-08", Subject: "C"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExamsForRange = %v, want %v", got, want)
	}
}
