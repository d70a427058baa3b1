package schedule

import (
	"testing"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

func sampleRows() ([]map[string]string, []map[string]string) {
	scheduleRows := []map[string]string{
		{"group": "10", "weekday": "Mon", "time": "08:00-08:45", "subject": "Алгебра", "teacher": "Петров"},
		{"group": "10", "weekday": "Mon", "time": "09:00-09:45", "subject": "Физика", "room": "204"},
		{"group": "10", "weekday": "Tue", "time": "08:00-08:45", "subject": "История"},
	}
	examRows := []map[string]string{
		{"group": "10", "date": "2026-03-10", "subject": "Геометрия", "time": "09:00"},
		{"group": "10", "date": "2026-04-02", "subject": "Физика"},
	}
	return scheduleRows, examRows
}

func TestFingerprintStableUnderRowShuffle(t *testing.T) {
	scheduleRows, examRows := sampleRows()
	scheduleViews, examViews := Aggregate(scheduleRows, examRows, testGroups)
	want := Fingerprint(scheduleViews["10"], examViews["10"])

	shuffledSchedule := []map[string]string{scheduleRows[2], scheduleRows[1], scheduleRows[0]}
	shuffledExams := []map[string]string{examRows[1], examRows[0]}
	scheduleViews, examViews = Aggregate(shuffledSchedule, shuffledExams, testGroups)
	got := Fingerprint(scheduleViews["10"], examViews["10"])

	if got != want {
		t.Errorf("fingerprint changed after row shuffle: %s != %s", got, want)
	}
}

func TestFingerprintSensitiveToContent(t *testing.T) {
	scheduleRows, examRows := sampleRows()
	scheduleViews, examViews := Aggregate(scheduleRows, examRows, testGroups)
	base := Fingerprint(scheduleViews["10"], examViews["10"])

	mutations := []func(schedule, exams []map[string]string){
		func(schedule, exams []map[string]string) { schedule[0]["subject"] = "Геометрия" },
		func(schedule, exams []map[string]string) { schedule[0]["teacher"] = "Сидорова" },
		func(schedule, exams []map[string]string) { schedule[1]["room"] = "305" },
		func(schedule, exams []map[string]string) { schedule[2]["time"] = "10:00-10:45" },
		func(schedule, exams []map[string]string) { exams[0]["date"] = "2026-03-11" },
		func(schedule, exams []map[string]string) { exams[1]["note"] = "перенос" },
	}
	for i, mutate := range mutations {
		scheduleRows, examRows := sampleRows()
		mutate(scheduleRows, examRows)
		scheduleViews, examViews := Aggregate(scheduleRows, examRows, testGroups)
		if got := Fingerprint(scheduleViews["10"], examViews["10"]); got == base {
			t.Errorf("mutation %d did not change the fingerprint", i)
		}
	}
}

func TestFingerprintNilViewsEqualEmptyViews(t *testing.T) {
	want := Fingerprint(entities.ScheduleView{}, entities.ExamView{})
	if got := Fingerprint(nil, nil); got != want {
		t.Errorf("Fingerprint(nil, nil) = %s, want %s", got, want)
	}
}
