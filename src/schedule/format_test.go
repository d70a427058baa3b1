package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

func TestFormatLessons(t *testing.T) {
	if got := FormatLessons(nil); got != "Пар нет 🎉" {
		t.Errorf("FormatLessons(nil) = %q", got)
	}

	lessons := []entities.Lesson{
		{Time: "08:00-08:45", Subject: "Алгебра", Teacher: "Петров", Room: "204"},
		{Time: "09:00-09:45", Subject: "Физика"},
	}
	want := "1. 08:00-08:45 — Алгебра (Петров, ауд. 204)\n2. 09:00-09:45 — Физика"
	if got := FormatLessons(lessons); got != want {
		t.Errorf("FormatLessons = %q, want %q", got, want)
	}
}

func TestFormatDayUsesTitledWeekday(t *testing.T) {
	// 2026-03-02 is a Monday.
	day := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)
	view := entities.ScheduleView{"Mon": {{Time: "08:00-08:45", Subject: "Алгебра"}}}

	got := FormatDay(view, day, "02.01.2006")

	if !strings.HasPrefix(got, "Понедельник (02.03.2026)\n") {
		t.Errorf("FormatDay header = %q", got)
	}
	if !strings.Contains(got, "Алгебра") {
		t.Errorf("FormatDay lost the lesson list: %q", got)
	}
}

func TestFormatExams(t *testing.T) {
	if got := FormatExams(nil, "📝 Контрольные"); got != "📝 Контрольные\nНет запланированных контрольных." {
		t.Errorf("FormatExams(nil) = %q", got)
	}

	exams := entities.ExamView{
		{Date: "2026-03-10", Time: "09:00", Subject: "Геометрия", Note: "перенос"},
		{Date: "2026-04-02", Subject: "Физика"},
	}
	got := FormatExams(exams, "📝 Контрольные")
	want := "📝 Контрольные\n1. 2026-03-10 — 09:00: Геометрия\n   ⤷ перенос\n2. 2026-04-02: Физика"
	if got != want {
		t.Errorf("FormatExams = %q, want %q", got, want)
	}
}
