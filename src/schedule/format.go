package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
	datetime "github.com/ivkamenev/school_schedule_bot/src/utils/date_time"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var weekdayNames = map[string]string{
	"Mon": "понедельник",
	"Tue": "вторник",
	"Wed": "среда",
	"Thu": "четверг",
	"Fri": "пятница",
	"Sat": "суббота",
	"Sun": "воскресенье",
}

var titleCaser = cases.Title(language.Russian)

func WeekdayName(symbol string) string {
	return titleCaser.String(weekdayNames[symbol])
}

func FormatLessons(lessons []entities.Lesson) string {
	if len(lessons) == 0 {
		return "Пар нет 🎉"
	}
	builder := strings.Builder{}
	for i, lesson := range lessons {
		if i > 0 {
			builder.WriteByte('\n')
		}
		builder.WriteString(fmt.Sprintf("%d. %s — %s", i+1, lesson.Time, lesson.Subject))
		extra := []string{}
		if lesson.Teacher != "" {
			extra = append(extra, lesson.Teacher)
		}
		if lesson.Room != "" {
			extra = append(extra, "ауд. "+lesson.Room)
		}
		if len(extra) > 0 {
			builder.WriteString(" (" + strings.Join(extra, ", ") + ")")
		}
	}
	return builder.String()
}

// FormatDay renders one day of a group's schedule with a dated header.
func FormatDay(view entities.ScheduleView, day time.Time, dateLayout string) string {
	symbol := datetime.WeekdaySymbol(day)
	header := fmt.Sprintf("%s (%s)", WeekdayName(symbol), day.Format(dateLayout))
	return header + "\n" + FormatLessons(view[symbol])
}

// FormatWeek renders seven days starting from monday.
func FormatWeek(view entities.ScheduleView, monday time.Time) string {
	chunks := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		chunks = append(chunks, FormatDay(view, monday.AddDate(0, 0, i), "02.01"))
	}
	return strings.Join(chunks, "\n\n")
}

func FormatExams(exams entities.ExamView, title string) string {
	if len(exams) == 0 {
		return title + "\nНет запланированных контрольных."
	}
	parts := []string{title}
	for i, exam := range exams {
		line := fmt.Sprintf("%d. %s", i+1, exam.Date)
		if exam.Time != "" {
			line += " — " + exam.Time
		}
		line += ": " + exam.Subject
		if exam.Note != "" {
			line += "\n   ⤷ " + exam.Note
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

// ChangeAlert is the message subscribers get when a group's content changes.
func ChangeAlert(group string, at time.Time) string {
	return fmt.Sprintf(
		"🔔 Обновления в расписании для группы %s\n• Время: %s\nОткройте меню бота: /today /week /exams",
		group, at.Format("02.01.2006 15:04"),
	)
}
