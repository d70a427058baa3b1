package entities

// Weekday symbols as they appear in the schedule sheet, week starts Monday.
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func IsWeekday(symbol string) bool {
	for _, wd := range Weekdays {
		if wd == symbol {
			return true
		}
	}
	return false
}

type Lesson struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Teacher string `json:"teacher,omitempty"`
	Room    string `json:"room,omitempty"`
}

// ScheduleView maps a weekday symbol to the ordered lessons of one group.
// It is rebuilt from sheet rows on every read, never mutated in place.
type ScheduleView map[string][]Lesson

type Exam struct {
	Date    string `json:"date"`
	Time    string `json:"time,omitempty"`
	Subject string `json:"subject"`
	Note    string `json:"note,omitempty"`
}

type ExamView []Exam
