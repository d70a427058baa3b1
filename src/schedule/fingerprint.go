package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ivkamenev/school_schedule_bot/src/entities"
)

type groupSnapshot struct {
	Schedule entities.ScheduleView `json:"schedule"`
	Exams    entities.ExamView     `json:"exams"`
}

// Fingerprint digests one group's schedule and exams. encoding/json writes
// map keys in sorted order, so equal content always produces an equal
// digest regardless of how the views were assembled.
func Fingerprint(scheduleView entities.ScheduleView, examView entities.ExamView) string {
	if scheduleView == nil {
		scheduleView = entities.ScheduleView{}
	}
	if examView == nil {
		examView = entities.ExamView{}
	}
	blob, err := json.Marshal(groupSnapshot{Schedule: scheduleView, Exams: examView})
	if err != nil {
		// Views contain only strings and slices, marshalling cannot fail.
		panic(err)
	}
	digest := sha256.Sum256(blob)
	return hex.EncodeToString(digest[:])
}
