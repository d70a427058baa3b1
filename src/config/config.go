package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ivkamenev/school_schedule_bot/src/logging"
)

const DEFAULT_WATCH_INTERVAL = 60 * time.Second

// Config is read once at startup and never mutated afterwards. Every
// component receives it (or the part it needs) through its constructor.
type Config struct {
	BotToken      string
	SpreadsheetId string

	CredsJsonPath    string
	CredsJsonContent string

	ScheduleSheet string
	ExamsSheet    string
	SubsSheet     string

	Groups        []string
	WatchInterval time.Duration
	Location      *time.Location

	TasksDbPath string

	admins      map[int64]struct{}
	superadmins map[int64]struct{}
}

func Load() (*Config, error) {
	cfg := &Config{
		BotToken:         os.Getenv("BOT_TOKEN"),
		SpreadsheetId:    firstNonEmpty(os.Getenv("SPREADSHEET_ID"), os.Getenv("GSHEET_ID")),
		CredsJsonPath:    os.Getenv("GOOGLE_CREDS_JSON_PATH"),
		CredsJsonContent: os.Getenv("GOOGLE_CREDS_JSON_CONTENT"),
		ScheduleSheet:    envOrDefault("GS_SCHEDULE_SHEET", "schedule"),
		ExamsSheet:       envOrDefault("GS_EXAMS_SHEET", "exams"),
		SubsSheet:        envOrDefault("GS_SUBS_SHEET", "subs"),
		TasksDbPath:      envOrDefault("TASKS_DB_PATH", "tasks.db"),
	}

	if cfg.BotToken == "" {
		return nil, errors.New("BOT_TOKEN environment variable required")
	}
	if cfg.SpreadsheetId == "" {
		return nil, errors.New("SPREADSHEET_ID environment variable required")
	}
	if cfg.CredsJsonPath == "" && cfg.CredsJsonContent == "" {
		logging.Warn("google sheets credentials not provided, set GOOGLE_CREDS_JSON_PATH or GOOGLE_CREDS_JSON_CONTENT")
	}

	cfg.Groups = splitList(envOrDefault("GROUPS", "10,11"))
	if len(cfg.Groups) == 0 {
		return nil, errors.New("GROUPS must contain at least one group")
	}

	cfg.WatchInterval = DEFAULT_WATCH_INTERVAL
	if raw := os.Getenv("WATCH_INTERVAL"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, errors.New("WATCH_INTERVAL must be a positive number of seconds")
		}
		cfg.WatchInterval = time.Duration(seconds) * time.Second
	}

	tzName := envOrDefault("TZ_NAME", "Europe/Samara")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logging.Warn("timezone unavailable, falling back to UTC", "tz", tzName)
		loc = time.UTC
	}
	cfg.Location = loc

	cfg.admins = parseIdList(os.Getenv("ADMINS"))
	cfg.superadmins = parseIdList(os.Getenv("SUPERADMINS"))

	return cfg, nil
}

func (cfg *Config) IsAdmin(userId int64) bool {
	if _, ok := cfg.admins[userId]; ok {
		return true
	}
	return cfg.IsSuperadmin(userId)
}

func (cfg *Config) IsSuperadmin(userId int64) bool {
	_, ok := cfg.superadmins[userId]
	return ok
}

func (cfg *Config) IsTrackedGroup(group string) bool {
	for _, tracked := range cfg.Groups {
		if tracked == group {
			return true
		}
	}
	return false
}

func (cfg *Config) Now() time.Time {
	return time.Now().In(cfg.Location)
}

func parseIdList(raw string) map[int64]struct{} {
	ids := map[int64]struct{}{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logging.Warn("invalid id in list skipped", "value", part)
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}

func splitList(raw string) []string {
	parts := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, val := range vals {
		if val != "" {
			return val
		}
	}
	return ""
}
