package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/audit-planner/internal/planning"
)

// Config captures environment driven configuration values for the planner service.
type Config struct {
	HTTPPort     int
	SQLiteDSN    string
	CalendarFile string
	Calendar     planning.Calendar
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields and, when
// AUDITPLAN_CALENDAR_FILE is set, overrides the default work calendar from a
// YAML file so engagements at sites with different office hours can adjust
// the plan layout without a rebuild.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:auditplanner.db?_foreign_keys=on",
		Calendar:  planning.DefaultCalendar(),
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("AUDITPLAN_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "AUDITPLAN_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("AUDITPLAN_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if path := strings.TrimSpace(os.Getenv("AUDITPLAN_CALENDAR_FILE")); path != "" {
		cfg.CalendarFile = path
		calendar, err := LoadCalendarFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("AUDITPLAN_CALENDAR_FILE: %w", err)
		}
		cfg.Calendar = calendar
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// calendarFile mirrors the YAML work-calendar document. Times are "HH:MM"
// strings, durations are minutes. Omitted fields keep their defaults.
type calendarFile struct {
	WorkdayStart   string `yaml:"workday_start"`
	WorkdayEnd     string `yaml:"workday_end"`
	LunchStart     string `yaml:"lunch_start"`
	LunchEnd       string `yaml:"lunch_end"`
	MorningBreak   string `yaml:"morning_break"`
	AfternoonBreak string `yaml:"afternoon_break"`
	BreakMinutes   int    `yaml:"break_minutes"`
	MeetingMinutes int    `yaml:"meeting_minutes"`
}

// LoadCalendarFile reads a YAML work-calendar description and merges it over
// the default calendar. The result is validated before being returned.
func LoadCalendarFile(path string) (planning.Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planning.Calendar{}, err
	}
	return ParseCalendar(data)
}

// ParseCalendar parses a YAML work-calendar document.
func ParseCalendar(data []byte) (planning.Calendar, error) {
	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return planning.Calendar{}, fmt.Errorf("malformed calendar file: %w", err)
	}

	calendar := planning.DefaultCalendar()
	fields := []struct {
		value  string
		target *int
	}{
		{file.WorkdayStart, &calendar.WorkdayStart},
		{file.WorkdayEnd, &calendar.WorkdayEnd},
		{file.LunchStart, &calendar.LunchStart},
		{file.LunchEnd, &calendar.LunchEnd},
		{file.MorningBreak, &calendar.MorningBreak},
		{file.AfternoonBreak, &calendar.AfternoonBreak},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		minutes, err := parseClock(field.value)
		if err != nil {
			return planning.Calendar{}, err
		}
		*field.target = minutes
	}
	if file.BreakMinutes > 0 {
		calendar.BreakMinutes = file.BreakMinutes
	}
	if file.MeetingMinutes > 0 {
		calendar.MeetingMinutes = file.MeetingMinutes
	}

	if err := calendar.Validate(); err != nil {
		return planning.Calendar{}, err
	}
	return calendar, nil
}

// parseClock converts an "HH:MM" string to minutes from midnight.
func parseClock(value string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return hours*60 + minutes, nil
}
