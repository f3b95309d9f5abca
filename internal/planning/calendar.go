package planning

import (
	"errors"
	"time"
)

// Calendar describes the working-day policy a plan is generated against.
// All fields are minutes from midnight except the two duration fields.
// A single Calendar value is passed into every planning function so that
// engagements with non-default office hours can supply their own.
type Calendar struct {
	WorkdayStart   int
	WorkdayEnd     int
	LunchStart     int
	LunchEnd       int
	MorningBreak   int
	AfternoonBreak int
	BreakMinutes   int
	MeetingMinutes int
}

// DefaultCalendar returns the standard office calendar: 09:00-18:00 workday,
// 12:00-13:00 lunch, 15-minute breaks at 10:00 and 16:00, and 60-minute
// opening and closing meetings.
func DefaultCalendar() Calendar {
	return Calendar{
		WorkdayStart:   9 * 60,
		WorkdayEnd:     18 * 60,
		LunchStart:     12 * 60,
		LunchEnd:       13 * 60,
		MorningBreak:   10 * 60,
		AfternoonBreak: 16 * 60,
		BreakMinutes:   15,
		MeetingMinutes: 60,
	}
}

// ErrInvalidCalendar indicates the calendar windows are not ordered correctly.
var ErrInvalidCalendar = errors.New("planning: invalid calendar")

// Validate checks that the calendar windows are consistently ordered and that
// lunch and both breaks fall inside the workday.
func (c Calendar) Validate() error {
	if c.WorkdayStart < 0 || c.WorkdayEnd > 24*60 || c.WorkdayStart >= c.WorkdayEnd {
		return ErrInvalidCalendar
	}
	if c.LunchStart >= c.LunchEnd || c.LunchStart < c.WorkdayStart || c.LunchEnd > c.WorkdayEnd {
		return ErrInvalidCalendar
	}
	if c.BreakMinutes <= 0 || c.MeetingMinutes <= 0 {
		return ErrInvalidCalendar
	}
	if c.MorningBreak < c.WorkdayStart || c.MorningBreak+c.BreakMinutes > c.LunchStart {
		return ErrInvalidCalendar
	}
	if c.AfternoonBreak < c.LunchEnd || c.AfternoonBreak+c.BreakMinutes > c.WorkdayEnd {
		return ErrInvalidCalendar
	}
	return nil
}

// EffectiveMinutesPerDay returns the schedulable minutes in one working day
// once lunch and both breaks are removed.
func (c Calendar) EffectiveMinutesPerDay() int {
	return (c.WorkdayEnd - c.WorkdayStart) - (c.LunchEnd - c.LunchStart) - 2*c.BreakMinutes
}

// IdealMinutesPerDay computes the daily workload target used to balance
// interviews across the available days instead of greedily filling the first
// day. The target is the ceiling of total over days, capped by the effective
// day capacity and by maxMinutesPerDay when positive. A zero day count yields
// the capacity itself.
func (c Calendar) IdealMinutesPerDay(totalMinutes, dayCount, maxMinutesPerDay int) int {
	effective := c.EffectiveMinutesPerDay()
	if maxMinutesPerDay > 0 && maxMinutesPerDay < effective {
		effective = maxMinutesPerDay
	}
	if dayCount <= 0 {
		return effective
	}
	ideal := (totalMinutes + dayCount - 1) / dayCount
	if ideal > effective {
		return effective
	}
	return ideal
}

// BusinessDays enumerates every weekday in [start, end] inclusive, normalized
// to midnight in the start date's location. Zero inputs yield an empty result.
func BusinessDays(start, end time.Time) []time.Time {
	if start.IsZero() || end.IsZero() {
		return nil
	}
	first := startOfDay(start)
	last := startOfDay(end)

	days := make([]time.Time, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

// NextBusinessDay returns the first weekday strictly after day.
func NextBusinessDay(day time.Time) time.Time {
	next := startOfDay(day).AddDate(0, 0, 1)
	for {
		if wd := next.Weekday(); wd != time.Saturday && wd != time.Sunday {
			return next
		}
		next = next.AddDate(0, 0, 1)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// minuteAt places a minutes-from-midnight offset on the given day.
func minuteAt(day time.Time, minutes int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), minutes/60, minutes%60, 0, 0, day.Location())
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
