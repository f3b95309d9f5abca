package planning

import "time"

// Cursor tracks where the placement loop currently is: the instant the next
// item would start, the index into the selected days, and the thematic
// minutes already consumed on that day. Cursors are plain values; Advance
// returns a fresh one rather than mutating its input.
type Cursor struct {
	At           time.Time
	DayIndex     int
	MinutesToday int
}

// NewCursor positions a cursor at the workday start of the first selected day.
func NewCursor(cal Calendar, days []time.Time) Cursor {
	if len(days) == 0 {
		return Cursor{}
	}
	return Cursor{At: minuteAt(days[0], cal.WorkdayStart)}
}

// Advance computes the cursor state after placing an item of the given length
// at the current position. The rules apply in order:
//
//  1. A cursor sitting before office hours is clamped to the workday start.
//  2. The placed duration moves the time pointer and the daily tally forward.
//  3. A pointer landing inside the morning break snaps past it.
//  4. A pointer landing inside lunch, or an interval that crossed the lunch
//     start, snaps to the end of lunch; the daily tally restarts with only
//     the portion placed before lunch.
//  5. A pointer landing inside the afternoon break snaps past it.
//  6. When the daily tally exceeds idealPerDay or the pointer reached the
//     workday end, the cursor rolls to the workday start of the next day.
//
// The second return value reports overflow: a rollover was required but no
// selected day remained. The cursor then stays on the last day so callers can
// decide how to react instead of silently double-booking the first day.
func Advance(cal Calendar, cur Cursor, minutes int, days []time.Time, idealPerDay int) (Cursor, bool) {
	if len(days) == 0 || minutes <= 0 {
		return cur, false
	}
	if cur.DayIndex >= len(days) {
		cur.DayIndex = len(days) - 1
	}
	day := days[cur.DayIndex]

	start := cur.At
	if start.IsZero() || minuteOfDay(start) < cal.WorkdayStart {
		start = minuteAt(day, cal.WorkdayStart)
	}
	startMinute := minuteOfDay(start)

	next := Cursor{
		At:           start.Add(time.Duration(minutes) * time.Minute),
		DayIndex:     cur.DayIndex,
		MinutesToday: cur.MinutesToday + minutes,
	}

	if m := minuteOfDay(next.At); m >= cal.MorningBreak && m < cal.MorningBreak+cal.BreakMinutes {
		next.At = minuteAt(day, cal.MorningBreak+cal.BreakMinutes)
	}

	m := minuteOfDay(next.At)
	if (m >= cal.LunchStart && m < cal.LunchEnd) || (startMinute < cal.LunchStart && m >= cal.LunchStart) {
		before := cal.LunchStart - startMinute
		if before < 0 {
			before = 0
		}
		// Afternoon accounting restarts with only the pre-lunch portion.
		next.MinutesToday = before
		next.At = minuteAt(day, cal.LunchEnd)
	}

	if m := minuteOfDay(next.At); m >= cal.AfternoonBreak && m < cal.AfternoonBreak+cal.BreakMinutes {
		next.At = minuteAt(day, cal.AfternoonBreak+cal.BreakMinutes)
	}

	if next.MinutesToday > idealPerDay || minuteOfDay(next.At) >= cal.WorkdayEnd {
		if next.DayIndex+1 < len(days) {
			next.DayIndex++
			next.At = minuteAt(days[next.DayIndex], cal.WorkdayStart)
			next.MinutesToday = 0
		} else {
			return next, true
		}
	}

	return next, false
}
