package planning

import (
	"testing"
	"time"
)

func threeDays(t *testing.T) []time.Time {
	t.Helper()
	return []time.Time{day(t, "2026-03-02"), day(t, "2026-03-03"), day(t, "2026-03-04")}
}

func cursorAt(t *testing.T, date string, hour, minute, minutesToday, dayIndex int) Cursor {
	t.Helper()
	d := day(t, date)
	return Cursor{
		At:           time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location()),
		DayIndex:     dayIndex,
		MinutesToday: minutesToday,
	}
}

func TestAdvance(t *testing.T) {
	cal := DefaultCalendar()
	days := threeDays(t)
	const ideal = 450

	t.Run("clamps a cursor sitting before office hours", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 8, 0, 0, 0)
		next, overflow := Advance(cal, cur, 30, days, ideal)
		if overflow {
			t.Fatalf("unexpected overflow")
		}
		if got := next.At.Format("15:04"); got != "09:30" {
			t.Fatalf("expected 09:30, got %s", got)
		}
		if next.MinutesToday != 30 {
			t.Fatalf("expected 30 minutes consumed, got %d", next.MinutesToday)
		}
	})

	t.Run("snaps past the morning break", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 9, 0, 0, 0)
		next, _ := Advance(cal, cur, 60, days, ideal)
		if got := next.At.Format("15:04"); got != "10:15" {
			t.Fatalf("expected 10:15, got %s", got)
		}
	})

	t.Run("landing inside lunch restarts the afternoon tally", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 11, 30, 0, 0)
		next, _ := Advance(cal, cur, 60, days, ideal)
		if got := next.At.Format("15:04"); got != "13:00" {
			t.Fatalf("expected 13:00, got %s", got)
		}
		if next.MinutesToday != 30 {
			t.Fatalf("expected only the pre-lunch 30 minutes kept, got %d", next.MinutesToday)
		}
	})

	t.Run("crossing the lunch start also snaps to after lunch", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 11, 0, 0, 0)
		next, _ := Advance(cal, cur, 120, days, ideal)
		if got := next.At.Format("15:04"); got != "13:00" {
			t.Fatalf("expected 13:00, got %s", got)
		}
		if next.MinutesToday != 60 {
			t.Fatalf("expected 60 pre-lunch minutes kept, got %d", next.MinutesToday)
		}
	})

	t.Run("snaps past the afternoon break", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 15, 30, 100, 0)
		next, _ := Advance(cal, cur, 40, days, ideal)
		if got := next.At.Format("15:04"); got != "16:15" {
			t.Fatalf("expected 16:15, got %s", got)
		}
	})

	t.Run("exceeding the daily target rolls to the next day", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 9, 0, 90, 0)
		next, overflow := Advance(cal, cur, 30, days, 100)
		if overflow {
			t.Fatalf("unexpected overflow with days remaining")
		}
		if next.DayIndex != 1 {
			t.Fatalf("expected day index 1, got %d", next.DayIndex)
		}
		if got := next.At.Format("2006-01-02 15:04"); got != "2026-03-03 09:00" {
			t.Fatalf("expected next day 09:00, got %s", got)
		}
		if next.MinutesToday != 0 {
			t.Fatalf("expected fresh daily tally, got %d", next.MinutesToday)
		}
	})

	t.Run("reaching the workday end rolls to the next day", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 17, 30, 60, 0)
		next, overflow := Advance(cal, cur, 30, days, ideal)
		if overflow {
			t.Fatalf("unexpected overflow with days remaining")
		}
		if next.DayIndex != 1 {
			t.Fatalf("expected day index 1, got %d", next.DayIndex)
		}
	})

	t.Run("reports overflow instead of wrapping to the first day", func(t *testing.T) {
		single := days[:1]
		cur := cursorAt(t, "2026-03-02", 17, 30, 60, 0)
		next, overflow := Advance(cal, cur, 60, single, ideal)
		if !overflow {
			t.Fatalf("expected overflow on the last selected day")
		}
		if next.DayIndex != 0 {
			t.Fatalf("cursor must stay on the last day, got index %d", next.DayIndex)
		}
		if got := next.At.Format("15:04"); got != "18:30" {
			t.Fatalf("expected 18:30, got %s", got)
		}
	})

	t.Run("empty day list leaves the cursor untouched", func(t *testing.T) {
		cur := cursorAt(t, "2026-03-02", 9, 0, 0, 0)
		next, overflow := Advance(cal, cur, 60, nil, ideal)
		if overflow || next != cur {
			t.Fatalf("expected unchanged cursor, got %+v overflow=%v", next, overflow)
		}
	})
}
