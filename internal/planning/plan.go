package planning

import (
	"sort"
	"strings"
	"time"
)

// ThemeID identifies an audit theme.
type ThemeID string

// System theme names are administrative bookkeeping entries that never
// receive an interview slot.
const (
	SystemThemeAdmin   = "ADMIN"
	SystemThemeClosure = "Cloture"
)

// IsSystemTheme reports whether the named theme is reserved bookkeeping.
func IsSystemTheme(name string) bool {
	return strings.EqualFold(name, SystemThemeAdmin) || strings.EqualFold(name, SystemThemeClosure)
}

// DefaultInterviewMinutes is used for themes whose duration was not estimated.
const DefaultInterviewMinutes = 60

// ThemeSlot pairs a theme with the interview length requested for it.
type ThemeSlot struct {
	ID      ThemeID
	Name    string
	Minutes int
}

// Request carries everything Generate needs to lay out an audit plan.
// Days must be distinct calendar days; order does not matter.
type Request struct {
	AuditID               string
	Days                  []time.Time
	Themes                []ThemeSlot
	IncludeOpeningClosing bool
	MaxMinutesPerDay      int
}

// ItemKind distinguishes the calendar entries a plan is made of.
type ItemKind string

const (
	KindOpening   ItemKind = "opening"
	KindClosing   ItemKind = "closing"
	KindInterview ItemKind = "interview"
	KindLunch     ItemKind = "lunch"
	KindBreak     ItemKind = "break"
)

// Item is one entry of a generated plan. Only interview items carry a theme.
type Item struct {
	Kind        ItemKind
	ThemeID     ThemeID
	Title       string
	Description string
	Start       time.Time
	Minutes     int
}

// End returns the instant the item finishes.
func (i Item) End() time.Time {
	return i.Start.Add(time.Duration(i.Minutes) * time.Minute)
}

// Plan is the full ordered output of one generation run. Overflow reports
// that the selected days could not hold every interview; trailing items were
// kept on the last day so the caller can render the misfit and react.
type Plan struct {
	Items              []Item
	Overflow           bool
	IdealMinutesPerDay int
}

// User-facing titles and annotations. The engagement tooling is French.
const (
	titleOpening   = "Réunion d'ouverture"
	titleClosing   = "Réunion de clôture"
	titleLunch     = "Pause déjeuner"
	titleBreak     = "Pause café"
	noteAdjusted   = "Durée ajustée pour tenir dans la journée"
	noteMovedNext  = "Déplacé au jour ouvré suivant"
	minShrinkedMin = 30
)

// Generate lays out opening and closing meetings, breaks, lunch and one
// interview per non-system theme across the selected days. It is pure and
// deterministic: both the preview endpoint and the commit path call it, so
// what the user confirmed is exactly what gets persisted.
func Generate(cal Calendar, req Request) Plan {
	days := sortedDays(req.Days)
	if len(days) == 0 {
		return Plan{}
	}
	if len(req.Themes) == 0 && !req.IncludeOpeningClosing {
		return Plan{}
	}

	themes := schedulableThemes(req.Themes)
	total := 0
	for _, slot := range themes {
		total += slot.Minutes
	}
	ideal := cal.IdealMinutesPerDay(total, len(days), req.MaxMinutesPerDay)

	plan := Plan{IdealMinutesPerDay: ideal}
	items := make([]Item, 0, 2*len(themes)+2)

	cur := NewCursor(cal, days)
	if req.IncludeOpeningClosing {
		items = append(items, Item{
			Kind:    KindOpening,
			Title:   titleOpening,
			Start:   minuteAt(days[0], cal.WorkdayStart),
			Minutes: cal.MeetingMinutes,
		})
		cur = Cursor{
			At:           minuteAt(days[0], cal.WorkdayStart+cal.MeetingMinutes),
			MinutesToday: cal.MeetingMinutes,
		}
	}

	morningBreakDay := -1
	afternoonBreakDay := -1

	// Each day opens with its coffee break before the first interview.
	if minuteOfDay(cur.At) <= cal.MorningBreak {
		items = append(items, morningBreakItem(cal, days[0]))
		morningBreakDay = 0
		cur.At = minuteAt(days[0], cal.MorningBreak+cal.BreakMinutes)
	}

	for _, slot := range themes {
		day := days[cur.DayIndex]

		cur, items = lunchGuard(cal, cur, day, slot.Minutes, items)

		if m := minuteOfDay(cur.At); m >= cal.AfternoonBreak && m < cal.AfternoonBreak+cal.BreakMinutes {
			if afternoonBreakDay != cur.DayIndex {
				items = append(items, afternoonBreakItem(cal, day))
				afternoonBreakDay = cur.DayIndex
			}
			cur.At = minuteAt(day, cal.AfternoonBreak+cal.BreakMinutes)
		}

		// Balance load: move to the next day before placing an interview
		// that would push today over the target or past office hours.
		m := minuteOfDay(cur.At)
		if cur.MinutesToday+slot.Minutes > ideal || m+slot.Minutes > cal.WorkdayEnd {
			if cur.DayIndex+1 < len(days) {
				cur = Cursor{DayIndex: cur.DayIndex + 1}
				day = days[cur.DayIndex]
				items = append(items, morningBreakItem(cal, day))
				morningBreakDay = cur.DayIndex
				cur.At = minuteAt(day, cal.MorningBreak+cal.BreakMinutes)
				// The fresh cursor may still sit too close to lunch.
				cur, items = lunchGuard(cal, cur, day, slot.Minutes, items)
			} else if m+slot.Minutes > cal.WorkdayEnd {
				plan.Overflow = true
			}
		}

		if minuteOfDay(cur.At) < cal.WorkdayStart {
			cur.At = minuteAt(day, cal.WorkdayStart)
		}

		// The afternoon break item is emitted before advancing whenever the
		// interview ends inside its window, mirroring the cursor snap.
		if afternoonBreakDay != cur.DayIndex {
			endMinute := minuteOfDay(cur.At) + slot.Minutes
			if endMinute >= cal.AfternoonBreak && endMinute < cal.AfternoonBreak+cal.BreakMinutes {
				items = append(items, afternoonBreakItem(cal, day))
				afternoonBreakDay = cur.DayIndex
			}
		}

		items = append(items, Item{
			Kind:    KindInterview,
			ThemeID: slot.ID,
			Title:   slot.Name,
			Start:   cur.At,
			Minutes: slot.Minutes,
		})

		previousDay := cur.DayIndex
		next, overflowed := Advance(cal, cur, slot.Minutes, days, ideal)
		if overflowed {
			plan.Overflow = true
		}
		cur = next
		if cur.DayIndex > previousDay && morningBreakDay != cur.DayIndex {
			day = days[cur.DayIndex]
			items = append(items, morningBreakItem(cal, day))
			morningBreakDay = cur.DayIndex
			cur.At = minuteAt(day, cal.MorningBreak+cal.BreakMinutes)
		}
	}

	if req.IncludeOpeningClosing {
		// The closing meeting anchors to the 16:15 slot of the last selected
		// day regardless of where the cursor ended up.
		last := days[len(days)-1]
		items = append(items, Item{
			Kind:    KindClosing,
			Title:   titleClosing,
			Start:   minuteAt(last, cal.AfternoonBreak+cal.BreakMinutes),
			Minutes: cal.MeetingMinutes,
		})
	}

	items = correctOfficeHours(cal, items)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Start.Before(items[j].Start)
	})

	plan.Items = items
	return plan
}

// correctOfficeHours clamps interviews that start before office hours and
// resolves interviews that run past the workday end: the duration shrinks to
// fit when at least minShrinkedMin minutes remain, otherwise the interview
// moves to the next business day. Adjusted items carry an annotation so the
// preview makes the correction visible. Meetings, breaks and lunch are left
// untouched.
func correctOfficeHours(cal Calendar, items []Item) []Item {
	for idx := range items {
		if items[idx].Kind != KindInterview {
			continue
		}
		item := &items[idx]

		if minuteOfDay(item.Start) < cal.WorkdayStart {
			item.Start = minuteAt(item.Start, cal.WorkdayStart)
		}

		startMinute := minuteOfDay(item.Start)
		if startMinute+item.Minutes <= cal.WorkdayEnd {
			continue
		}

		remaining := cal.WorkdayEnd - startMinute
		if remaining >= minShrinkedMin {
			item.Minutes = remaining
			item.Description = annotate(item.Description, noteAdjusted)
			continue
		}

		item.Start = minuteAt(NextBusinessDay(item.Start), cal.WorkdayStart)
		item.Description = annotate(item.Description, noteMovedNext)
	}
	return items
}

// lunchGuard keeps interviews out of the lunch window: when the cursor sits
// inside lunch, or placing the candidate would cross the lunch start, a lunch
// item is emitted and the cursor restarts right after it with a fresh tally.
func lunchGuard(cal Calendar, cur Cursor, day time.Time, minutes int, items []Item) (Cursor, []Item) {
	m := minuteOfDay(cur.At)
	if (m >= cal.LunchStart && m < cal.LunchEnd) || (m < cal.LunchStart && m+minutes > cal.LunchStart) {
		items = append(items, Item{
			Kind:    KindLunch,
			Title:   titleLunch,
			Start:   minuteAt(day, cal.LunchStart),
			Minutes: cal.LunchEnd - cal.LunchStart,
		})
		cur.At = minuteAt(day, cal.LunchEnd)
		cur.MinutesToday = 0
	}
	return cur, items
}

func annotate(description, note string) string {
	if description == "" {
		return note
	}
	return description + " - " + note
}

func morningBreakItem(cal Calendar, day time.Time) Item {
	return Item{
		Kind:    KindBreak,
		Title:   titleBreak,
		Start:   minuteAt(day, cal.MorningBreak),
		Minutes: cal.BreakMinutes,
	}
}

func afternoonBreakItem(cal Calendar, day time.Time) Item {
	return Item{
		Kind:    KindBreak,
		Title:   titleBreak,
		Start:   minuteAt(day, cal.AfternoonBreak),
		Minutes: cal.BreakMinutes,
	}
}

func schedulableThemes(slots []ThemeSlot) []ThemeSlot {
	out := make([]ThemeSlot, 0, len(slots))
	for _, slot := range slots {
		if IsSystemTheme(slot.Name) {
			continue
		}
		if slot.Minutes <= 0 {
			slot.Minutes = DefaultInterviewMinutes
		}
		out = append(out, slot)
	}
	return out
}

func sortedDays(days []time.Time) []time.Time {
	out := make([]time.Time, 0, len(days))
	for _, day := range days {
		if day.IsZero() {
			continue
		}
		out = append(out, startOfDay(day))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
