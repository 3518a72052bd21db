package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateRange is the concrete date interval a question resolves to. Start and
// End are inclusive calendar dates; both zero means "all time". AllYears
// marks a bare month reference that was explicitly flagged to match every
// occurrence of that month across years instead of a single interval.
type DateRange struct {
	Start time.Time
	End   time.Time
	Label string

	AllYears bool
	Month    time.Month
}

// AllTime reports whether the range places no date constraint at all.
func (r DateRange) AllTime() bool {
	return !r.AllYears && r.Start.IsZero() && r.End.IsZero()
}

// Contains reports whether the calendar date of d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	if r.AllYears {
		return d.Month() == r.Month
	}
	if r.AllTime() {
		return true
	}
	day := dateOnly(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

var (
	lastUnitsPattern = regexp.MustCompile(`last\s+(\d+)\s+(day|week|month)s?`)
	quarterPattern   = regexp.MustCompile(`\bq([1-4])(?:\s+(\d{4}))?\b`)
	monthPattern     = regexp.MustCompile(`\b(january|february|march|april|june|july|august|september|october|november|december)\b(?:\s+(\d{4}))?`)

	// "may" doubles as an auxiliary verb ("how may I..."), so it only
	// counts as a month when anchored by a preposition or an explicit year.
	mayPattern = regexp.MustCompile(`\b(?:in|for|during|of|since|until|last|this)\s+may\b(?:\s+(\d{4}))?|\bmay\s+(\d{4})\b`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// quarterStartMonth maps Q1..Q4 to its first month; the quarter always spans
// three months.
var quarterStartMonth = [5]time.Month{0, time.January, time.April, time.July, time.October}

// ResolveDateRange maps a question to a concrete date interval. Rules are
// tried in a fixed order and the first structural match wins, so "last month"
// is never shadowed by the generic month-name scan. dataYears is the set of
// calendar years present in the snapshot; quarter and month references
// without an explicit year default to the most recent data year, because
// questions are usually about historical data rather than the current wall
// clock. today is injected so resolution stays a pure function.
func ResolveDateRange(question string, dataYears []int, today time.Time) DateRange {
	q := strings.ToLower(question)
	now := dateOnly(today)

	if strings.Contains(q, "today") {
		return DateRange{Start: now, End: now, Label: "today"}
	}

	if strings.Contains(q, "this week") {
		start := mondayOf(now)
		return DateRange{Start: start, End: start.AddDate(0, 0, 6), Label: "this week"}
	}
	if strings.Contains(q, "last week") {
		start := mondayOf(now).AddDate(0, 0, -7)
		return DateRange{Start: start, End: start.AddDate(0, 0, 6), Label: "last week"}
	}

	if strings.Contains(q, "this month") {
		start := firstOfMonth(now)
		return monthRange(start.Year(), start.Month())
	}
	if strings.Contains(q, "last month") {
		start := firstOfMonth(now).AddDate(0, -1, 0)
		return monthRange(start.Year(), start.Month())
	}

	if strings.Contains(q, "this year") {
		return yearRange(now.Year())
	}
	if strings.Contains(q, "last year") {
		return yearRange(now.Year() - 1)
	}

	if m := lastUnitsPattern.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		unit := m[2]
		var start time.Time
		switch unit {
		case "day":
			start = now.AddDate(0, 0, -n)
		case "week":
			start = now.AddDate(0, 0, -7*n)
		case "month":
			start = monthsBack(now, n)
		}
		label := fmt.Sprintf("last %d %ss", n, unit)
		if n == 1 {
			label = fmt.Sprintf("last %d %s", n, unit)
		}
		return DateRange{Start: start, End: now, Label: label}
	}

	if m := quarterPattern.FindStringSubmatch(q); m != nil {
		qn, _ := strconv.Atoi(m[1])
		year := mostRecentYear(dataYears, now)
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		}
		startMonth := quarterStartMonth[qn]
		start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		return DateRange{Start: start, End: end, Label: fmt.Sprintf("Q%d %d", qn, year)}
	}

	if m := monthPattern.FindStringSubmatch(q); m != nil {
		month := monthsByName[m[1]]
		if m[2] != "" {
			year, _ := strconv.Atoi(m[2])
			return monthRange(year, month)
		}
		if wantsAllYears(q) {
			return DateRange{
				AllYears: true,
				Month:    month,
				Label:    fmt.Sprintf("%s (all years)", month.String()),
			}
		}
		return monthRange(mostRecentYear(dataYears, now), month)
	}

	if m := mayPattern.FindStringSubmatch(q); m != nil {
		yearStr := m[1]
		if yearStr == "" {
			yearStr = m[2]
		}
		if yearStr != "" {
			year, _ := strconv.Atoi(yearStr)
			return monthRange(year, time.May)
		}
		if wantsAllYears(q) {
			return DateRange{
				AllYears: true,
				Month:    time.May,
				Label:    "May (all years)",
			}
		}
		return monthRange(mostRecentYear(dataYears, now), time.May)
	}

	return DateRange{Label: "all time"}
}

// wantsAllYears reports whether a bare month name was explicitly flagged to
// cover every year in the data. Without a flag a bare month defaults to the
// most recent data year.
func wantsAllYears(q string) bool {
	return strings.Contains(q, "all years") ||
		strings.Contains(q, "every year") ||
		strings.Contains(q, "across years")
}

func monthRange(year int, month time.Month) DateRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return DateRange{
		Start: start,
		End:   start.AddDate(0, 1, -1),
		Label: fmt.Sprintf("%s %d", month.String(), year),
	}
}

func yearRange(year int) DateRange {
	return DateRange{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		Label: strconv.Itoa(year),
	}
}

// monthsBack subtracts n calendar months from d, rolling the year backward
// when the month index goes below January and clamping the day to the target
// month's length. time.AddDate is avoided here because it normalizes
// overflowing days forward (Mar 31 minus 1 month would land in March).
func monthsBack(d time.Time, n int) time.Time {
	year, month := d.Year(), int(d.Month())-n
	for month <= 0 {
		month += 12
		year--
	}
	day := d.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// mondayOf returns the Monday of the week containing d.
func mondayOf(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

// mostRecentYear returns the latest calendar year present in the data, or the
// current year when the snapshot is empty.
func mostRecentYear(dataYears []int, today time.Time) int {
	year := 0
	for _, y := range dataYears {
		if y > year {
			year = y
		}
	}
	if year == 0 {
		return today.Year()
	}
	return year
}
