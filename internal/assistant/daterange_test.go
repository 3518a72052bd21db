package assistant

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDateRange(t *testing.T) {
	// Wednesday, 2026-02-18. Data spans 2024-2025.
	today := date(2026, time.February, 18)
	years := []int{2024, 2025}

	tests := []struct {
		name      string
		question  string
		wantStart time.Time
		wantEnd   time.Time
		wantLabel string
	}{
		{
			name:      "today",
			question:  "how much did i spend today",
			wantStart: today,
			wantEnd:   today,
			wantLabel: "today",
		},
		{
			name:      "this week is monday anchored",
			question:  "expenses this week",
			wantStart: date(2026, time.February, 16),
			wantEnd:   date(2026, time.February, 22),
			wantLabel: "this week",
		},
		{
			name:      "last week",
			question:  "how much did i spend last week",
			wantStart: date(2026, time.February, 9),
			wantEnd:   date(2026, time.February, 15),
			wantLabel: "last week",
		},
		{
			name:      "this month",
			question:  "what are my expenses this month",
			wantStart: date(2026, time.February, 1),
			wantEnd:   date(2026, time.February, 28),
			wantLabel: "February 2026",
		},
		{
			name:      "last month",
			question:  "how much did i spend last month",
			wantStart: date(2026, time.January, 1),
			wantEnd:   date(2026, time.January, 31),
			wantLabel: "January 2026",
		},
		{
			name:      "this year",
			question:  "income this year",
			wantStart: date(2026, time.January, 1),
			wantEnd:   date(2026, time.December, 31),
			wantLabel: "2026",
		},
		{
			name:      "last year",
			question:  "income last year",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.December, 31),
			wantLabel: "2025",
		},
		{
			name:      "last 7 days",
			question:  "spending in the last 7 days",
			wantStart: date(2026, time.February, 11),
			wantEnd:   today,
			wantLabel: "last 7 days",
		},
		{
			name:      "last 2 weeks",
			question:  "spending in the last 2 weeks",
			wantStart: date(2026, time.February, 4),
			wantEnd:   today,
			wantLabel: "last 2 weeks",
		},
		{
			name:      "last 3 months rolls calendar months",
			question:  "expenses over the last 3 months",
			wantStart: date(2025, time.November, 18),
			wantEnd:   today,
			wantLabel: "last 3 months",
		},
		{
			name:      "last 1 month singular label",
			question:  "spend in the last 1 month",
			wantStart: date(2026, time.January, 18),
			wantEnd:   today,
			wantLabel: "last 1 month",
		},
		{
			name:      "quarter with explicit year ignores today",
			question:  "how much did i spend in q1 2025",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.March, 31),
			wantLabel: "Q1 2025",
		},
		{
			name:      "quarter defaults to most recent data year",
			question:  "what were my expenses in q4",
			wantStart: date(2025, time.October, 1),
			wantEnd:   date(2025, time.December, 31),
			wantLabel: "Q4 2025",
		},
		{
			name:      "bare month defaults to most recent data year",
			question:  "how much did i spend in january",
			wantStart: date(2025, time.January, 1),
			wantEnd:   date(2025, time.January, 31),
			wantLabel: "January 2025",
		},
		{
			name:      "month with explicit year",
			question:  "how much did i spend in december 2024",
			wantStart: date(2024, time.December, 1),
			wantEnd:   date(2024, time.December, 31),
			wantLabel: "December 2024",
		},
		{
			name:      "may with preposition is a month",
			question:  "how much did i spend in may",
			wantStart: date(2025, time.May, 1),
			wantEnd:   date(2025, time.May, 31),
			wantLabel: "May 2025",
		},
		{
			name:      "may with explicit year",
			question:  "expenses for may 2024",
			wantStart: date(2024, time.May, 1),
			wantEnd:   date(2024, time.May, 31),
			wantLabel: "May 2024",
		},
		{
			name:      "auxiliary may is not a month",
			question:  "how may i reduce my spending",
			wantLabel: "all time",
		},
		{
			name:      "no date reference means all time",
			question:  "how much did i spend on groceries",
			wantLabel: "all time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveDateRange(tt.question, years, today)
			if !got.Start.Equal(tt.wantStart) || !got.End.Equal(tt.wantEnd) {
				t.Errorf("range = [%v, %v], want [%v, %v]", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}

func TestResolveDateRange_LastMonthYearRollover(t *testing.T) {
	today := date(2026, time.January, 10)
	got := ResolveDateRange("how much did i spend last month", nil, today)

	if !got.Start.Equal(date(2025, time.December, 1)) || !got.End.Equal(date(2025, time.December, 31)) {
		t.Errorf("range = [%v, %v], want December 2025", got.Start, got.End)
	}
}

func TestResolveDateRange_MonthAllYearsFlag(t *testing.T) {
	today := date(2026, time.February, 18)
	got := ResolveDateRange("how much did i spend in january across years", []int{2024, 2025}, today)

	if !got.AllYears {
		t.Fatal("expected AllYears range")
	}
	if got.Month != time.January {
		t.Errorf("month = %v, want January", got.Month)
	}
	if !got.Contains(date(2024, time.January, 5)) || !got.Contains(date(2025, time.January, 30)) {
		t.Error("AllYears range should contain January dates from every year")
	}
	if got.Contains(date(2025, time.February, 1)) {
		t.Error("AllYears range should not contain other months")
	}
}

func TestResolveDateRange_IsPure(t *testing.T) {
	today := date(2026, time.February, 18)
	years := []int{2025}

	first := ResolveDateRange("How much did I spend in Q1?", years, today)
	second := ResolveDateRange("How much did I spend in Q1?", years, today)

	if first != second {
		t.Errorf("resolution not deterministic: %+v vs %+v", first, second)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: date(2025, time.January, 1), End: date(2025, time.January, 31)}

	tests := []struct {
		d    time.Time
		want bool
	}{
		{date(2025, time.January, 1), true},
		{date(2025, time.January, 31), true},
		{time.Date(2025, time.January, 31, 23, 59, 0, 0, time.UTC), true},
		{date(2024, time.December, 31), false},
		{date(2025, time.February, 1), false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.d); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}

	allTime := DateRange{Label: "all time"}
	if !allTime.Contains(date(1999, time.July, 4)) {
		t.Error("all-time range should contain any date")
	}
}

func TestMonthsBackClampsDay(t *testing.T) {
	got := monthsBack(date(2026, time.March, 31), 1)
	if !got.Equal(date(2026, time.February, 28)) {
		t.Errorf("monthsBack(Mar 31, 1) = %v, want Feb 28", got)
	}

	got = monthsBack(date(2026, time.January, 15), 2)
	if !got.Equal(date(2025, time.November, 15)) {
		t.Errorf("monthsBack(Jan 15, 2) = %v, want Nov 15 2025", got)
	}
}
