package services

import "time"

// CalendarPage is the month the date chooser is looking at. Month
// navigation mutates the page without touching any fetched data.
type CalendarPage struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// CurrentCalendarPage returns the page for now's month
func CurrentCalendarPage(now time.Time) CalendarPage {
	return CalendarPage{Year: now.Year(), Month: now.Month()}
}

// Next advances the page one month
func (p CalendarPage) Next() CalendarPage {
	if p.Month == time.December {
		return CalendarPage{Year: p.Year + 1, Month: time.January}
	}
	return CalendarPage{Year: p.Year, Month: p.Month + 1}
}

// Prev moves the page back one month
func (p CalendarPage) Prev() CalendarPage {
	if p.Month == time.January {
		return CalendarPage{Year: p.Year - 1, Month: time.December}
	}
	return CalendarPage{Year: p.Year, Month: p.Month - 1}
}

// Days returns how many days the page's month has
func (p CalendarPage) Days() int {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()
}

// Grid lays the page's days out as Sunday-first weeks. Every row has
// exactly 7 cells; cells outside the month are 0. Each day of the
// month appears exactly once.
func (p CalendarPage) Grid() [][]int {
	first := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := p.Days()
	leading := int(first.Weekday())

	cells := make([]int, 0, leading+daysInMonth)
	for i := 0; i < leading; i++ {
		cells = append(cells, 0)
	}
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, day)
	}
	for len(cells)%7 != 0 {
		cells = append(cells, 0)
	}

	grid := make([][]int, 0, len(cells)/7)
	for i := 0; i < len(cells); i += 7 {
		grid = append(grid, cells[i:i+7])
	}
	return grid
}

// DateOf returns the ISO date string for a day on this page
func (p CalendarPage) DateOf(day int) string {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
