package ingestion

import "time"

// sessionDateLayout matches data_pregao in the NEGS header.
const sessionDateLayout = "20060102"

// fixedHolidays are the national holidays on which B3 holds no trading session.
// Dec 24 and Dec 31 are exchange holidays even though they are not national ones.
var fixedHolidays = map[string]struct{}{
	"01-01": {}, // New Year
	"04-21": {}, // Tiradentes
	"05-01": {}, // Labor Day
	"09-07": {}, // Independence Day
	"10-12": {}, // Our Lady Aparecida
	"11-02": {}, // All Souls' Day
	"11-15": {}, // Republic Proclamation
	"12-24": {},
	"12-25": {}, // Christmas
	"12-31": {},
}

// LastNBusinessDays returns the last n Brazilian business days (most recent first),
// counting from's own date when it is one.
func LastNBusinessDays(n int, from time.Time) []time.Time {
	if n < 1 {
		return nil
	}
	out := make([]time.Time, 0, n)
	d := truncateToDate(from)

	for len(out) < n {
		if isBusinessDayBR(d) {
			out = append(out, d)
		}
		d = d.AddDate(0, 0, -1)
	}
	return out
}

// sessionWindow is the set of session dates, formatted like data_pregao,
// accepted by a directory run. A nil window accepts every date.
type sessionWindow map[string]struct{}

func newSessionWindow(days int, now time.Time) sessionWindow {
	if days < 1 {
		return nil
	}
	w := make(sessionWindow, days)
	for _, d := range LastNBusinessDays(days, now) {
		w[d.Format(sessionDateLayout)] = struct{}{}
	}
	return w
}

func (w sessionWindow) contains(sessionDate string) bool {
	if w == nil {
		return true
	}
	_, ok := w[sessionDate]
	return ok
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// isBusinessDayBR reports whether B3 runs a regular session on d.
func isBusinessDayBR(d time.Time) bool {
	if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	if _, ok := fixedHolidays[d.Format("01-02")]; ok {
		return false
	}
	// Black Consciousness Day became a national holiday in 2024.
	if d.Month() == time.November && d.Day() == 20 && d.Year() >= 2024 {
		return false
	}

	easter := easterSunday(d.Year(), d.Location())
	day := truncateToDate(d)
	for _, offset := range []int{
		-48, // Carnival Monday
		-47, // Carnival Tuesday
		-2,  // Good Friday
		60,  // Corpus Christi
	} {
		if day.Equal(easter.AddDate(0, 0, offset)) {
			return false
		}
	}

	return true
}

// easterSunday returns the date of Easter Sunday for a given year
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}
