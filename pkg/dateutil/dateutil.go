package dateutil

import "time"

// DayFormat is the calendar-day key used as the uniqueness dimension for
// daily chest claims. Always derived from UTC, never from client clocks.
const DayFormat = "2006-01-02"

func CurrentYmd() string {
	return Ymd(time.Now())
}

func Ymd(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

func IsValidYmd(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}
