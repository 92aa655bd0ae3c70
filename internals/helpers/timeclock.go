package helper

import "time"

// All "today" decisions in the planning and invoice features are anchored to
// Indochina Time so chef and manager agree on the calendar date regardless of
// where the server or client runs.
var indochina = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		// zoneinfo-less containers: ICT has no DST, a fixed offset is exact
		return time.FixedZone("ICT", 7*60*60)
	}
	return loc
}()

func IndochinaLocation() *time.Location {
	return indochina
}

// DateICT formats an instant as its YYYY-MM-DD calendar date in Indochina Time.
func DateICT(t time.Time) string {
	return t.In(indochina).Format("2006-01-02")
}

// TodayICT returns the current Indochina calendar date as YYYY-MM-DD.
func TodayICT() string {
	return DateICT(time.Now())
}

// StartOfDayICT returns midnight of t's Indochina calendar date, in ICT.
// Used to build [start, next) windows for "today" queries on timestamps.
func StartOfDayICT(t time.Time) time.Time {
	lt := t.In(indochina)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, indochina)
}

// ParseDateICT parses a YYYY-MM-DD string as midnight Indochina Time.
func ParseDateICT(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, indochina)
}
