package helper

import (
	"testing"
	"time"
)

func TestDateICTCrossesMidnightBeforeUTC(t *testing.T) {
	// 17:00 UTC is already 00:00 next day in ICT (+07:00)
	atBoundary := time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
	if got := DateICT(atBoundary); got != "2024-01-02" {
		t.Errorf("expected 2024-01-02, got %s", got)
	}

	justBefore := time.Date(2024, 1, 1, 16, 59, 59, 0, time.UTC)
	if got := DateICT(justBefore); got != "2024-01-01" {
		t.Errorf("expected 2024-01-01, got %s", got)
	}
}

func TestDateICTIgnoresCallerZone(t *testing.T) {
	// Same instant expressed in two zones must map to the same ICT date
	est := time.FixedZone("EST", -5*60*60)
	inUTC := time.Date(2024, 6, 10, 18, 30, 0, 0, time.UTC)
	inEST := inUTC.In(est)

	if DateICT(inUTC) != DateICT(inEST) {
		t.Errorf("same instant produced different ICT dates: %s vs %s",
			DateICT(inUTC), DateICT(inEST))
	}
}

func TestParseDateICTRoundTrip(t *testing.T) {
	got, err := ParseDateICT("2024-03-15")
	if err != nil {
		t.Fatalf("ParseDateICT: %v", err)
	}
	if DateICT(got) != "2024-03-15" {
		t.Errorf("round trip mismatch: %s", DateICT(got))
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected midnight, got %v", got)
	}
}

func TestStartOfDayICT(t *testing.T) {
	instant := time.Date(2024, 5, 20, 19, 45, 0, 0, time.UTC) // 02:45 next day ICT
	start := StartOfDayICT(instant)

	if DateICT(start) != "2024-05-21" {
		t.Errorf("expected start of 2024-05-21, got %s", DateICT(start))
	}
	if !start.Before(instant) {
		t.Errorf("start of day must not be after the instant")
	}
	if instant.Sub(start) >= 24*time.Hour {
		t.Errorf("instant is more than a day past its own start of day")
	}
}

func TestTodayICTShape(t *testing.T) {
	today := TodayICT()
	if _, err := time.Parse("2006-01-02", today); err != nil {
		t.Errorf("TodayICT returned unparseable date %q: %v", today, err)
	}
}
