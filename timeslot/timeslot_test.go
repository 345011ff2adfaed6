package timeslot

import (
	"errors"
	"testing"
)

func TestParse_Canonicalizes(t *testing.T) {
	cases := map[string]Clock{
		"9:30":   "09:30",
		"09:30":  "09:30",
		"0:00":   "00:00",
		"23:59":  "23:59",
		"12:00":  "12:00",
		" 10:15": "10:15",
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{"", "24:00", "12:60", "9.30", "930", "12:5", "-1:00", "12:00 PM"} {
		if _, err := Parse(in); err == nil {
			t.Fatalf("Parse(%q): expected error", in)
		}
	}
}

func TestClockOrdering_MidnightAndNoon(t *testing.T) {
	if !Clock("00:00").Before("00:30") {
		t.Fatal("midnight should sort before 00:30")
	}
	if !Clock("09:30").Before("10:00") {
		t.Fatal("09:30 should sort before 10:00")
	}
	if !Clock("11:30").Before("12:00") {
		t.Fatal("11:30 should sort before noon")
	}
	if Clock("13:00").Before("12:00") {
		t.Fatal("13:00 must not sort before noon")
	}
	if !Clock("23:30").Before("24:00") {
		t.Fatal("23:30 should sort before the end-of-day bound")
	}
}

func TestAddMinutes(t *testing.T) {
	got, err := AddMinutes("09:00", 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10:00" {
		t.Fatalf("09:00+60 = %q, want 10:00", got)
	}

	got, err = AddMinutes("23:30", 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "24:00" {
		t.Fatalf("23:30+30 = %q, want 24:00", got)
	}

	if _, err := AddMinutes("23:45", 30); !errors.Is(err, ErrPastMidnight) {
		t.Fatalf("expected ErrPastMidnight, got %v", err)
	}
}

func TestRequiredSlots(t *testing.T) {
	cases := []struct {
		duration int
		want     int
	}{
		{0, 1},  // default duration policy
		{-5, 1}, // default duration policy
		{15, 1},
		{30, 1},
		{45, 2}, // ceiling: overconsumes grid time
		{60, 2},
		{90, 3},
	}
	for _, tc := range cases {
		if got := RequiredSlots(tc.duration); got != tc.want {
			t.Fatalf("RequiredSlots(%d) = %d, want %d", tc.duration, got, tc.want)
		}
	}
}

func TestOnGrid(t *testing.T) {
	for _, c := range []Clock{"00:00", "09:00", "09:30", "23:30"} {
		if !c.OnGrid() {
			t.Fatalf("%s should be on the grid", c)
		}
	}
	for _, c := range []Clock{"09:15", "10:01", "23:59"} {
		if c.OnGrid() {
			t.Fatalf("%s should not be on the grid", c)
		}
	}
}

func TestSlotsCovering(t *testing.T) {
	cases := []struct {
		name     string
		start    Clock
		duration int
		want     []Clock
	}{
		{"single unit", "09:00", 30, []Clock{"09:00"}},
		{"hour on grid", "09:00", 60, []Clock{"09:00", "09:30"}},
		{"default duration", "09:00", 0, []Clock{"09:00"}},
		{"off-grid start spills into both units", "10:15", 30, []Clock{"10:00", "10:30"}},
		{"last unit of the day", "23:30", 30, []Clock{"23:30"}},
	}
	for _, tc := range cases {
		got := SlotsCovering(tc.start, tc.duration)
		if len(got) != len(tc.want) {
			t.Fatalf("%s: SlotsCovering = %v, want %v", tc.name, got, tc.want)
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s: SlotsCovering = %v, want %v", tc.name, got, tc.want)
			}
		}
	}
}

func TestWithin(t *testing.T) {
	if !Within("09:30", "09:00", "10:00") {
		t.Fatal("09:30 is within [09:00, 10:00)")
	}
	if !Within("09:00", "09:00", "10:00") {
		t.Fatal("range start is within the half-open window")
	}
	if Within("10:00", "09:00", "10:00") {
		t.Fatal("range end is excluded from the half-open window")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name         string
		aStart, aEnd Clock
		bStart, bEnd Clock
		want         bool
	}{
		{"identical", "10:00", "10:30", "10:00", "10:30", true},
		{"request starts inside existing", "10:15", "10:45", "10:00", "10:30", true},
		{"existing starts inside request", "10:00", "11:00", "10:30", "11:00", true},
		{"request contains existing", "09:00", "11:00", "09:30", "10:00", true},
		{"back to back", "10:00", "10:30", "10:30", "11:00", false},
		{"disjoint", "09:00", "09:30", "10:00", "10:30", false},
		{"around midnight bound", "23:30", "24:00", "23:00", "23:45", true},
	}
	for _, tc := range cases {
		if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
			t.Fatalf("%s: Overlaps = %v, want %v", tc.name, got, tc.want)
		}
		// The test is symmetric by definition.
		if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
			t.Fatalf("%s (swapped): Overlaps = %v, want %v", tc.name, got, tc.want)
		}
	}
}
