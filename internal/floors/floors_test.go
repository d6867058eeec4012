package floors

import "testing"

var validLabels = []string{"B99", "B10", "B2", "B1", "1", "2", "9", "10", "99", "100", "999"}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, label := range validLabels {
		f, err := Parse(label)
		if err != nil {
			t.Errorf("Parse(%q) returned error %v, expected nil", label, err)
			continue
		}
		if got := Format(f.Numeric, f.IsBasement); got != label {
			t.Errorf("Format(Parse(%q)) = %q, expected %q", label, got, label)
		}
		if got := f.Label(); got != label {
			t.Errorf("Parse(%q).Label() = %q, expected %q", label, got, label)
		}
	}
}

func TestParseRejectsBadLabels(t *testing.T) {
	badLabels := []string{
		"", "0", "01", "007", "1000", "B", "B0", "B01", "B100",
		"12a", "a12", "+5", "-5", "B-1", "1.5", "9999", " 1", "1 ",
	}
	for _, label := range badLabels {
		if _, err := Parse(label); err == nil {
			t.Errorf("Parse(%q) = nil error, expected rejection", label)
		}
		if Valid(label) {
			t.Errorf("Valid(%q) = true, expected false", label)
		}
	}
}

func TestParseNumericOrdering(t *testing.T) {
	cases := []struct {
		label   string
		numeric int
	}{
		{"B99", -99},
		{"B1", -1},
		{"1", 1},
		{"999", 999},
	}
	for _, c := range cases {
		f, err := Parse(c.label)
		if err != nil {
			t.Fatalf("Parse(%q) returned error %v", c.label, err)
		}
		if f.Numeric != c.numeric {
			t.Errorf("Parse(%q).Numeric = %d, expected %d", c.label, f.Numeric, c.numeric)
		}
	}
}

func TestCompareAntisymmetry(t *testing.T) {
	for _, a := range validLabels {
		for _, b := range validLabels {
			if Compare(a, b) != -Compare(b, a) {
				t.Errorf("Compare(%q, %q) = %d but Compare(%q, %q) = %d",
					a, b, Compare(a, b), b, a, Compare(b, a))
			}
		}
	}
}

func TestCompare(t *testing.T) {
	if got := Compare("B2", "3"); got != -1 {
		t.Errorf("Compare(B2, 3) = %d, expected -1", got)
	}
	if got := Compare("10", "9"); got != 1 {
		t.Errorf("Compare(10, 9) = %d, expected 1", got)
	}
	if got := Compare("5", "5"); got != 0 {
		t.Errorf("Compare(5, 5) = %d, expected 0", got)
	}
	// Invalid labels compare equal; callers validate first.
	if got := Compare("bogus", "5"); got != 0 {
		t.Errorf("Compare(bogus, 5) = %d, expected 0", got)
	}
}

func TestInRange(t *testing.T) {
	cases := []struct {
		floor, lowest, highest string
		want                   bool
	}{
		{"5", "1", "10", true},
		{"1", "1", "10", true},
		{"10", "1", "10", true},
		{"11", "1", "10", false},
		{"B1", "1", "10", false},
		{"B2", "B3", "5", true},
	}
	for _, c := range cases {
		if got := InRange(c.floor, c.lowest, c.highest); got != c.want {
			t.Errorf("InRange(%q, %q, %q) = %v, expected %v",
				c.floor, c.lowest, c.highest, got, c.want)
		}
	}
}

func TestNextToward(t *testing.T) {
	cases := []struct {
		current, destination string
		want                 string
	}{
		{"2", "5", "3"},
		{"5", "2", "4"},
		{"2", "3", "3"},
		{"B3", "B1", "B2"},
		{"B1", "2", "1"},
		{"1", "B2", "B1"},
	}
	for _, c := range cases {
		got, err := NextToward(c.current, c.destination, "B3", "10")
		if err != nil {
			t.Errorf("NextToward(%q, %q) returned error %v", c.current, c.destination, err)
			continue
		}
		if got != c.want {
			t.Errorf("NextToward(%q, %q) = %q, expected %q", c.current, c.destination, got, c.want)
		}
	}
}

func TestNextTowardOutOfRange(t *testing.T) {
	if _, err := NextToward("10", "11", "1", "10"); err == nil {
		t.Errorf("NextToward above the highest floor = nil error, expected rejection")
	}
	if _, err := NextToward("1", "B1", "1", "10"); err == nil {
		t.Errorf("NextToward below the lowest floor = nil error, expected rejection")
	}
	if _, err := NextToward("junk", "5", "1", "10"); err == nil {
		t.Errorf("NextToward from an invalid label = nil error, expected rejection")
	}
}

func TestStepFromCrossesBoundary(t *testing.T) {
	// There is no floor 0: stepping down from 1 lands on B1 and stepping
	// up from B1 lands on 1.
	got, err := StepFrom("1", -1)
	if err != nil || got != "B1" {
		t.Errorf("StepFrom(1, down) = %q, %v, expected B1", got, err)
	}
	got, err = StepFrom("B1", 1)
	if err != nil || got != "1" {
		t.Errorf("StepFrom(B1, up) = %q, %v, expected 1", got, err)
	}
	if _, err := StepFrom("999", 1); err == nil {
		t.Errorf("StepFrom(999, up) = nil error, expected rejection")
	}
	if _, err := StepFrom("B99", -1); err == nil {
		t.Errorf("StepFrom(B99, down) = nil error, expected rejection")
	}
}
