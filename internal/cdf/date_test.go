package cdf

import "testing"

func TestParsePartialDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  PartialDate
		ok    bool
	}{
		{"full date", "2024-11-05", PartialDate{2024, 11, 5}, true},
		{"year and month", "2024-11", PartialDate{2024, 11, 0}, true},
		{"year only", "2024", PartialDate{2024, 0, 0}, true},
		{"month out of range", "2024-13", PartialDate{}, false},
		{"impossible day", "2024-02-30", PartialDate{}, false},
		{"leap day", "2024-02-29", PartialDate{2024, 2, 29}, true},
		{"non-leap february", "2023-02-29", PartialDate{}, false},
		{"slashes", "2024/11/05", PartialDate{}, false},
		{"two-digit year", "24-11-05", PartialDate{}, false},
		{"trailing junk", "2024-11-05x", PartialDate{}, false},
		{"empty", "", PartialDate{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePartialDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParsePartialDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParsePartialDate(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPartialDateString(t *testing.T) {
	tests := []struct {
		date PartialDate
		want string
	}{
		{PartialDate{2024, 11, 5}, "2024-11-05"},
		{PartialDate{2024, 11, 0}, "2024-11"},
		{PartialDate{2024, 0, 0}, "2024"},
	}
	for _, tt := range tests {
		if got := tt.date.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPartialDateCompare(t *testing.T) {
	tests := []struct {
		name       string
		a, b       string
		wantSign   int
		conclusive bool
	}{
		{"full dates ordered", "2024-11-04", "2024-11-05", -1, true},
		{"full dates equal", "2024-11-05", "2024-11-05", 0, true},
		{"different years any precision", "2023", "2024-11-05", -1, true},
		{"different months mixed precision", "2024-10", "2024-11-05", -1, true},
		{"same year mixed precision", "2024", "2024-11-05", 0, false},
		{"same month mixed precision", "2024-11", "2024-11-05", 0, false},
		{"same year both year precision", "2024", "2024", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := ParsePartialDate(tt.a)
			if !ok {
				t.Fatalf("bad fixture date %q", tt.a)
			}
			b, ok := ParsePartialDate(tt.b)
			if !ok {
				t.Fatalf("bad fixture date %q", tt.b)
			}

			delta, conclusive := a.Compare(b)
			if sign(delta) != tt.wantSign {
				t.Errorf("Compare(%s, %s) delta sign = %d, want %d",
					tt.a, tt.b, sign(delta), tt.wantSign)
			}
			if conclusive != tt.conclusive {
				t.Errorf("Compare(%s, %s) conclusive = %v, want %v",
					tt.a, tt.b, conclusive, tt.conclusive)
			}

			// Compare is antisymmetric.
			back, _ := b.Compare(a)
			if sign(back) != -sign(delta) {
				t.Errorf("Compare(%s, %s) = %d but reversed = %d", tt.a, tt.b, delta, back)
			}
		})
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func TestPartialDatePrecision(t *testing.T) {
	tests := []struct {
		input string
		want  Precision
	}{
		{"2024-11-05", PrecisionDay},
		{"2024-11", PrecisionMonth},
		{"2024", PrecisionYear},
	}
	for _, tt := range tests {
		d, _ := ParsePartialDate(tt.input)
		if got := d.Precision(); got != tt.want {
			t.Errorf("Precision(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
