package cdf

import (
	"fmt"
	"regexp"
	"time"
)

// partialDatePattern accepts a full date, a year-month, or a year alone.
var partialDatePattern = regexp.MustCompile(
	`^(?P<year>[0-9]{4})(?:-(?P<month>[0-9]{2}))?(?:-(?P<day>[0-9]{2}))?$`)

// Precision is the resolution a PartialDate was written at.
type Precision int

const (
	// PrecisionYear means only the year is known.
	PrecisionYear Precision = iota
	// PrecisionMonth means year and month are known.
	PrecisionMonth
	// PrecisionDay means the date is complete.
	PrecisionDay
)

// PartialDate is the schema family's union date type: a full date, a
// year-month, or a year alone.
type PartialDate struct {
	Year  int
	Month int // 0 when absent
	Day   int // 0 when absent
}

// ParsePartialDate parses text of the forms yyyy, yyyy-mm or yyyy-mm-dd.
// Complete dates must be real calendar dates.
func ParsePartialDate(s string) (PartialDate, bool) {
	m := partialDatePattern.FindStringSubmatch(s)
	if m == nil {
		return PartialDate{}, false
	}
	var d PartialDate
	fmt.Sscanf(m[1], "%d", &d.Year)
	if m[2] != "" {
		fmt.Sscanf(m[2], "%d", &d.Month)
		if d.Month < 1 || d.Month > 12 {
			return PartialDate{}, false
		}
	}
	if m[3] != "" {
		fmt.Sscanf(m[3], "%d", &d.Day)
		// Round-trip through time.Date to reject the likes of 02-30.
		t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
		if t.Year() != d.Year || int(t.Month()) != d.Month || t.Day() != d.Day {
			return PartialDate{}, false
		}
	}
	return d, true
}

// Precision returns the resolution the date was written at.
func (d PartialDate) Precision() Precision {
	switch {
	case d.Day != 0:
		return PrecisionDay
	case d.Month != 0:
		return PrecisionMonth
	default:
		return PrecisionYear
	}
}

func (d PartialDate) String() string {
	switch d.Precision() {
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d", d.Year)
	}
}

// Compare orders two partial dates at the coarser of their precisions.
// The first result is negative when d precedes o, zero when they agree,
// positive when d follows o. The second result reports whether the
// comparison is conclusive: dates that agree at the shared precision but
// were written at different precisions cannot be ordered.
func (d PartialDate) Compare(o PartialDate) (int, bool) {
	if d.Year != o.Year {
		return d.Year - o.Year, true
	}
	if d.Month == 0 || o.Month == 0 {
		return 0, d.Precision() == o.Precision()
	}
	if d.Month != o.Month {
		return d.Month - o.Month, true
	}
	if d.Day == 0 || o.Day == 0 {
		return 0, d.Precision() == o.Precision()
	}
	return d.Day - o.Day, true
}
