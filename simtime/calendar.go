package simtime

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// CalendarDate is a proleptic Gregorian date and time of day, UT.
type CalendarDate struct {
	Year   int
	Month  int // 1-12
	Day    int // 1-31
	Hour   int
	Minute int
	Second int
}

// CalendarLayout is the layout accepted by ParseCalendarDate and produced by String.
const CalendarLayout = "2006-01-02T15:04:05"

var daysIn = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days of month m in year y.
func DaysInMonth(y, m int) int {
	if m == 2 && julian.LeapYearGregorian(y) {
		return 29
	}
	return daysIn[m]
}

func (d CalendarDate) validate() error {
	switch {
	case d.Month < 1 || d.Month > 12:
		return fmt.Errorf("%w: month %d", ErrInvalidCalendarDate, d.Month)
	case d.Day < 1 || d.Day > DaysInMonth(d.Year, d.Month):
		return fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidCalendarDate, d.Day, d.Year, d.Month)
	case d.Hour < 0 || d.Hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidCalendarDate, d.Hour)
	case d.Minute < 0 || d.Minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidCalendarDate, d.Minute)
	case d.Second < 0 || d.Second > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidCalendarDate, d.Second)
	}
	return nil
}

// JulianDate converts d to a Julian Date. The result must lie in the
// supported band.
func (d CalendarDate) JulianDate() (float64, error) {
	if err := d.validate(); err != nil {
		return 0, err
	}
	sod := d.Hour*3600 + d.Minute*60 + d.Second
	jd := julian.CalendarGregorianToJD(d.Year, d.Month, float64(d.Day)+float64(sod)/secondsPerDay)
	if !InBand(jd) {
		return 0, fmt.Errorf("%w: %v is outside the julian date band", ErrInvalidCalendarDate, d)
	}
	return jd, nil
}

// FromJulianDate converts jd to a calendar date rounded to the nearest
// second. Rounding happens on the whole instant before the day is split
// off, so 23:59:59.6 becomes 00:00:00 of the next day.
func FromJulianDate(jd float64) CalendarDate {
	secs := int64(math.Round((jd + 0.5) * secondsPerDay))
	jdn := floorDiv(secs, secondsPerDay)
	sod := int(secs - jdn*secondsPerDay)

	y, m, day := gregorianFromDayNumber(jdn)
	return CalendarDate{
		Year:   y,
		Month:  m,
		Day:    day,
		Hour:   sod / 3600,
		Minute: sod % 3600 / 60,
		Second: sod % 60,
	}
}

// gregorianFromDayNumber converts a Julian Day Number to a proleptic
// Gregorian date using Richards' integer algorithm. Valid for jdn >= 0.
func gregorianFromDayNumber(jdn int64) (year, month, day int) {
	const (
		y = 4716
		j = 1401
		m = 2
		n = 12
		r = 4
		p = 1461
		v = 3
		u = 5
		s = 153
		w = 2
		B = 274277
		C = -38
	)
	f := jdn + j + (((4*jdn+B)/146097)*3)/4 + C
	e := r*f + v
	g := (e % p) / r
	h := u*g + w
	day = int((h%s)/u + 1)
	month = int((h/s+m)%n + 1)
	year = int(e/p - y + (n+m-int64(month))/n)
	return year, month, day
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// DateLayout is the date-only form accepted by ParseCalendarDate, read as midnight.
const DateLayout = "2006-01-02"

// ParseCalendarDate parses "2006-01-02T15:04:05" or "2006-01-02". The whole
// string must match one of the layouts.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(CalendarLayout, s)
	if err != nil {
		if t, err = time.Parse(DateLayout, s); err != nil {
			return CalendarDate{}, fmt.Errorf("%w: %q does not match %s or %s", ErrInvalidCalendarDate, s, CalendarLayout, DateLayout)
		}
	}
	d := CalendarDate{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
	if err := d.validate(); err != nil {
		return CalendarDate{}, err
	}
	return d, nil
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}

// Time returns d as a UTC time.Time.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, d.Hour, d.Minute, d.Second, 0, time.UTC)
}
