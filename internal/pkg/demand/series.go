package demand

import (
	"errors"
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// ErrNegativePeak is returned when the total peak load is below zero.
var ErrNegativePeak = errors.New("total peak load must not be negative")

// Series is an hourly demand profile for one year, laid out month by month
// and day by day. Values are in the unit of the total peak (kW), one value
// per hour. A Series is read only after Expand.
type Series struct {
	values  []float64
	offsets [13]int
	leap    bool
	peakKW  float64
}

// Expand replays the daily shape for every day of the year, scaled by each
// month's factor and the total peak.
func Expand(shape Shape, totalKW float64, leap bool) (*Series, error) {
	if !(totalKW >= 0) {
		return nil, fmt.Errorf("%w: %v", ErrNegativePeak, totalKW)
	}

	s := &Series{
		values: make([]float64, DaysInYear(leap)*HoursPerDay),
		leap:   leap,
		peakKW: totalKW,
	}

	pos := 0
	for i, m := range Months {
		s.offsets[i] = pos
		days, _ := DaysIn(m, leap)
		peak := shape.factors[i] * totalKW
		first := s.values[pos : pos+HoursPerDay]
		shape.day(first, peak)
		for d := 1; d < days; d++ {
			copy(s.values[pos+d*HoursPerDay:], first)
		}
		pos += days * HoursPerDay
	}
	s.offsets[12] = pos

	return s, nil
}

// Leap reports whether the series covers a leap year.
func (s *Series) Leap() bool {
	return s.leap
}

// PeakKW is the total peak the series was expanded from.
func (s *Series) PeakKW() float64 {
	return s.peakKW
}

// Len is the number of hourly values, 8760 or 8784.
func (s *Series) Len() int {
	return len(s.values)
}

// Annual returns the whole year. The returned slice must not be modified.
func (s *Series) Annual() []float64 {
	return s.values[:len(s.values):len(s.values)]
}

// Monthly returns the hourly values of month m.
func (s *Series) Monthly(m time.Month) ([]float64, error) {
	if m < time.January || m > time.December {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
	}
	lo, hi := s.offsets[m-1], s.offsets[m]
	return s.values[lo:hi:hi], nil
}

// Daily returns the 24 hourly values of a day. Every day in a month has the
// same profile; day only selects the position in the year.
func (s *Series) Daily(m time.Month, day int) ([]float64, error) {
	if err := checkDay(m, day, s.leap); err != nil {
		return nil, err
	}
	lo := s.offsets[m-1] + (day-1)*HoursPerDay
	hi := lo + HoursPerDay
	return s.values[lo:hi:hi], nil
}

// DaysIn returns the number of days of month m in this series' year.
func (s *Series) DaysIn(m time.Month) (int, error) {
	return DaysIn(m, s.leap)
}

// Offset is the index into Annual of hour 0 on the given day.
func (s *Series) Offset(m time.Month, day int) (int, error) {
	if err := checkDay(m, day, s.leap); err != nil {
		return 0, err
	}
	return s.offsets[m-1] + (day-1)*HoursPerDay, nil
}

// EnergyKWh is the annual energy demand.
func (s *Series) EnergyKWh() float64 {
	return floats.Sum(s.values)
}
