package demand

import (
	"errors"
	"fmt"
	"time"
)

// HoursPerDay is the number of points in a daily shape.
const HoursPerDay = 24

var (
	// ErrInvalidShapeLength is returned when a daily shape has neither 12 nor 24 points.
	ErrInvalidShapeLength = errors.New("daily shape must have 12 or 24 points")
	// ErrInvalidShapeValue is returned for a shape point outside 0..100 percent.
	ErrInvalidShapeValue = errors.New("daily shape point out of range")
	// ErrMissingSeasonFactor is returned when a calendar month has no scale factor.
	ErrMissingSeasonFactor = errors.New("missing season factor")
	// ErrNegativeSeasonFactor is returned for a scale factor below zero.
	ErrNegativeSeasonFactor = errors.New("negative season factor")
)

// Shape is a typical day of load, as fractions of peak, with one scale
// factor per month. A Shape is immutable once built.
type Shape struct {
	fractions [HoursPerDay]float64
	factors   [12]float64
}

// NewShape builds a Shape from a daily schedule in percent of peak and a
// factor for every calendar month. A 12 point schedule is read as two hour
// steps and each point is repeated for both hours.
func NewShape(percent []float64, factors map[time.Month]float64) (Shape, error) {
	s := Shape{}

	var hourly []float64
	switch len(percent) {
	case HoursPerDay:
		hourly = percent
	case HoursPerDay / 2:
		hourly = make([]float64, 0, HoursPerDay)
		for _, p := range percent {
			hourly = append(hourly, p, p)
		}
	default:
		return Shape{}, fmt.Errorf("%w: got %d", ErrInvalidShapeLength, len(percent))
	}

	for h, p := range hourly {
		if !(p >= 0 && p <= 100) {
			return Shape{}, fmt.Errorf("%w: hour %d is %v%%", ErrInvalidShapeValue, h, p)
		}
		s.fractions[h] = p / 100
	}

	for m := range factors {
		if _, err := DaysIn(m, false); err != nil {
			return Shape{}, err
		}
	}
	for i, m := range Months {
		f, ok := factors[m]
		if !ok {
			return Shape{}, fmt.Errorf("%w: %s", ErrMissingSeasonFactor, m)
		}
		if !(f >= 0) {
			return Shape{}, fmt.Errorf("%w: %s is %v", ErrNegativeSeasonFactor, m, f)
		}
		s.factors[i] = f
	}

	return s, nil
}

// NewShapeByName is NewShape with factors keyed by month name.
func NewShapeByName(percent []float64, factors map[string]float64) (Shape, error) {
	byMonth := make(map[time.Month]float64, len(factors))
	for name, f := range factors {
		m, err := ParseMonth(name)
		if err != nil {
			return Shape{}, err
		}
		byMonth[m] = f
	}
	return NewShape(percent, byMonth)
}

// Fractions returns the normalized daily shape.
func (s Shape) Fractions() [HoursPerDay]float64 {
	return s.fractions
}

// Factor returns the season factor for month m.
func (s Shape) Factor(m time.Month) (float64, error) {
	if m < time.January || m > time.December {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMonth, int(m))
	}
	return s.factors[m-1], nil
}

// MonthPeak scales a total peak by the season factor of month m.
func (s Shape) MonthPeak(m time.Month, totalKW float64) (float64, error) {
	f, err := s.Factor(m)
	if err != nil {
		return 0, err
	}
	return f * totalKW, nil
}

// day fills dst with one day of the shape at the given peak.
func (s Shape) day(dst []float64, peakKW float64) {
	for h, f := range s.fractions {
		dst[h] = peakKW * f
	}
}
