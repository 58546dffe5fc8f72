package demand

import (
	"math"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

var testSchedule = []float64{15, 15, 25, 70, 60, 70, 80, 55, 70, 100, 65, 30}

func testFactors() map[time.Month]float64 {
	return map[time.Month]float64{
		time.January:   1.0,
		time.February:  1.0,
		time.March:     0.9,
		time.April:     0.8,
		time.May:       0.8,
		time.June:      0.7,
		time.July:      0.7,
		time.August:    0.7,
		time.September: 0.8,
		time.October:   0.9,
		time.November:  0.9,
		time.December:  1.0,
	}
}

func doubled(in []float64) []float64 {
	out := make([]float64, 0, 2*len(in))
	for _, v := range in {
		out = append(out, v, v)
	}
	return out
}

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func newTestSeries(t *testing.T, leap bool) (Shape, *Series) {
	t.Helper()
	shape, err := NewShape(testSchedule, testFactors())
	assert.NilError(t, err)
	s, err := Expand(shape, 357, leap)
	assert.NilError(t, err)
	return shape, s
}

func TestDaysIn(t *testing.T) {
	total := 0
	for _, m := range Months {
		d, err := DaysIn(m, false)
		assert.NilError(t, err)
		total += d
	}
	assert.Equal(t, total, 365)

	feb, err := DaysIn(time.February, true)
	assert.NilError(t, err)
	assert.Equal(t, feb, 29)

	_, err = DaysIn(time.Month(13), false)
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("  april ")
	assert.NilError(t, err)
	assert.Equal(t, m, time.April)

	m, err = ParseMonth("DEC")
	assert.NilError(t, err)
	assert.Equal(t, m, time.December)

	_, err = ParseMonth("Smarch")
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestNewShapeLength(t *testing.T) {
	_, err := NewShape(make([]float64, 24), testFactors())
	assert.NilError(t, err)

	_, err = NewShape(make([]float64, 12), testFactors())
	assert.NilError(t, err)

	for _, n := range []int{0, 1, 11, 13, 23, 25, 48} {
		_, err = NewShape(make([]float64, n), testFactors())
		assert.ErrorIs(t, err, ErrInvalidShapeLength)
	}
}

func TestNewShapeDoublesTwelvePoints(t *testing.T) {
	shape, err := NewShape(testSchedule, testFactors())
	assert.NilError(t, err)

	f := shape.Fractions()
	for i, p := range testSchedule {
		assert.Equal(t, f[2*i], p/100)
		assert.Equal(t, f[2*i+1], p/100)
	}
}

func TestNewShapeRejectsBadInput(t *testing.T) {
	bad := append([]float64{}, testSchedule...)
	bad[3] = 120
	_, err := NewShape(bad, testFactors())
	assert.ErrorIs(t, err, ErrInvalidShapeValue)

	factors := testFactors()
	delete(factors, time.July)
	_, err = NewShape(testSchedule, factors)
	assert.ErrorIs(t, err, ErrMissingSeasonFactor)

	factors = testFactors()
	factors[time.July] = -0.1
	_, err = NewShape(testSchedule, factors)
	assert.ErrorIs(t, err, ErrNegativeSeasonFactor)

	bad = append([]float64{}, testSchedule...)
	bad[5] = math.NaN()
	_, err = NewShape(bad, testFactors())
	assert.ErrorIs(t, err, ErrInvalidShapeValue)

	factors = testFactors()
	factors[time.July] = math.NaN()
	_, err = NewShape(testSchedule, factors)
	assert.ErrorIs(t, err, ErrNegativeSeasonFactor)

	factors = testFactors()
	factors[time.Month(0)] = 1
	_, err = NewShape(testSchedule, factors)
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestNewShapeByName(t *testing.T) {
	byName := map[string]float64{}
	for m, f := range testFactors() {
		byName[m.String()] = f
	}
	shape, err := NewShapeByName(testSchedule, byName)
	assert.NilError(t, err)

	peak, err := shape.MonthPeak(time.March, 100)
	assert.NilError(t, err)
	assert.Assert(t, approx(peak, 90))

	byName["Brumaire"] = 1
	_, err = NewShapeByName(testSchedule, byName)
	assert.ErrorIs(t, err, ErrUnknownMonth)
}

func TestExpandLength(t *testing.T) {
	_, s := newTestSeries(t, false)
	assert.Equal(t, s.Len(), 365*24)
	assert.Equal(t, len(s.Annual()), 8760)

	_, s = newTestSeries(t, true)
	assert.Equal(t, s.Len(), 366*24)
}

func TestExpandValues(t *testing.T) {
	shape, s := newTestSeries(t, false)
	f := shape.Fractions()
	year := s.Annual()

	pos := 0
	for _, m := range Months {
		days, _ := DaysIn(m, false)
		factor, err := shape.Factor(m)
		assert.NilError(t, err)
		for d := 0; d < days; d++ {
			for h := 0; h < HoursPerDay; h++ {
				want := factor * 357 * f[h]
				assert.Assert(t, approx(year[pos], want), "%s day %d hour %d: %v != %v", m, d+1, h, year[pos], want)
				pos++
			}
		}
	}
	assert.Equal(t, pos, len(year))
}

func TestExpandTwelveMatchesTwentyFour(t *testing.T) {
	twelve, err := NewShape(testSchedule, testFactors())
	assert.NilError(t, err)
	twentyFour, err := NewShape(doubled(testSchedule), testFactors())
	assert.NilError(t, err)

	a, err := Expand(twelve, 250, false)
	assert.NilError(t, err)
	b, err := Expand(twentyFour, 250, false)
	assert.NilError(t, err)

	assert.DeepEqual(t, a.Annual(), b.Annual())
}

func TestExpandNonNegative(t *testing.T) {
	_, s := newTestSeries(t, true)
	for i, v := range s.Annual() {
		assert.Assert(t, v >= 0, "hour %d is %v", i, v)
	}

	shape, _ := NewShape(testSchedule, testFactors())
	_, err := Expand(shape, -1, false)
	assert.ErrorIs(t, err, ErrNegativePeak)

	_, err = Expand(shape, math.NaN(), false)
	assert.ErrorIs(t, err, ErrNegativePeak)
}

func TestMonthAndDaySlicesMatchAnnual(t *testing.T) {
	for _, leap := range []bool{false, true} {
		_, s := newTestSeries(t, leap)
		year := s.Annual()
		pos := 0
		for _, m := range Months {
			month, err := s.Monthly(m)
			assert.NilError(t, err)
			days, _ := s.DaysIn(m)
			assert.Equal(t, len(month), days*HoursPerDay)

			for d := 1; d <= days; d++ {
				day, err := s.Daily(m, d)
				assert.NilError(t, err)
				assert.DeepEqual(t, day, month[(d-1)*HoursPerDay:d*HoursPerDay])
				assert.DeepEqual(t, day, year[pos:pos+HoursPerDay])

				off, err := s.Offset(m, d)
				assert.NilError(t, err)
				assert.Equal(t, off, pos)
				pos += HoursPerDay
			}
		}
	}
}

func TestDailyAddressing(t *testing.T) {
	_, s := newTestSeries(t, false)

	_, err := s.Daily(time.February, 29)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = s.Daily(time.April, 0)
	assert.ErrorIs(t, err, ErrInvalidDay)

	_, err = s.Daily(time.Month(13), 1)
	assert.ErrorIs(t, err, ErrUnknownMonth)

	_, err = s.Monthly(time.Month(0))
	assert.ErrorIs(t, err, ErrUnknownMonth)

	_, s = newTestSeries(t, true)
	_, err = s.Daily(time.February, 29)
	assert.NilError(t, err)
}

func TestSlicesAreCapped(t *testing.T) {
	_, s := newTestSeries(t, false)
	day, err := s.Daily(time.January, 1)
	assert.NilError(t, err)
	assert.Equal(t, cap(day), HoursPerDay)

	next, _ := s.Daily(time.January, 2)
	first := next[0]
	_ = append(day, -1)
	assert.Equal(t, next[0], first)
}

func TestMonthlyStats(t *testing.T) {
	_, s := newTestSeries(t, false)
	stats := MonthlyStats(s)
	assert.Equal(t, len(stats), 12)

	jan := stats[0]
	assert.Equal(t, jan.Month, time.January)
	assert.Assert(t, approx(jan.MaxKW, 357))
	assert.Assert(t, approx(jan.MinKW, 357*0.15))

	sum := 0.0
	for _, p := range testSchedule {
		sum += 2 * p / 100
	}
	assert.Assert(t, approx(jan.MeanKW, 357*sum/24))
	assert.Assert(t, approx(jan.EnergyKWh, 31*357*sum))

	total := 0.0
	for _, m := range stats {
		total += m.EnergyKWh
	}
	assert.Assert(t, approx(total, s.EnergyKWh()))
}
