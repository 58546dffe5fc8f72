package deficit

import (
	"time"

	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
)

// DailySource is an hourly series addressable by calendar day.
type DailySource interface {
	DaysIn(m time.Month) (int, error)
	Daily(m time.Month, day int) ([]float64, error)
}

// Day is a calendar position. The zero Day means no day was found.
type Day struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// IsZero reports whether d is the no-deficit sentinel.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Episode is the unmet energy of one day against the baseline.
type Episode struct {
	EnergyKWh float64 `json:"energy_kwh"`
	// PeakKW is the largest single hour shortfall of the day.
	PeakKW float64 `json:"peak_kw"`
	Day    Day     `json:"day"`
}

// Found reports whether the episode carries any deficit.
func (e Episode) Found() bool {
	return e.EnergyKWh > 0
}

// DayEpisode sums the shortfall max(demand - baseline, 0) over one day.
func DayEpisode(hours []float64, baselineKW float64) (energy, peak float64) {
	for _, kw := range hours {
		if short := kw - baselineKW; short > 0 {
			energy += short
			if short > peak {
				peak = short
			}
		}
	}
	return energy, peak
}

// Worst returns the day with the largest unmet energy when demand is served
// by baselineKW. Days are visited from January 1 to December 31 and the
// first of equal days wins. With no deficit anywhere the zero Episode is
// returned.
func Worst(src DailySource, baselineKW float64) (Episode, error) {
	return fold(src, Episode{}, func(acc Episode, d Day, hours []float64) Episode {
		energy, peak := DayEpisode(hours, baselineKW)
		if energy > acc.EnergyKWh {
			return Episode{EnergyKWh: energy, PeakKW: peak, Day: d}
		}
		return acc
	})
}

// Annual returns the total unmet energy of the year and the number of
// days with any deficit.
func Annual(src DailySource, baselineKW float64) (energyKWh float64, days int, err error) {
	type total struct {
		energy float64
		days   int
	}
	acc, err := fold(src, total{}, func(acc total, _ Day, hours []float64) total {
		energy, _ := DayEpisode(hours, baselineKW)
		if energy > 0 {
			acc.energy += energy
			acc.days++
		}
		return acc
	})
	return acc.energy, acc.days, err
}

func fold[T any](src DailySource, init T, step func(T, Day, []float64) T) (T, error) {
	acc := init
	for _, m := range demand.Months {
		days, err := src.DaysIn(m)
		if err != nil {
			return init, err
		}
		for d := 1; d <= days; d++ {
			hours, err := src.Daily(m, d)
			if err != nil {
				return init, err
			}
			acc = step(acc, Day{Month: m, Day: d}, hours)
		}
	}
	return acc, nil
}
