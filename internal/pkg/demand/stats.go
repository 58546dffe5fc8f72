package demand

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MonthStats summarizes one month of a series.
type MonthStats struct {
	Month     time.Month `json:"month"`
	MeanKW    float64    `json:"mean_kw"`
	MinKW     float64    `json:"min_kw"`
	MaxKW     float64    `json:"max_kw"`
	EnergyKWh float64    `json:"energy_kwh"`
}

// MonthlyStats returns mean, min, max and energy for every month in order.
func MonthlyStats(s *Series) []MonthStats {
	out := make([]MonthStats, 0, len(Months))
	for _, m := range Months {
		v, _ := s.Monthly(m)
		out = append(out, MonthStats{
			Month:     m,
			MeanKW:    stat.Mean(v, nil),
			MinKW:     floats.Min(v),
			MaxKW:     floats.Max(v),
			EnergyKWh: floats.Sum(v),
		})
	}
	return out
}
