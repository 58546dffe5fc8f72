package models

import (
	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
)

// DemandProfile is the response body of a demand query. Day is 0 for a
// whole month and Month is empty for the whole year.
type DemandProfile struct {
	Month     string    `json:"month,omitempty"`
	Day       int       `json:"day,omitempty"`
	PeakKW    float64   `json:"peak_kw"`
	EnergyKWh float64   `json:"energy_kwh"`
	Hours     []float64 `json:"hours,omitempty"`
}

// AnnualDemand is the response body of the yearly demand query.
type AnnualDemand struct {
	PeakKW    float64             `json:"peak_kw"`
	EnergyKWh float64             `json:"energy_kwh"`
	Leap      bool                `json:"leap"`
	Monthly   []demand.MonthStats `json:"monthly"`
}

// Error is the body of every failed request.
type Error struct {
	Error string `json:"error"`
}
