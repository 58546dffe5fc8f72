package ess

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Default round trip efficiencies by chemistry.
const (
	LithiumEfficiency  = 0.96
	LeadAcidEfficiency = 0.80
	fallbackEfficiency = LithiumEfficiency
	cubicMMPerLitre    = 1e6
	defaultChemistry   = "li-ion"
)

// ErrInvalidCell is returned for a cell with non-positive voltage or capacity.
var ErrInvalidCell = errors.New("invalid battery cell")

// Dimensions are the outer measures of a cell in millimetres.
type Dimensions struct {
	Length float64 `json:"Length"`
	Width  float64 `json:"Width"`
	Height float64 `json:"Height"`
}

// Cell is a catalog battery module.
type Cell struct {
	Name            string      `json:"Name"`
	RatedVoltage    float64     `json:"RatedVoltage"`
	RatedCapacityAh float64     `json:"RatedCapacityAh"`
	SpecificEnergy  float64     `json:"SpecificEnergy"` // Wh/kg
	WeightKg        float64     `json:"WeightKg"`
	Price           float64     `json:"Price"`
	Dimensions      *Dimensions `json:"Dimensions,omitempty"`
	Chemistry       string      `json:"Chemistry"`
	// RoundTripEfficiency overrides the chemistry default when non-zero.
	RoundTripEfficiency float64 `json:"RoundTripEfficiency"`
}

// NewCell returns a configured Cell
func NewCell(jsonConfig []byte) (Cell, error) {
	c := Cell{}
	if err := json.Unmarshal(jsonConfig, &c); err != nil {
		return Cell{}, err
	}
	return c, c.Validate()
}

// Validate checks the electrical ratings.
func (c Cell) Validate() error {
	if c.RatedVoltage <= 0 || c.RatedCapacityAh <= 0 {
		return fmt.Errorf("%w: %q: voltage %v, capacity %v", ErrInvalidCell, c.Name, c.RatedVoltage, c.RatedCapacityAh)
	}
	if c.RoundTripEfficiency < 0 || c.RoundTripEfficiency > 1 {
		return fmt.Errorf("%w: %q: efficiency %v", ErrInvalidCell, c.Name, c.RoundTripEfficiency)
	}
	return nil
}

// Efficiency is the round trip efficiency of the cell.
func (c Cell) Efficiency() float64 {
	if c.RoundTripEfficiency > 0 {
		return c.RoundTripEfficiency
	}
	chem := strings.ToLower(c.Chemistry)
	if chem == "" {
		chem = defaultChemistry
	}
	for _, tag := range []string{"li", "ion", "lipo", "lifepo", "lyp"} {
		if strings.Contains(chem, tag) {
			return LithiumEfficiency
		}
	}
	for _, tag := range []string{"pb", "lead"} {
		if strings.Contains(chem, tag) {
			return LeadAcidEfficiency
		}
	}
	return fallbackEfficiency
}

// EnergyWh is the nameplate energy of the cell.
func (c Cell) EnergyWh() float64 {
	return c.RatedVoltage * c.RatedCapacityAh
}

// UsableEnergyWh is the nameplate energy after round trip losses.
func (c Cell) UsableEnergyWh() float64 {
	return c.EnergyWh() * c.Efficiency()
}

// VolumeL is the cell volume in litres; ok is false when no dimensions are known.
func (c Cell) VolumeL() (v float64, ok bool) {
	if c.Dimensions == nil {
		return 0, false
	}
	d := c.Dimensions
	return d.Length * d.Width * d.Height / cubicMMPerLitre, true
}
