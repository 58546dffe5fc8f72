package hydro

import (
	"encoding/json"
	"errors"
)

// DefaultRatedVoltage is the plant bus voltage in kV when none is configured.
const DefaultRatedVoltage = 0.4

// Plant is the run-of-river baseline generation of the micro-grid.
type Plant struct {
	Name         string  `json:"Name"`
	RatedKW      float64 `json:"RatedKW"`
	RatedVoltage float64 `json:"RatedVoltage"`
}

// New returns a configured Plant
func New(jsonConfig []byte) (Plant, error) {
	p := Plant{}
	if err := json.Unmarshal(jsonConfig, &p); err != nil {
		return Plant{}, err
	}
	return p.WithDefaults()
}

// Validate checks the rating.
func (p Plant) Validate() error {
	if !(p.RatedKW >= 0) {
		return errors.New("hydro plant rated power must not be negative")
	}
	return nil
}

// WithDefaults returns a validated copy with the default voltage filled in.
func (p Plant) WithDefaults() (Plant, error) {
	if err := p.Validate(); err != nil {
		return Plant{}, err
	}
	if p.RatedVoltage == 0 {
		p.RatedVoltage = DefaultRatedVoltage
	}
	return p, nil
}

// RatedKVA equals RatedKW; the plant runs at unity power factor.
func (p Plant) RatedKVA() float64 {
	return p.RatedKW
}

// BaselineKW is the firm capacity the plant contributes every hour.
func (p Plant) BaselineKW() float64 {
	return p.RatedKW
}
