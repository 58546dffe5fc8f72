package ess

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidBankParameters is returned when bank voltage, depth of
// discharge or efficiency is not positive.
var ErrInvalidBankParameters = errors.New("invalid bank parameters")

// SizeForDeficit returns the bank capacity in Ah that covers deficitWh at
// bankVoltage when only dod of the capacity is usable and eff of the stored
// energy is recovered.
func SizeForDeficit(deficitWh, bankVoltage, dod, eff float64) (float64, error) {
	if err := checkBank(bankVoltage, dod, eff); err != nil {
		return 0, err
	}
	return deficitWh / (bankVoltage * dod * eff), nil
}

// SeriesCount is the number of cells in series to reach bankVoltage. It is
// not rounded.
func SeriesCount(bankVoltage float64, c Cell) float64 {
	return bankVoltage / c.RatedVoltage
}

// ParallelCount is the number of strings in parallel to reach requiredAh.
// It is not rounded.
func ParallelCount(requiredAh float64, c Cell) float64 {
	return requiredAh / c.RatedCapacityAh
}

func checkBank(bankVoltage, dod, eff float64) error {
	if !(bankVoltage > 0) || !(dod > 0) || !(eff > 0) {
		return fmt.Errorf("%w: voltage %v, depth of discharge %v, efficiency %v",
			ErrInvalidBankParameters, bankVoltage, dod, eff)
	}
	if dod > 1 || eff > 1 {
		return fmt.Errorf("%w: depth of discharge %v and efficiency %v must not exceed 1",
			ErrInvalidBankParameters, dod, eff)
	}
	return nil
}

// Bank is a series/parallel array of identical cells. Every aggregate is
// computed from the cell and the counts on read.
type Bank struct {
	pid              uuid.UUID
	cell             Cell
	series           int
	parallel         int
	depthOfDischarge float64
	efficiency       float64
}

// NewBank returns a bank of series x parallel cells.
func NewBank(c Cell, series, parallel int, dod, eff float64) (Bank, error) {
	if err := c.Validate(); err != nil {
		return Bank{}, err
	}
	if series < 0 || parallel < 0 {
		return Bank{}, fmt.Errorf("%w: negative cell count %dx%d", ErrInvalidBankParameters, series, parallel)
	}
	if err := checkBank(1, dod, eff); err != nil {
		return Bank{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Bank{}, err
	}

	return Bank{
		pid:              pid,
		cell:             c,
		series:           series,
		parallel:         parallel,
		depthOfDischarge: dod,
		efficiency:       eff,
	}, nil
}

// DesignBank sizes a bank of cell c for deficitWh at bankVoltage. Counts
// are rounded up so the bank meets both the voltage and the energy.
func DesignBank(c Cell, bankVoltage, deficitWh, dod, eff float64) (Bank, error) {
	if err := c.Validate(); err != nil {
		return Bank{}, err
	}
	if _, err := SizeForDeficit(deficitWh, bankVoltage, dod, eff); err != nil {
		return Bank{}, err
	}

	series := int(math.Ceil(SeriesCount(bankVoltage, c)))
	// a string may overshoot bankVoltage; size the strings at their real voltage
	stringAh, _ := SizeForDeficit(deficitWh, float64(series)*c.RatedVoltage, dod, eff)
	parallel := int(math.Ceil(ParallelCount(stringAh, c)))
	if deficitWh > 0 && parallel == 0 {
		parallel = 1
	}

	return NewBank(c, series, parallel, dod, eff)
}

// PID is an accessor for the process id
func (b Bank) PID() uuid.UUID {
	return b.pid
}

// Cell is the cell the bank is built from.
func (b Bank) Cell() Cell {
	return b.cell
}

// Series is the number of cells per string.
func (b Bank) Series() int {
	return b.series
}

// Parallel is the number of strings.
func (b Bank) Parallel() int {
	return b.parallel
}

// DepthOfDischarge is the usable share of capacity.
func (b Bank) DepthOfDischarge() float64 {
	return b.depthOfDischarge
}

// Efficiency is the round trip efficiency assumed for the bank.
func (b Bank) Efficiency() float64 {
	return b.efficiency
}

// Cells is the total number of cells.
func (b Bank) Cells() int {
	return b.series * b.parallel
}

// Voltage is the string voltage.
func (b Bank) Voltage() float64 {
	return b.cell.RatedVoltage * float64(b.series)
}

// CapacityAh is the bank capacity.
func (b Bank) CapacityAh() float64 {
	return b.cell.RatedCapacityAh * float64(b.parallel)
}

// EnergyWh is the nameplate energy.
func (b Bank) EnergyWh() float64 {
	return b.Voltage() * b.CapacityAh()
}

// UsableEnergyWh is the energy the bank returns within its depth of
// discharge after round trip losses.
func (b Bank) UsableEnergyWh() float64 {
	return b.EnergyWh() * b.depthOfDischarge * b.efficiency
}

// WeightKg is the total cell mass.
func (b Bank) WeightKg() float64 {
	return b.cell.WeightKg * float64(b.Cells())
}

// Cost is the total cell price.
func (b Bank) Cost() decimal.Decimal {
	return decimal.NewFromFloat(b.cell.Price).Mul(decimal.NewFromInt(int64(b.Cells())))
}

// SpecificEnergy is the nameplate energy per kg; ok is false for a weightless bank.
func (b Bank) SpecificEnergy() (whPerKg float64, ok bool) {
	w := b.WeightKg()
	if w <= 0 {
		return 0, false
	}
	return b.EnergyWh() / w, true
}

// VolumeL is the summed cell volume, ignoring packing.
func (b Bank) VolumeL() (float64, bool) {
	v, ok := b.cell.VolumeL()
	if !ok {
		return 0, false
	}
	return v * float64(b.Cells()), true
}

// Covers reports whether the usable energy reaches deficitWh.
func (b Bank) Covers(deficitWh float64) bool {
	return b.UsableEnergyWh() >= deficitWh
}

func (b Bank) String() string {
	return fmt.Sprintf("%ds x %dp of %s: %.1f V, %.1f Ah, %.2f kWh",
		b.series, b.parallel, b.cell.Name, b.Voltage(), b.CapacityAh(), b.EnergyWh()/1000)
}
