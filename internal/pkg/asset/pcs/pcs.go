package pcs

import (
	"encoding/json"
	"math"

	"github.com/ohowland/cgc_sizing/internal/pkg/asset/ess"
)

// DefaultVoltageTolerance is the relative mismatch accepted between bank
// and inverter DC voltage.
const DefaultVoltageTolerance = 0.05

// DefaultEfficiency is the inverter conversion efficiency when none is configured.
const DefaultEfficiency = 0.95

// Inverter is a catalog power conversion system between the battery bank
// and the AC bus.
type Inverter struct {
	Name          string  `json:"Name"`
	RatedKW       float64 `json:"RatedKW"`
	MaxKW         float64 `json:"MaxKW"`
	PeakKW        float64 `json:"PeakKW"`
	InputVoltage  float64 `json:"InputVoltage"`
	OutputVoltage float64 `json:"OutputVoltage"`
	// MaxCapacityAh is the largest bank the charger can manage, 0 for no limit.
	MaxCapacityAh float64 `json:"MaxCapacityAh"`
	Efficiency    float64 `json:"Efficiency"`
	Price         float64 `json:"Price"`
}

// New returns a configured Inverter
func New(jsonConfig []byte) (Inverter, error) {
	inv := Inverter{}
	err := json.Unmarshal(jsonConfig, &inv)
	return inv, err
}

func (inv Inverter) efficiency() float64 {
	if inv.Efficiency <= 0 {
		return DefaultEfficiency
	}
	return inv.Efficiency
}

// OutputKW is the AC power available when the inverter draws inputKW.
func (inv Inverter) OutputKW(inputKW float64) float64 {
	return inputKW * inv.efficiency()
}

// Compatibility is the result of checking a bank against an inverter.
type Compatibility struct {
	Inverter      string  `json:"inverter"`
	BankVoltage   float64 `json:"bank_voltage"`
	InputVoltage  float64 `json:"input_voltage"`
	VoltageMatch  bool    `json:"voltage_match"`
	BankAh        float64 `json:"bank_ah"`
	MaxAh         float64 `json:"max_ah"`
	CapacityOK    bool    `json:"capacity_ok"`
	RequiredKW    float64 `json:"required_kw"`
	AvailableKW   float64 `json:"available_kw"`
	PowerOK       bool    `json:"power_ok"`
	InverterPrice float64 `json:"inverter_price"`
}

// OK reports whether every check passed.
func (c Compatibility) OK() bool {
	return c.VoltageMatch && c.CapacityOK && c.PowerOK
}

// Check tests the bank voltage against the inverter input within a
// relative tolerance, the bank capacity against the inverter limit, and the
// inverter output against requiredKW of AC discharge.
func Check(b ess.Bank, inv Inverter, requiredKW, tolerance float64) Compatibility {
	if tolerance <= 0 {
		tolerance = DefaultVoltageTolerance
	}

	available := inv.OutputKW(inv.RatedKW)

	return Compatibility{
		Inverter:      inv.Name,
		BankVoltage:   b.Voltage(),
		InputVoltage:  inv.InputVoltage,
		VoltageMatch:  isClose(b.Voltage(), inv.InputVoltage, tolerance),
		BankAh:        b.CapacityAh(),
		MaxAh:         inv.MaxCapacityAh,
		CapacityOK:    inv.MaxCapacityAh == 0 || b.CapacityAh() <= inv.MaxCapacityAh,
		RequiredKW:    requiredKW,
		AvailableKW:   available,
		PowerOK:       available >= requiredKW,
		InverterPrice: inv.Price,
	}
}

func isClose(a, b, rel float64) bool {
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}
