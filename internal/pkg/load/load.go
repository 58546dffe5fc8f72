package load

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPowerFactor is returned for a power factor outside (0, 1].
var ErrInvalidPowerFactor = errors.New("power factor must be in (0, 1]")

// Load is a group of consumers of one type.
type Load struct {
	Name        string  `json:"name" mapstructure:"name"`
	KW          float64 `json:"kw" mapstructure:"kw"`
	PowerFactor float64 `json:"power_factor" mapstructure:"power_factor"`
}

// New returns a validated Load.
func New(name string, kw float64, pf float64) (Load, error) {
	l := Load{Name: name, KW: kw, PowerFactor: pf}
	return l, l.Validate()
}

// Validate checks the power factor and sign of the active power.
func (l Load) Validate() error {
	if l.PowerFactor <= 0 || l.PowerFactor > 1 {
		return fmt.Errorf("%w: %q has %v", ErrInvalidPowerFactor, l.Name, l.PowerFactor)
	}
	if l.KW < 0 {
		return fmt.Errorf("load %q: negative active power %v", l.Name, l.KW)
	}
	return nil
}

// WithKW returns a copy of the load with a new active power.
func (l Load) WithKW(kw float64) Load {
	l.KW = kw
	return l
}

// ApparentKVA is the apparent power drawn by the load.
func (l Load) ApparentKVA() float64 {
	return l.KW / l.PowerFactor
}

// ReactiveKVAR is the reactive power drawn by the load.
func (l Load) ReactiveKVAR() float64 {
	s := l.ApparentKVA()
	return math.Sqrt(math.Max(s*s-l.KW*l.KW, 0))
}

// Total is the connected load of a site.
type Total struct {
	loads []Load
}

// NewTotal validates and collects loads.
func NewTotal(loads ...Load) (Total, error) {
	t := Total{}
	if err := t.Extend(loads); err != nil {
		return Total{}, err
	}
	return t, nil
}

// Loads returns a copy of the member loads.
func (t Total) Loads() []Load {
	return append([]Load(nil), t.loads...)
}

// Append adds a load.
func (t *Total) Append(l Load) error {
	if err := l.Validate(); err != nil {
		return err
	}
	t.loads = append(t.loads, l)
	return nil
}

// Extend adds all loads, or none if any is invalid.
func (t *Total) Extend(loads []Load) error {
	for _, l := range loads {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	t.loads = append(t.loads, loads...)
	return nil
}

// Remove drops the load at idx.
func (t *Total) Remove(idx int) error {
	if idx < 0 || idx >= len(t.loads) {
		return fmt.Errorf("load index %d out of range [0, %d)", idx, len(t.loads))
	}
	t.loads = append(t.loads[:idx:idx], t.loads[idx+1:]...)
	return nil
}

// KW is the total active peak.
func (t Total) KW() float64 {
	sum := 0.0
	for _, l := range t.loads {
		sum += l.KW
	}
	return sum
}

// KVAR is the total reactive peak.
func (t Total) KVAR() float64 {
	sum := 0.0
	for _, l := range t.loads {
		sum += l.ReactiveKVAR()
	}
	return sum
}

// KVA is the arithmetic sum of member apparent power, the conservative
// basis for sizing generation.
func (t Total) KVA() float64 {
	sum := 0.0
	for _, l := range t.loads {
		sum += l.ApparentKVA()
	}
	return sum
}
