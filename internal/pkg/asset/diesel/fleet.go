package diesel

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNoQualifyingUnit is returned when no catalog unit is large enough for a slot.
var ErrNoQualifyingUnit = errors.New("no catalog unit meets the capacity threshold")

// Fleet is a diesel generator plant assembled from catalog units. Members
// point into the catalog the fleet was assembled from.
type Fleet struct {
	pid      uuid.UUID
	topology Topology
	units    []*Unit
}

// PID is an accessor for the process id
func (f Fleet) PID() uuid.UUID {
	return f.pid
}

// Topology is the layout the fleet was assembled to.
func (f Fleet) Topology() Topology {
	return f.topology
}

// Units returns the selected units in selection order.
func (f Fleet) Units() []*Unit {
	return append([]*Unit(nil), f.units...)
}

// RatedKVA is the sum of member apparent power ratings.
func (f Fleet) RatedKVA() float64 {
	sum := 0.0
	for _, u := range f.units {
		sum += u.RatedKVA
	}
	return sum
}

// RatedKW is the sum of member active power ratings.
func (f Fleet) RatedKW() float64 {
	sum := 0.0
	for _, u := range f.units {
		sum += u.RatedKW
	}
	return sum
}

// FuelConsumption is the hourly fuel burn of the fleet carrying kw, shared
// between members in proportion to their rating.
func (f Fleet) FuelConsumption(kw float64) float64 {
	rated := f.RatedKW()
	if rated == 0 {
		return 0
	}
	sum := 0.0
	for _, u := range f.units {
		sum += u.FuelRate(kw * u.RatedKW / rated)
	}
	return sum
}

// Assemble builds a fleet for the topology spec against a peak apparent
// load. For each slot the first catalog unit, in catalog order, whose
// RatedKVA reaches the slot's share of the peak is taken: Count copies for
// the main slot and one for the reserve. Catalog order therefore decides
// the pick; sort ascending by RatedKVA to get the smallest sufficient unit.
func Assemble(spec string, catalog []Unit, peakKVA float64) (Fleet, error) {
	t, err := ParseTopology(spec)
	if err != nil {
		return Fleet{}, err
	}

	units := make([]*Unit, 0, t.Count+1)

	if t.Count > 0 && t.Percent > 0 {
		u, err := firstFit(catalog, peakKVA*float64(t.Percent)/100)
		if err != nil {
			return Fleet{}, fmt.Errorf("main slot %d%%: %w", t.Percent, err)
		}
		for i := 0; i < t.Count; i++ {
			units = append(units, u)
		}
	}

	if t.Reserve > 0 {
		u, err := firstFit(catalog, peakKVA*float64(t.Reserve)/100)
		if err != nil {
			return Fleet{}, fmt.Errorf("reserve slot %d%%: %w", t.Reserve, err)
		}
		units = append(units, u)
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Fleet{}, err
	}

	return Fleet{pid: pid, topology: t, units: units}, nil
}

func firstFit(catalog []Unit, thresholdKVA float64) (*Unit, error) {
	for i := range catalog {
		if catalog[i].RatedKVA >= thresholdKVA {
			return &catalog[i], nil
		}
	}
	return nil, fmt.Errorf("%w: need %.2f kVA", ErrNoQualifyingUnit, thresholdKVA)
}
