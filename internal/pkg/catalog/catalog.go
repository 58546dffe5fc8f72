package catalog

import (
	"errors"
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ohowland/cgc_sizing/internal/pkg/asset/diesel"
	"github.com/ohowland/cgc_sizing/internal/pkg/asset/ess"
	"github.com/ohowland/cgc_sizing/internal/pkg/asset/pcs"
)

var (
	// ErrEmptyCatalog is returned when a catalog holds no usable generator.
	ErrEmptyCatalog = errors.New("catalog has no usable generators")
	// ErrUnknownCell is returned by Cell for a name not in the catalog.
	ErrUnknownCell = errors.New("unknown battery cell")
	// ErrUnknownInverter is returned by Inverter for a name not in the catalog.
	ErrUnknownInverter = errors.New("unknown inverter")
)

// Catalog is the equipment a study may choose from. It is read only once built.
type Catalog struct {
	generators []diesel.Unit
	batteries  []ess.Cell
	inverters  []pcs.Inverter
}

type document struct {
	Generators []diesel.Unit  `json:"Generators"`
	Batteries  []ess.Cell     `json:"Batteries"`
	Inverters  []pcs.Inverter `json:"Inverters"`
}

// New parses a JSON catalog document
func New(jsonCatalog []byte) (Catalog, error) {
	doc := document{}
	if err := json.Unmarshal(jsonCatalog, &doc); err != nil {
		return Catalog{}, err
	}
	return FromRecords(doc.Generators, doc.Batteries, doc.Inverters)
}

// Load reads a JSON catalog file.
func Load(path string) (Catalog, error) {
	jsonCatalog, err := ioutil.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	c, err := New(jsonCatalog)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// FromRecords builds a catalog from typed records. Generators without an
// apparent power rating and cells without voltage or capacity are dropped;
// generators are ordered by ascending RatedKVA, ties keeping input order.
func FromRecords(gens []diesel.Unit, cells []ess.Cell, invs []pcs.Inverter) (Catalog, error) {
	c := Catalog{}

	for _, g := range gens {
		if g.RatedKVA > 0 {
			c.generators = append(c.generators, g)
		}
	}
	if len(c.generators) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	sort.SliceStable(c.generators, func(i, j int) bool {
		return c.generators[i].RatedKVA < c.generators[j].RatedKVA
	})

	for _, b := range cells {
		if b.Validate() == nil {
			c.batteries = append(c.batteries, b)
		}
	}
	for _, inv := range invs {
		if inv.RatedKW > 0 {
			c.inverters = append(c.inverters, inv)
		}
	}

	return c, nil
}

// Generators returns the generator units by ascending apparent power. The
// slice is shared; fleets assembled from it point into it.
func (c Catalog) Generators() []diesel.Unit {
	return c.generators
}

// Batteries returns a copy of the usable battery cells.
func (c Catalog) Batteries() []ess.Cell {
	return append([]ess.Cell(nil), c.batteries...)
}

// Inverters returns a copy of the usable inverters.
func (c Catalog) Inverters() []pcs.Inverter {
	return append([]pcs.Inverter(nil), c.inverters...)
}

// Cell looks up a battery cell by name, case-insensitively.
func (c Catalog) Cell(name string) (ess.Cell, error) {
	for _, b := range c.batteries {
		if strings.EqualFold(b.Name, name) {
			return b, nil
		}
	}
	return ess.Cell{}, fmt.Errorf("%w: %q", ErrUnknownCell, name)
}

// Inverter looks up an inverter by name, case-insensitively.
func (c Catalog) Inverter(name string) (pcs.Inverter, error) {
	for _, inv := range c.inverters {
		if strings.EqualFold(inv.Name, name) {
			return inv, nil
		}
	}
	return pcs.Inverter{}, fmt.Errorf("%w: %q", ErrUnknownInverter, name)
}
