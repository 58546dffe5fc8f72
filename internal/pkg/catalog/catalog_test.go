package catalog

import (
	"testing"

	"github.com/ohowland/cgc_sizing/internal/pkg/asset/diesel"
	"gotest.tools/v3/assert"
)

const CATALOGPATH = "testdata/catalog.json"

func TestLoad(t *testing.T) {
	c, err := Load(CATALOGPATH)
	assert.NilError(t, err)

	gens := c.Generators()
	assert.Equal(t, len(gens), 7)
	for i := 1; i < len(gens); i++ {
		assert.Assert(t, gens[i-1].RatedKVA <= gens[i].RatedKVA)
	}
	// equal ratings keep file order
	assert.Equal(t, gens[1].Name, "AD-30")
	assert.Equal(t, gens[2].Name, "AD-30S")

	assert.Equal(t, len(c.Batteries()), 2)
	assert.Equal(t, len(c.Inverters()), 2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("testdata/missing.json")
	assert.Assert(t, err != nil)
}

func TestNewRejectsGarbage(t *testing.T) {
	_, err := New([]byte(`{"Generators": 5}`))
	assert.Assert(t, err != nil)
}

func TestEmptyCatalog(t *testing.T) {
	_, err := New([]byte(`{"Generators": [{"Name": "unrated"}]}`))
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestLookup(t *testing.T) {
	c, err := Load(CATALOGPATH)
	assert.NilError(t, err)

	cell, err := c.Cell("lfp 12v 100ah")
	assert.NilError(t, err)
	assert.Equal(t, cell.RatedCapacityAh, 100.0)

	_, err = c.Cell("broken")
	assert.ErrorIs(t, err, ErrUnknownCell)

	inv, err := c.Inverter("PCS 48V 30kW")
	assert.NilError(t, err)
	assert.Equal(t, inv.InputVoltage, 48.0)

	_, err = c.Inverter("nope")
	assert.ErrorIs(t, err, ErrUnknownInverter)
}

func TestAssembleFromCatalog(t *testing.T) {
	c, err := Load(CATALOGPATH)
	assert.NilError(t, err)

	fleet, err := diesel.Assemble("2x50", c.Generators(), 150)
	assert.NilError(t, err)
	assert.Equal(t, fleet.Units()[0].Name, "AD-60")
	assert.Equal(t, fleet.Units()[0], &c.Generators()[3])
}
