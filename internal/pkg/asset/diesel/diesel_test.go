package diesel

import (
	"math"
	"testing"

	"gotest.tools/v3/assert"
)

func testCatalog() []Unit {
	return []Unit{
		{Name: "AD-8", RatedKW: 8, RatedKVA: 10, SpecificFuel: 0.3},
		{Name: "AD-16", RatedKW: 16, RatedKVA: 20, SpecificFuel: 0.28},
		{Name: "AD-30", RatedKW: 30, RatedKVA: 37.5, SpecificFuel: 0.26},
		{Name: "AD-40", RatedKW: 40, RatedKVA: 50, SpecificFuel: 0.25},
		{Name: "AD-60", RatedKW: 60, RatedKVA: 75, SpecificFuel: 0.24},
		{Name: "AD-100", RatedKW: 100, RatedKVA: 125, SpecificFuel: 0.23},
	}
}

func TestParseTopology(t *testing.T) {
	cases := []struct {
		spec string
		want Topology
	}{
		{"2x50", Topology{2, 50, 0}},
		{" 3x30+10\n", Topology{3, 30, 10}},
		{"2x40+20", Topology{2, 40, 20}},
		{"1x100", Topology{1, 100, 0}},
		{"4x25+0", Topology{4, 25, 0}},
		{"0x0+100", Topology{0, 0, 100}},
	}
	for _, c := range cases {
		got, err := ParseTopology(c.spec)
		assert.NilError(t, err, c.spec)
		assert.Equal(t, got, c.want, c.spec)
	}
}

func TestParseTopologySyntax(t *testing.T) {
	for _, spec := range []string{"", "2x", "x50", "2*50", "2x50+", "2x50+10+5", "-2x50", "2 x 50", "2x50.5", "two x fifty"} {
		_, err := ParseTopology(spec)
		assert.ErrorIs(t, err, ErrInvalidTopologySyntax, spec)
	}
}

func TestParseTopologyCoverage(t *testing.T) {
	_, err := ParseTopology("2x40+30")
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)
	assert.ErrorContains(t, err, "110%")

	_, err = ParseTopology("2x40")
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)
	assert.ErrorContains(t, err, "80%")

	// N*M wraps around to 100 in int arithmetic
	_, err = ParseTopology("4611686018427387929x4")
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)

	_, err = Assemble("4611686018427387929x4", testCatalog(), 100)
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)

	_, err = ParseTopology("1x101")
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)
}

func TestTopologyString(t *testing.T) {
	assert.Equal(t, Topology{2, 50, 0}.String(), "2x50")
	assert.Equal(t, Topology{3, 30, 10}.String(), "3x30+10")
}

func TestAssembleTwoByFifty(t *testing.T) {
	catalog := testCatalog()
	fleet, err := Assemble("2x50", catalog, 100)
	assert.NilError(t, err)

	units := fleet.Units()
	assert.Equal(t, len(units), 2)
	for _, u := range units {
		assert.Equal(t, u.Name, "AD-40")
		assert.Assert(t, u == &catalog[3], "fleet must reference the catalog entry")
	}
	assert.Equal(t, fleet.RatedKVA(), 2*catalog[3].RatedKVA)
	assert.Equal(t, fleet.Topology(), Topology{2, 50, 0})
	assert.Assert(t, fleet.PID().String() != "")
}

func TestAssembleWithReserve(t *testing.T) {
	catalog := testCatalog()
	fleet, err := Assemble("3x30+10", catalog, 100)
	assert.NilError(t, err)

	units := fleet.Units()
	assert.Equal(t, len(units), 4)
	for _, u := range units[:3] {
		assert.Equal(t, u.Name, "AD-30")
	}
	assert.Equal(t, units[3].Name, "AD-8")
	assert.Equal(t, fleet.RatedKVA(), 3*37.5+10)
}

func TestAssembleFirstFitFollowsCatalogOrder(t *testing.T) {
	catalog := testCatalog()
	reversed := make([]Unit, len(catalog))
	for i := range catalog {
		reversed[len(catalog)-1-i] = catalog[i]
	}

	fleet, err := Assemble("2x50", reversed, 100)
	assert.NilError(t, err)
	assert.Equal(t, fleet.Units()[0].Name, "AD-100")
}

func TestAssembleThresholdIsInclusive(t *testing.T) {
	fleet, err := Assemble("1x100", testCatalog(), 75)
	assert.NilError(t, err)
	assert.Equal(t, fleet.Units()[0].Name, "AD-60")
}

func TestAssembleNoQualifyingUnit(t *testing.T) {
	_, err := Assemble("1x100", testCatalog(), 1000)
	assert.ErrorIs(t, err, ErrNoQualifyingUnit)
	assert.ErrorContains(t, err, "main slot")

	_, err = Assemble("2x40+20", testCatalog()[:1], 40)
	assert.ErrorIs(t, err, ErrNoQualifyingUnit)

	_, err = Assemble("2x50", nil, 10)
	assert.ErrorIs(t, err, ErrNoQualifyingUnit)
}

func TestAssembleRejectsBadSpec(t *testing.T) {
	_, err := Assemble("2x40+30", testCatalog(), 100)
	assert.ErrorIs(t, err, ErrTopologyCoverageMismatch)

	_, err = Assemble("2by50", testCatalog(), 100)
	assert.ErrorIs(t, err, ErrInvalidTopologySyntax)
}

func TestMinKW(t *testing.T) {
	u := Unit{RatedKW: 100}
	assert.Equal(t, u.MinKW(), 40.0)
}

func TestSpecificFuelConsumption(t *testing.T) {
	u := Unit{RatedKW: 100, SpecificFuel: 0.25}
	assert.Assert(t, math.Abs(u.SpecificFuelConsumption(100)-0.25) < 1e-12)
	assert.Assert(t, math.Abs(u.SpecificFuelConsumption(0)-0.075) < 1e-12)
	assert.Assert(t, math.Abs(u.FuelRate(50)-50*(0.075+0.7*0.25*0.5)) < 1e-12)

	custom := Unit{RatedKW: 100, SpecificFuel: 0.25, FuelCurveCoeff: 0.5}
	assert.Assert(t, math.Abs(custom.SpecificFuelConsumption(0)-0.125) < 1e-12)

	assert.Equal(t, Unit{}.SpecificFuelConsumption(10), 0.0)
}

func TestFleetFuelConsumption(t *testing.T) {
	catalog := testCatalog()
	fleet, err := Assemble("2x50", catalog, 100)
	assert.NilError(t, err)

	// two identical units share the load evenly
	want := 2 * catalog[3].FuelRate(30)
	assert.Assert(t, math.Abs(fleet.FuelConsumption(60)-want) < 1e-12)

	assert.Equal(t, Fleet{}.FuelConsumption(10), 0.0)
}
