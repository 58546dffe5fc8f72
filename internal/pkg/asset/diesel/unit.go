package diesel

// DefaultFuelCurveCoeff is the no-load share of specific fuel consumption.
const DefaultFuelCurveCoeff = 0.3

// MinLoadRatio is the lowest continuous loading of a unit, per unit of rating.
const MinLoadRatio = 0.4

// Unit is a catalog diesel generator set.
type Unit struct {
	Name         string  `json:"Name"`
	RatedKW      float64 `json:"RatedKW"`
	RatedKVA     float64 `json:"RatedKVA"`
	PeakKW       float64 `json:"PeakKW"`
	Phases       int     `json:"Phases"`
	RatedVoltage float64 `json:"RatedVoltage"`
	// SpecificFuel is fuel burned per kWh at rated load.
	SpecificFuel   float64 `json:"SpecificFuel"`
	FuelCurveCoeff float64 `json:"FuelCurveCoeff"`
}

// MinKW is the minimum continuous active power of the unit.
func (u Unit) MinKW() float64 {
	return MinLoadRatio * u.RatedKW
}

func (u Unit) fuelCurveCoeff() float64 {
	if u.FuelCurveCoeff == 0 {
		return DefaultFuelCurveCoeff
	}
	return u.FuelCurveCoeff
}

// SpecificFuelConsumption is the fuel burned per kWh when the unit is
// loaded to kw. Part load raises the specific consumption.
func (u Unit) SpecificFuelConsumption(kw float64) float64 {
	if u.RatedKW == 0 {
		return 0
	}
	c := u.fuelCurveCoeff()
	return c*u.SpecificFuel + (1-c)*u.SpecificFuel*(kw/u.RatedKW)
}

// FuelRate is the hourly fuel burn at kw.
func (u Unit) FuelRate(kw float64) float64 {
	return u.SpecificFuelConsumption(kw) * kw
}
