package study

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ohowland/cgc_sizing/internal/pkg/asset/diesel"
	"github.com/ohowland/cgc_sizing/internal/pkg/asset/ess"
	"github.com/ohowland/cgc_sizing/internal/pkg/asset/pcs"
	"github.com/ohowland/cgc_sizing/internal/pkg/catalog"
	"github.com/ohowland/cgc_sizing/internal/pkg/deficit"
	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
	"github.com/ohowland/cgc_sizing/internal/pkg/load"
)

const whPerKWh = 1000

// Report is the outcome of a sizing study.
type Report struct {
	pid             uuid.UUID
	Name            string              `json:"name"`
	PeakKW          float64             `json:"peak_kw"`
	PeakKVA         float64             `json:"peak_kva"`
	PeakKVAR        float64             `json:"peak_kvar"`
	AnnualEnergyKWh float64             `json:"annual_energy_kwh"`
	Monthly         []demand.MonthStats `json:"monthly"`
	Fleet           FleetReport         `json:"fleet"`
	Deficit         DeficitReport       `json:"deficit"`
	Storage         StorageReport       `json:"storage"`
	Inverter        *pcs.Compatibility  `json:"inverter,omitempty"`
}

// PID is an accessor for the process id
func (r Report) PID() uuid.UUID {
	return r.pid
}

// FleetReport describes the assembled generator fleet.
type FleetReport struct {
	Topology string   `json:"topology"`
	Units    []string `json:"units"`
	RatedKVA float64  `json:"rated_kva"`
	RatedKW  float64  `json:"rated_kw"`
	// FuelAtPeak is the fleet fuel rate when carrying the whole peak.
	FuelAtPeak float64 `json:"fuel_at_peak"`
}

// DeficitReport describes the shortfall of the baseline plant.
type DeficitReport struct {
	BaselineKW float64         `json:"baseline_kw"`
	Worst      deficit.Episode `json:"worst"`
	AnnualKWh  float64         `json:"annual_kwh"`
	Days       int             `json:"days"`
}

// StorageReport describes the battery bank sized for the worst day.
type StorageReport struct {
	Cell             string          `json:"cell"`
	BankVoltage      float64         `json:"bank_voltage"`
	DepthOfDischarge float64         `json:"depth_of_discharge"`
	Efficiency       float64         `json:"efficiency"`
	RequiredAh       float64         `json:"required_ah"`
	SeriesCount      float64         `json:"series_count"`
	ParallelCount    float64         `json:"parallel_count"`
	Series           int             `json:"series"`
	Parallel         int             `json:"parallel"`
	Voltage          float64         `json:"voltage"`
	CapacityAh       float64         `json:"capacity_ah"`
	EnergyKWh        float64         `json:"energy_kwh"`
	UsableKWh        float64         `json:"usable_kwh"`
	WeightKg         float64         `json:"weight_kg"`
	Cost             decimal.Decimal `json:"cost"`
	Summary          string          `json:"summary"`
}

// Demand builds the connected load and the annual demand series of a study.
func Demand(cfg Config) (load.Total, *demand.Series, error) {
	total, err := load.NewTotal(cfg.Loads...)
	if err != nil {
		return load.Total{}, nil, err
	}

	shape, err := demand.NewShapeByName(cfg.DailyShape, cfg.SeasonFactors)
	if err != nil {
		return load.Total{}, nil, err
	}

	series, err := demand.Expand(shape, total.KW(), cfg.LeapYear)
	if err != nil {
		return load.Total{}, nil, err
	}
	return total, series, nil
}

// Run sizes the generator fleet and the battery bank of a study against
// the equipment in cat.
func Run(cfg Config, cat catalog.Catalog) (Report, error) {
	total, series, err := Demand(cfg)
	if err != nil {
		return Report{}, err
	}

	fleet, err := diesel.Assemble(cfg.Topology, cat.Generators(), total.KVA())
	if err != nil {
		return Report{}, err
	}

	plant, err := cfg.Hydro.Plant()
	if err != nil {
		return Report{}, err
	}
	worst, err := deficit.Worst(series, plant.BaselineKW())
	if err != nil {
		return Report{}, err
	}
	annual, days, err := deficit.Annual(series, plant.BaselineKW())
	if err != nil {
		return Report{}, err
	}

	storage, bank, err := sizeStorage(cfg.Storage, cat, worst.EnergyKWh*whPerKWh)
	if err != nil {
		return Report{}, err
	}

	pid, err := uuid.NewUUID()
	if err != nil {
		return Report{}, err
	}

	r := Report{
		pid:             pid,
		Name:            cfg.Name,
		PeakKW:          total.KW(),
		PeakKVA:         total.KVA(),
		PeakKVAR:        total.KVAR(),
		AnnualEnergyKWh: series.EnergyKWh(),
		Monthly:         demand.MonthlyStats(series),
		Fleet:           fleetReport(fleet, total.KW()),
		Deficit: DeficitReport{
			BaselineKW: plant.BaselineKW(),
			Worst:      worst,
			AnnualKWh:  annual,
			Days:       days,
		},
		Storage: storage,
	}

	if cfg.Storage.Inverter != "" {
		inv, err := cat.Inverter(cfg.Storage.Inverter)
		if err != nil {
			return Report{}, err
		}
		compat := pcs.Check(bank, inv, worst.PeakKW, cfg.Storage.VoltageTolerance)
		r.Inverter = &compat
	}

	return r, nil
}

func fleetReport(f diesel.Fleet, peakKW float64) FleetReport {
	names := make([]string, 0, len(f.Units()))
	for _, u := range f.Units() {
		names = append(names, u.Name)
	}
	return FleetReport{
		Topology:   f.Topology().String(),
		Units:      names,
		RatedKVA:   f.RatedKVA(),
		RatedKW:    f.RatedKW(),
		FuelAtPeak: f.FuelConsumption(peakKW),
	}
}

func sizeStorage(cfg StorageConfig, cat catalog.Catalog, deficitWh float64) (StorageReport, ess.Bank, error) {
	if cfg.Cell == "" {
		return StorageReport{}, ess.Bank{}, ErrMissingCell
	}
	cell, err := cat.Cell(cfg.Cell)
	if err != nil {
		return StorageReport{}, ess.Bank{}, err
	}

	eff := cfg.Efficiency
	if eff == 0 {
		eff = cell.Efficiency()
	}

	requiredAh, err := ess.SizeForDeficit(deficitWh, cfg.BankVoltage, cfg.DepthOfDischarge, eff)
	if err != nil {
		return StorageReport{}, ess.Bank{}, fmt.Errorf("storage: %w", err)
	}

	bank, err := ess.DesignBank(cell, cfg.BankVoltage, deficitWh, cfg.DepthOfDischarge, eff)
	if err != nil {
		return StorageReport{}, ess.Bank{}, fmt.Errorf("storage: %w", err)
	}

	return StorageReport{
		Cell:             cell.Name,
		BankVoltage:      cfg.BankVoltage,
		DepthOfDischarge: cfg.DepthOfDischarge,
		Efficiency:       eff,
		RequiredAh:       requiredAh,
		SeriesCount:      ess.SeriesCount(cfg.BankVoltage, cell),
		ParallelCount:    ess.ParallelCount(requiredAh, cell),
		Series:           bank.Series(),
		Parallel:         bank.Parallel(),
		Voltage:          bank.Voltage(),
		CapacityAh:       bank.CapacityAh(),
		EnergyKWh:        bank.EnergyWh() / whPerKWh,
		UsableKWh:        bank.UsableEnergyWh() / whPerKWh,
		WeightKg:         bank.WeightKg(),
		Cost:             bank.Cost(),
		Summary:          bank.String(),
	}, bank, nil
}
