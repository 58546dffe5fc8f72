package main

import (
	"fmt"
	"time"

	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
	"github.com/ohowland/cgc_sizing/internal/pkg/study"
)

func printReport(r study.Report) {
	fmt.Printf("STUDY %s\n", r.Name)
	fmt.Printf("  peak load:        %.1f kW, %.1f kVA, %.1f kVAR\n", r.PeakKW, r.PeakKVA, r.PeakKVAR)
	fmt.Printf("  annual energy:    %.0f kWh\n", r.AnnualEnergyKWh)
	fmt.Println()

	f := r.Fleet
	fmt.Printf("DIESEL FLEET (%s)\n", f.Topology)
	for _, name := range f.Units {
		fmt.Printf("  * %s\n", name)
	}
	fmt.Printf("  rated:            %.1f kW, %.1f kVA\n", f.RatedKW, f.RatedKVA)
	fmt.Printf("  fuel at peak:     %.2f per hour\n", f.FuelAtPeak)
	fmt.Println()

	d := r.Deficit
	fmt.Printf("DEFICIT against %.1f kW baseline\n", d.BaselineKW)
	if d.Worst.Found() {
		fmt.Printf("  worst day:        %s %d, %.1f kWh, %.1f kW peak\n",
			d.Worst.Day.Month, d.Worst.Day.Day, d.Worst.EnergyKWh, d.Worst.PeakKW)
	} else {
		fmt.Println("  worst day:        none")
	}
	fmt.Printf("  annual:           %.1f kWh over %d days\n", d.AnnualKWh, d.Days)
	fmt.Println()

	s := r.Storage
	fmt.Printf("BATTERY BANK (%s)\n", s.Cell)
	fmt.Printf("  required:         %.1f Ah at %.1f V, DoD %.2f, efficiency %.2f\n",
		s.RequiredAh, s.BankVoltage, s.DepthOfDischarge, s.Efficiency)
	fmt.Printf("  cells:            %.2f series x %.2f parallel\n", s.SeriesCount, s.ParallelCount)
	fmt.Printf("  design:           %s\n", s.Summary)
	fmt.Printf("  usable:           %.2f kWh\n", s.UsableKWh)
	fmt.Printf("  weight:           %.0f kg\n", s.WeightKg)
	fmt.Printf("  cost:             %s\n", s.Cost.StringFixed(2))

	if c := r.Inverter; c != nil {
		fmt.Println()
		fmt.Printf("INVERTER (%s)\n", c.Inverter)
		fmt.Printf("  voltage:          %.1f V bank, %.1f V input  %s\n", c.BankVoltage, c.InputVoltage, okString(c.VoltageMatch))
		fmt.Printf("  capacity:         %.0f Ah bank, %.0f Ah max  %s\n", c.BankAh, c.MaxAh, okString(c.CapacityOK))
		fmt.Printf("  power:            %.1f kW needed, %.1f kW available  %s\n", c.RequiredKW, c.AvailableKW, okString(c.PowerOK))
	}
}

func okString(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAIL"
}

func printMonthlyStats(stats []demand.MonthStats) {
	fmt.Printf("%-10s %10s %10s %10s %12s\n", "month", "mean kW", "min kW", "max kW", "energy kWh")
	for _, s := range stats {
		fmt.Printf("%-10s %10.1f %10.1f %10.1f %12.0f\n", s.Month, s.MeanKW, s.MinKW, s.MaxKW, s.EnergyKWh)
	}
}

func printMonth(series *demand.Series, m time.Month) error {
	days, err := series.DaysIn(m)
	if err != nil {
		return err
	}
	fmt.Printf("%-4s %10s %12s\n", "day", "peak kW", "energy kWh")
	for day := 1; day <= days; day++ {
		hours, err := series.Daily(m, day)
		if err != nil {
			return err
		}
		peak, energy := 0.0, 0.0
		for _, kw := range hours {
			energy += kw
			if kw > peak {
				peak = kw
			}
		}
		fmt.Printf("%-4d %10.1f %12.1f\n", day, peak, energy)
	}
	return nil
}

func printHours(title string, hours []float64) {
	fmt.Println(title)
	for h, kw := range hours {
		fmt.Printf("  %02d:00 %8.1f kW\n", h, kw)
	}
}
