package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/ohowland/cgc_sizing/internal/lib/webservice"
	"github.com/ohowland/cgc_sizing/internal/pkg/catalog"
	"github.com/ohowland/cgc_sizing/internal/pkg/demand"
	"github.com/ohowland/cgc_sizing/internal/pkg/study"
)

// loadStudy reads the study file and the catalog it names.
func loadStudy(path string) (study.Config, catalog.Catalog, error) {
	cfg, err := study.LoadConfig(path)
	if err != nil {
		return study.Config{}, catalog.Catalog{}, err
	}
	if cfg.CatalogPath == "" {
		return study.Config{}, catalog.Catalog{}, fmt.Errorf("study %s names no catalog", path)
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return study.Config{}, catalog.Catalog{}, err
	}
	logger.Debug("[Study] loaded",
		zap.String("study", path),
		zap.String("catalog", cfg.CatalogPath),
		zap.Int("generators", len(cat.Generators())))
	return cfg, cat, nil
}

func runSize(path string, asJSON bool) error {
	cfg, cat, err := loadStudy(path)
	if err != nil {
		return err
	}

	report, err := study.Run(cfg, cat)
	if err != nil {
		return fmt.Errorf("sizing %s: %w", path, err)
	}
	logger.Info("[Study] sizing complete",
		zap.String("pid", report.PID().String()),
		zap.String("topology", report.Fleet.Topology),
		zap.Float64("worst_kwh", report.Deficit.Worst.EnergyKWh),
		zap.Float64("required_ah", report.Storage.RequiredAh))

	if asJSON {
		body, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(body))
		return nil
	}
	printReport(report)
	return nil
}

func runDemand(path, month string, day int) error {
	if day != 0 && month == "" {
		return errors.New("--day requires --month")
	}

	cfg, err := study.LoadConfig(path)
	if err != nil {
		return err
	}
	_, series, err := study.Demand(cfg)
	if err != nil {
		return err
	}

	if month == "" {
		printMonthlyStats(demand.MonthlyStats(series))
		return nil
	}

	m, err := demand.ParseMonth(month)
	if err != nil {
		return err
	}
	if day != 0 {
		hours, err := series.Daily(m, day)
		if err != nil {
			return err
		}
		printHours(fmt.Sprintf("%s %d", m, day), hours)
		return nil
	}
	return printMonth(series, m)
}

func runServe(path string, port int) error {
	cfg, cat, err := loadStudy(path)
	if err != nil {
		return err
	}

	app := webservice.App{
		Config:  webservice.Config{Port: strconv.Itoa(port)},
		Study:   cfg,
		Catalog: cat,
		Logger:  logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = app.ListenAndServe(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		logger.Info("[Webservice] stopped")
		return nil
	}
	return err
}
