package study

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ohowland/cgc_sizing/internal/pkg/asset/hydro"
	"github.com/ohowland/cgc_sizing/internal/pkg/load"
)

// EnvPrefix namespaces environment overrides, e.g. GRIDSIZER_TOPOLOGY or
// GRIDSIZER_STORAGE_BANK_VOLTAGE.
const EnvPrefix = "GRIDSIZER"

// ErrMissingCell is returned when a study names no battery cell.
var ErrMissingCell = errors.New("study names no battery cell")

// Config is a sizing study as read from a study file.
type Config struct {
	Name          string             `json:"name" mapstructure:"name"`
	Loads         []load.Load        `json:"loads" mapstructure:"loads"`
	DailyShape    []float64          `json:"daily_shape" mapstructure:"daily_shape"`
	SeasonFactors map[string]float64 `json:"season_factors" mapstructure:"season_factors"`
	LeapYear      bool               `json:"leap_year" mapstructure:"leap_year"`
	Topology      string             `json:"topology" mapstructure:"topology"`
	Hydro         HydroConfig        `json:"hydro" mapstructure:"hydro"`
	Storage       StorageConfig      `json:"storage" mapstructure:"storage"`
	CatalogPath   string             `json:"catalog" mapstructure:"catalog"`
}

// HydroConfig is the baseline plant of a study.
type HydroConfig struct {
	Name         string  `json:"name" mapstructure:"name"`
	RatedKW      float64 `json:"rated_kw" mapstructure:"rated_kw"`
	RatedVoltage float64 `json:"rated_voltage" mapstructure:"rated_voltage"`
}

// Plant converts the section into a validated hydro.Plant.
func (h HydroConfig) Plant() (hydro.Plant, error) {
	p := hydro.Plant{Name: h.Name, RatedKW: h.RatedKW, RatedVoltage: h.RatedVoltage}
	return p.WithDefaults()
}

// StorageConfig selects and parameterizes the battery bank.
type StorageConfig struct {
	Cell             string  `json:"cell" mapstructure:"cell"`
	BankVoltage      float64 `json:"bank_voltage" mapstructure:"bank_voltage"`
	DepthOfDischarge float64 `json:"depth_of_discharge" mapstructure:"depth_of_discharge"`
	// Efficiency overrides the cell chemistry's round-trip efficiency when non-zero.
	Efficiency       float64 `json:"efficiency" mapstructure:"efficiency"`
	Inverter         string  `json:"inverter" mapstructure:"inverter"`
	VoltageTolerance float64 `json:"voltage_tolerance" mapstructure:"voltage_tolerance"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "")
	v.SetDefault("leap_year", false)
	v.SetDefault("topology", "2x50")
	v.SetDefault("catalog", "")
	v.SetDefault("hydro.name", "hydro")
	v.SetDefault("hydro.rated_kw", 0.0)
	v.SetDefault("hydro.rated_voltage", hydro.DefaultRatedVoltage)
	v.SetDefault("storage.cell", "")
	v.SetDefault("storage.bank_voltage", 48.0)
	v.SetDefault("storage.depth_of_discharge", 0.8)
	v.SetDefault("storage.efficiency", 0.0)
	v.SetDefault("storage.inverter", "")
	v.SetDefault("storage.voltage_tolerance", 0.05)
}

// LoadConfig reads a JSON or YAML study file. Scalar settings may be
// overridden from the environment. A relative catalog path is resolved
// against the directory of the study file.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("study %s: %w", path, err)
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("study %s: %w", path, err)
	}

	if cfg.CatalogPath != "" && !filepath.IsAbs(cfg.CatalogPath) {
		cfg.CatalogPath = filepath.Join(filepath.Dir(path), cfg.CatalogPath)
	}
	return cfg, nil
}
