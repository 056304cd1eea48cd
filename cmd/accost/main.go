// Command accost runs one-off AC operating cost estimates from the
// terminal, using the same projection engine and live providers as the
// server.
//
// Usage:
//
//	accost estimate --zip 78701 --sqft 2000 --insulation average
//	accost estimate --zip 78701 --sqft 2000 --unit trane-2 --format json
//	accost estimate --sqft 2000 --temp 95 --rate 0.12   (offline, no providers)
//	accost units
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/couchcryptid/ac-cost-service/internal/adapter/openmeteo"
	"github.com/couchcryptid/ac-cost-service/internal/adapter/zippopotam"
	"github.com/couchcryptid/ac-cost-service/internal/catalog"
	"github.com/couchcryptid/ac-cost-service/internal/config"
	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/estimator"
	"github.com/couchcryptid/ac-cost-service/internal/history"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
	"github.com/couchcryptid/ac-cost-service/internal/rates"
	"github.com/couchcryptid/ac-cost-service/internal/report"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "accost",
		Usage:   "Residential AC operating cost estimator",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			estimateCommand(),
			unitsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func estimateCommand() *cli.Command {
	return &cli.Command{
		Name:  "estimate",
		Usage: "Estimate annual cooling costs for a home",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "zip",
				Usage: "US ZIP code (required unless --temp is given)",
			},
			&cli.Float64Flag{
				Name:     "sqft",
				Usage:    "Home square footage",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "insulation",
				Value: "average",
				Usage: "Insulation quality (poor, average, good, excellent)",
			},
			&cli.Float64Flag{
				Name:  "setpoint",
				Value: 72,
				Usage: "Thermostat setpoint in degrees F",
			},
			&cli.Float64Flag{
				Name:  "seer2",
				Value: 14.3,
				Usage: "SEER2 efficiency rating (ignored when --unit is set)",
			},
			&cli.Float64Flag{
				Name:  "hours",
				Value: 8,
				Usage: "Operating hours per day",
			},
			&cli.StringFlag{
				Name:  "unit",
				Usage: "Catalog unit ID (see 'accost units')",
			},
			&cli.Float64Flag{
				Name:  "temp",
				Usage: "Offline mode: current outdoor temperature in degrees F, skips all providers",
			},
			&cli.Float64Flag{
				Name:  "humidity",
				Value: 50,
				Usage: "Offline mode: relative humidity percent",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Value: domain.DefaultElectricityRate,
				Usage: "Offline mode: electricity rate in $/kWh",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "table",
				Usage:   "Output format (table, json)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write a report file; format from extension (.csv or .pdf)",
			},
		},
		Action: runEstimate,
	}
}

func runEstimate(c *cli.Context) error {
	inputs := domain.EstimateInputs{
		PostalCode:           c.String("zip"),
		SquareFootage:        c.Float64("sqft"),
		Insulation:           domain.Insulation(c.String("insulation")),
		ThermostatSetpoint:   c.Float64("setpoint"),
		SEER2:                c.Float64("seer2"),
		OperatingHoursPerDay: c.Float64("hours"),
		UnitID:               c.String("unit"),
	}

	var calc domain.Calculation
	var err error
	if c.IsSet("temp") {
		calc, err = estimateOffline(c, inputs)
	} else {
		calc, err = estimateLive(c, inputs)
	}
	if err != nil {
		return err
	}

	if out := c.String("output"); out != "" {
		if err := writeReportFile(out, calc); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "report written to %s\n", out)
	}

	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(calc)
	case "table":
		printTable(calc)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", c.String("format"))
	}
}

func estimateLive(c *cli.Context, inputs domain.EstimateInputs) (domain.Calculation, error) {
	cfg, err := config.Load()
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(c.String("log-level"), "text")
	metrics := observability.NewMetrics()

	geocoder := zippopotam.NewCachedGeocoder(
		zippopotam.NewClient(cfg.GeocoderBaseURL, cfg.ProviderTimeout, metrics, logger),
		cfg.GeocodeCacheSize, metrics)
	weather := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.HistoricalBaseURL,
		cfg.ProviderTimeout, metrics, logger)

	store, err := history.New(cfg.HistoryPath, cfg.HistoryLimit)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("open history store: %w", err)
	}

	svc := estimator.New(geocoder, weather, weather, rates.New(), store, nil, logger, metrics)
	return svc.Estimate(c.Context, inputs)
}

// estimateOffline runs the projection engine directly from explicit
// conditions, touching no providers and saving nothing. ZIP is not needed.
func estimateOffline(c *cli.Context, inputs domain.EstimateInputs) (domain.Calculation, error) {
	equipment := domain.EquipmentProfile{SEER2: inputs.SEER2}
	if inputs.UnitID != "" {
		unit, ok := catalog.Lookup(inputs.UnitID)
		if !ok {
			return domain.Calculation{}, fmt.Errorf("unknown unit %q", inputs.UnitID)
		}
		equipment = domain.EquipmentProfile{SEER2: unit.SEER2, Brand: unit.Brand, Model: unit.Model}
		inputs.SEER2 = unit.SEER2
	}

	verrs := domain.ValidateInputs(inputs)
	verrs = slices.DeleteFunc(verrs, func(fe domain.FieldError) bool {
		return fe.Field == "postal_code"
	})
	if len(verrs) > 0 {
		return domain.Calculation{}, verrs
	}

	home := domain.HomeProfile{
		SquareFootage:        inputs.SquareFootage,
		Insulation:           inputs.Insulation,
		ThermostatSetpoint:   inputs.ThermostatSetpoint,
		OperatingHoursPerDay: inputs.OperatingHoursPerDay,
	}
	conditions := domain.CurrentConditions{
		Temperature: c.Float64("temp"),
		Humidity:    c.Float64("humidity"),
	}
	rate := c.Float64("rate")

	projections, source := domain.ProjectAnnualCosts(home, equipment, domain.ClimateContext{
		CurrentTemperature: conditions.Temperature,
		Humidity:           conditions.Humidity,
		RatePerKWh:         rate,
	})

	return domain.Calculation{
		ID:                uuid.NewString(),
		CreatedAt:         domain.Now(),
		Home:              home,
		Equipment:         equipment,
		Location:          domain.GeocodeResult{DisplayName: "offline"},
		Conditions:        conditions,
		RatePerKWh:        rate,
		TemperatureSource: source,
		Projections:       projections,
		Summary:           domain.Summarize(projections),
		BTURequirement: domain.EstimateCoolingLoad(
			home.SquareFootage,
			home.Insulation,
			conditions.Temperature,
			home.ThermostatSetpoint,
			conditions.Humidity,
		),
	}, nil
}

func printTable(calc domain.Calculation) {
	fmt.Printf("Location:       %s\n", calc.Location.DisplayName)
	fmt.Printf("Conditions:     %.0fF, %.0f%% humidity\n",
		calc.Conditions.Temperature, calc.Conditions.Humidity)
	fmt.Printf("System:         %s (SEER2 %g)\n", unitLabel(calc.Equipment), calc.Equipment.SEER2)
	fmt.Printf("Cooling load:   %.0f BTU/hr\n", calc.BTURequirement)
	fmt.Printf("Electric rate:  $%.3f/kWh (%s)\n", calc.RatePerKWh, calc.Location.RegionCode)
	fmt.Printf("Temperatures:   %s series\n", calc.TemperatureSource)
	fmt.Println()

	fmt.Println("Month  Cost      Energy (kWh)")
	for _, p := range calc.Projections {
		fmt.Printf("%-5s  $%-8.2f %.1f\n", p.Month, p.Cost, p.EnergyUsage)
	}
	fmt.Println()

	fmt.Printf("Daily cost:     $%.2f\n", calc.Summary.DailyCost)
	fmt.Printf("Monthly cost:   $%.2f\n", calc.Summary.MonthlyCost)
	fmt.Printf("Annual cost:    $%.2f\n", calc.Summary.AnnualCost)
	fmt.Printf("Annual energy:  %.0f kWh\n", calc.Summary.AnnualEnergyUsage)
}

func writeReportFile(path string, calc domain.Calculation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return report.WriteCSV(f, calc)
	case ".pdf":
		return report.WritePDF(f, calc)
	default:
		return fmt.Errorf("unsupported report extension %q (want .csv or .pdf)", filepath.Ext(path))
	}
}

func unitsCommand() *cli.Command {
	return &cli.Command{
		Name:  "units",
		Usage: "List the built-in AC unit catalog",
		Action: func(_ *cli.Context) error {
			fmt.Println("ID          Brand      Model              SEER2  Price")
			for _, u := range catalog.All() {
				fmt.Printf("%-11s %-10s %-18s %-6g $%.0f\n",
					u.ID, u.Brand, u.Model, u.SEER2, u.EstimatedPrice)
			}
			return nil
		},
	}
}

func unitLabel(eq domain.EquipmentProfile) string {
	if eq.Brand == "" {
		return "custom system"
	}
	return strings.TrimSpace(eq.Brand + " " + eq.Model)
}
