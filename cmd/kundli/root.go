package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Dan9191/kundli-service/internal/config"
	"github.com/Dan9191/kundli-service/internal/integrations/ephemeris"
	"github.com/Dan9191/kundli-service/internal/models"
	"github.com/Dan9191/kundli-service/internal/service"
)

type providerFactory func(cfg *config.Config, log *logrus.Logger) (ephemeris.Provider, error)

type options struct {
	date, clock, timezone string
	latitude, longitude   float64
	houseSystem           string
	nodeMode              string
	profile               string
	source                string
	asOf                  string
	outer, debug          bool
	section               string
	varga                 string
	format                string
}

func newRootCmd(newProvider providerFactory, out io.Writer) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:           "kundli",
		Short:         "Compute a sidereal natal chart",
		Long:          "kundli computes a Vedic natal chart against the configured ephemeris service and prints it as JSON or YAML.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, o, newProvider, out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.date, "date", "", "birth date, YYYY-MM-DD")
	f.StringVar(&o.clock, "time", "", "local birth time, HH:MM or HH:MM:SS")
	f.StringVar(&o.timezone, "tz", "", "IANA time zone of the birth place")
	f.Float64Var(&o.latitude, "lat", 0, "latitude in degrees, north positive")
	f.Float64Var(&o.longitude, "lon", 0, "longitude in degrees, east positive")
	f.StringVar(&o.houseSystem, "house-system", "W", "house system: W (whole sign) or P (Placidus)")
	f.StringVar(&o.nodeMode, "node-mode", "mean", "lunar node: mean or true")
	f.StringVar(&o.profile, "profile", "traditional", "dignity profile: traditional or astrotalk")
	f.StringVar(&o.source, "source", "moon", "vedic property source: moon, ascendant or sunriseMoon")
	f.StringVar(&o.asOf, "as-of", "", "RFC 3339 instant for the current dasha (default now)")
	f.BoolVar(&o.outer, "outer", false, "include Uranus, Neptune and Pluto")
	f.BoolVar(&o.debug, "debug", false, "attach the raw provider snapshots")
	f.StringVar(&o.section, "section", "chart", "output: chart, panchang, dasha, doshas, divisional or render")
	f.StringVar(&o.varga, "varga", "D9", "divisional chart for --section divisional")
	f.StringVarP(&o.format, "output", "o", "json", "output format: json or yaml")
	for _, name := range []string{"date", "time", "tz", "lat", "lon"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func run(cmd *cobra.Command, o options, newProvider providerFactory, out io.Writer) error {
	if o.format != "json" && o.format != "yaml" {
		return fmt.Errorf("unknown output format %q", o.format)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	provider, err := newProvider(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create ephemeris provider: %w", err)
	}
	svc := service.NewService(provider, log, cfg, nil)

	req := models.ChartRequest{
		DateOfBirth:         o.date,
		TimeOfBirth:         o.clock,
		Latitude:            &o.latitude,
		Longitude:           &o.longitude,
		Timezone:            o.timezone,
		HouseSystem:         o.houseSystem,
		NodeMode:            o.nodeMode,
		PropertyProfile:     o.profile,
		PropertySource:      o.source,
		IncludeOuterPlanets: o.outer,
		AsOf:                o.asOf,
		Debug:               o.debug,
	}

	ctx := cmd.Context()
	var v interface{}
	switch o.section {
	case "chart":
		v, err = svc.Chart(ctx, req)
	case "panchang":
		v, err = svc.Panchang(ctx, req)
	case "dasha":
		v, err = svc.Dasha(ctx, req)
	case "doshas":
		v, err = svc.Doshas(ctx, req)
	case "divisional":
		v, err = svc.Divisional(ctx, models.DivisionalRequest{ChartRequest: req, Chart: o.varga})
	case "render":
		v, err = svc.RenderInput(ctx, models.RenderInputRequest{ChartRequest: req})
	default:
		return fmt.Errorf("unknown section %q", o.section)
	}
	if err != nil {
		return err
	}
	return write(out, o.format, v)
}

// write prints v as indented JSON, or as YAML keyed by the JSON field names
func write(out io.Writer, format string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	if format == "json" {
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}
