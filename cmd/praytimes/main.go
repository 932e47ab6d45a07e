// Command praytimes prints prayer times and compares them against
// published timetables.
package main

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // IANA names for --tz on hosts without zoneinfo

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/praytimes"
	"github.com/thurmanmarka/praytimes/internal/config"
	"github.com/thurmanmarka/praytimes/internal/julian"
	"github.com/thurmanmarka/praytimes/internal/logger"
)

type app struct {
	cfgFile string
	cfg     *config.Config
	log     *logger.Logger
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{log: logger.Nop()}
	var topts timesOptions

	root := &cobra.Command{
		Use:   "praytimes",
		Short: "Islamic prayer times from solar geometry",
		Long: `praytimes computes the daily prayer times (Imsak, Fajr, Sunrise, Dhuhr,
Asr, Sunset, Maghrib, Isha, Midnight) for a location and date.

Settings come from flags, PRAYTIMES_* environment variables (a .env file
is read if present) and an optional config file, in that order of
precedence. Running without a subcommand is the same as "times".`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Close() },
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTimes(cmd, topts)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.Float64("lat", 0, "latitude in degrees (north positive)")
	pf.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
	pf.Float64("elevation", 0, "elevation in meters above the horizon")
	pf.String("method", config.DefaultMethod, "calculation method (see 'praytimes methods')")
	pf.String("asr", "Standard", "asr juristic method: Standard or Hanafi")
	pf.String("highlat", "NightMiddle", "high latitude rule: None, NightMiddle, OneSeventh, AngleBased")
	pf.String("tz", "auto", "timezone: hours east of UTC, 'auto', or an IANA name")
	pf.String("format", "24h", "time format: 24h, 12h, 12hNS, Float")
	pf.String("tune", "", "minute adjustments, e.g. fajr=2,isha=-3")
	pf.String("imsak", "10 min", "imsak as degrees or minutes before fajr")
	pf.Float64("dhuhr", 0, "minutes after solar noon for dhuhr")
	pf.Int("iterations", 1, "refinement passes")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	topts.register(root)

	root.AddCommand(a.newTimesCommand())
	root.AddCommand(a.newMethodsCommand())
	root.AddCommand(a.newCompareCommand())
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags(), a.cfgFile)
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.Logger)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, l
	return nil
}

// resolve turns the loaded config into library inputs for date. Unknown
// names are logged and replaced by their defaults.
func (a *app) resolve(date praytimes.Date) (praytimes.Location, praytimes.Settings, error) {
	c := a.cfg.Calculation
	loc := praytimes.Location{
		Lat:       a.cfg.Location.Lat,
		Lon:       a.cfg.Location.Lon,
		Elevation: a.cfg.Location.Elevation,
	}

	s, err := praytimes.ParseSettings(praytimes.Options{
		Method:      c.Method,
		Asr:         c.Asr,
		HighLats:    c.HighLat,
		Timezone:    c.Timezone,
		Format:      c.Format,
		Adjustments: c.Tune,
	}, date)
	if err != nil {
		if !praytimes.IsWarning(err) {
			return loc, s, err
		}
		a.log.WithError(err).Warn("falling back to defaults")
	}

	if c.Imsak != "" {
		imsak, err := praytimes.ParseParam(c.Imsak)
		if err != nil {
			return loc, s, fmt.Errorf("imsak: %w", err)
		}
		s.Imsak = imsak
	}
	s.Dhuhr = praytimes.Minutes(c.Dhuhr)
	s.Iterations = c.Iterations
	return loc, s, nil
}

// computer resolves names once, then computes any date with the zone
// re-resolved for that date so DST follows the calendar.
func (a *app) computer(first praytimes.Date) (praytimes.Location, praytimes.Settings, computeFunc, error) {
	loc, base, err := a.resolve(first)
	if err != nil {
		return loc, base, nil, err
	}
	tzName := a.cfg.Calculation.Timezone
	compute := func(d praytimes.Date) (praytimes.Times, error) {
		s := base
		s.Timezone, _ = praytimes.ParseTimezone(tzName, d)
		return praytimes.Compute(d, loc, s)
	}
	return loc, base, compute, nil
}

// addDays returns the date n days after d.
func addDays(d praytimes.Date, n int) praytimes.Date {
	return julian.FromTime(time.Date(d.Year, d.Month, d.Day+n, 12, 0, 0, 0, time.UTC))
}

// today is the current date in the local time zone.
func today() praytimes.Date {
	return julian.FromTime(time.Now())
}
