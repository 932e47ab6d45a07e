package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/praytimes"
)

type timesOptions struct {
	date    string
	days    int
	jsonOut bool
}

func (o *timesOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.date, "date", "", "date in YYYY-MM-DD (defaults to today in local time)")
	cmd.Flags().IntVar(&o.days, "days", 1, "number of consecutive days to print")
	cmd.Flags().BoolVar(&o.jsonOut, "json", false, "output result as JSON")
}

func (a *app) newTimesCommand() *cobra.Command {
	var opts timesOptions
	cmd := &cobra.Command{
		Use:   "times",
		Short: "Print the prayer times for one or more days",
		Example: `  praytimes times --lat 35.6892 --lon 51.3890 --method Tehran --tz 3.5
  praytimes times --lat 40.7128 --lon -74.0060 --tz America/New_York --format 12h --json
  praytimes times --lat 21.4225 --lon 39.8262 --method Makkah --tz 3 --days 30`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTimes(cmd, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func (a *app) runTimes(cmd *cobra.Command, opts timesOptions) error {
	if opts.days < 1 || opts.days > 366 {
		return fmt.Errorf("--days must be between 1 and 366, got %d", opts.days)
	}
	date := today()
	if opts.date != "" {
		var err error
		if date, err = praytimes.ParseDate(opts.date); err != nil {
			return err
		}
	}

	loc, s, compute, err := a.computer(date)
	if err != nil {
		return err
	}
	if loc.Lat == 0 && loc.Lon == 0 {
		a.log.Warn("lat=0 lon=0 (Gulf of Guinea); use --lat and --lon to set a real location")
	}
	if s.Timezone.Auto {
		a.log.Infow("timezone estimated from longitude; pass --tz for civil time", "lon", loc.Lon)
	}
	a.log.Debugw("computing",
		"date", date.String(),
		"days", opts.days,
		"method", s.Method.Name,
		"asr", s.Asr.String(),
		"highlat", s.HighLats.String(),
		"timezone", s.Timezone.String(),
	)

	days := make([]praytimes.Times, 0, opts.days)
	for i := 0; i < opts.days; i++ {
		times, err := compute(addDays(date, i))
		if err != nil {
			return err
		}
		if err := times.Err(); err != nil {
			a.log.WithError(err).Warn("some times could not be resolved")
		}
		days = append(days, times)
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.jsonOut && len(days) == 1:
		return printJSON(w, newJSONOutput(days[0]))
	case opts.jsonOut:
		out := make([]jsonOutput, len(days))
		for i, t := range days {
			out[i] = newJSONOutput(t)
		}
		return printJSON(w, out)
	case len(days) == 1:
		printHuman(w, days[0])
		return nil
	default:
		return printTable(w, days)
	}
}

func printHuman(w io.Writer, t praytimes.Times) {
	fmt.Fprintf(w, "Prayer times for lat=%.4f lon=%.4f\n", t.Location.Lat, t.Location.Lon)
	fmt.Fprintf(w, "Date: %s  Method: %s  Timezone: %s\n\n", t.Date, t.Settings.Method.Name, t.Settings.Timezone)
	for _, e := range t.Format(t.Settings.Format) {
		fmt.Fprintf(w, "%-9s %s\n", e.Prayer.Title()+":", e.Value)
	}
}

type jsonOutput struct {
	Date       string     `json:"date"` // YYYY-MM-DD
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Elevation  float64    `json:"elevation"`
	Method     string     `json:"method"`
	Asr        string     `json:"asr"`
	HighLats   string     `json:"highlat"`
	Timezone   string     `json:"timezone"`
	Format     string     `json:"format"`
	Times      []jsonTime `json:"times"` // canonical order, Imsak first
	Unresolved []string   `json:"unresolved,omitempty"`
}

type jsonTime struct {
	Prayer string `json:"prayer"`
	Time   string `json:"time"`
}

func newJSONOutput(t praytimes.Times) jsonOutput {
	s := t.Settings
	out := jsonOutput{
		Date:      t.Date.String(),
		Latitude:  t.Location.Lat,
		Longitude: t.Location.Lon,
		Elevation: t.Location.Elevation,
		Method:    s.Method.Name,
		Asr:       s.Asr.String(),
		HighLats:  s.HighLats.String(),
		Timezone:  s.Timezone.String(),
		Format:    s.Format.String(),
	}
	for _, e := range t.Format(s.Format) {
		out.Times = append(out.Times, jsonTime{Prayer: e.Prayer.String(), Time: e.Value})
	}
	for _, p := range t.Unresolved() {
		out.Unresolved = append(out.Unresolved, p.String())
	}
	return out
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// printTable prints one row per day.
func printTable(w io.Writer, days []praytimes.Times) error {
	t0 := days[0]
	fmt.Fprintf(w, "Prayer times for lat=%.4f lon=%.4f\n", t0.Location.Lat, t0.Location.Lon)
	fmt.Fprintf(w, "Method: %s  Timezone: %s\n\n", t0.Settings.Method.Name, t0.Settings.Timezone)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "DATE")
	for _, p := range praytimes.Prayers() {
		fmt.Fprintf(tw, "\t%s", strings.ToUpper(p.String()))
	}
	fmt.Fprintln(tw)
	for _, t := range days {
		fmt.Fprint(tw, t.Date.String())
		for _, e := range t.Format(t.Settings.Format) {
			fmt.Fprintf(tw, "\t%s", e.Value)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
