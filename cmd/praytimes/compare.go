package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/praytimes"
	"github.com/thurmanmarka/praytimes/internal/logger"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// prayerStats tracks the error of one column, in minutes, ours minus
// the reference.
type prayerStats struct {
	prayer  praytimes.Prayer
	abs     stats
	signed  stats
	missing int // reference present but our time unresolved
}

type report struct {
	columns []*prayerStats
	rows    int
	skipped int
}

var defaultColumns = []string{"date", "fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"}

type computeFunc func(praytimes.Date) (praytimes.Times, error)

func (a *app) newCompareCommand() *cobra.Command {
	var refCSV, outCSV string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare computed times against a reference timetable",
		Long: `compare reads a CSV timetable and reports the error of each column.

The first row may be a header naming the columns, e.g.

  date,fajr,sunrise,dhuhr,asr,maghrib,isha
  2025-01-01,05:32,07:02,12:10,14:41,17:18,18:40

Without a header the columns above are assumed. Times are HH:MM or
HH:MM:SS in the timezone given by --tz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCompare(cmd, refCSV, outCSV, verbose)
		},
	}
	cmd.Flags().StringVar(&refCSV, "refcsv", "", "path to reference timetable CSV")
	cmd.Flags().StringVar(&outCSV, "outcsv", "", "optional path to write per-row error CSV")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log per-row errors instead of only the summary")
	_ = cmd.MarkFlagRequired("refcsv")
	return cmd
}

func (a *app) runCompare(cmd *cobra.Command, refCSV, outCSV string, verbose bool) error {
	loc, base, compute, err := a.computer(today())
	if err != nil {
		return err
	}

	f, err := os.Open(refCSV)
	if err != nil {
		return fmt.Errorf("failed to open refcsv %q: %w", refCSV, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // allow variable, we validate
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read CSV: %w", err)
	}

	var outWriter *csv.Writer
	if outCSV != "" {
		out, err := os.Create(outCSV)
		if err != nil {
			return fmt.Errorf("failed to create outcsv %q: %w", outCSV, err)
		}
		defer out.Close()
		outWriter = csv.NewWriter(out)
		defer outWriter.Flush()
	}

	rep, err := compareRecords(records, compute, outWriter, a.log, verbose)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "=== praytimes compare summary ===")
	fmt.Fprintf(w, "Method:  %s\n", base.Method.Name)
	fmt.Fprintf(w, "Lat/Lon: %.4f / %.4f\n", loc.Lat, loc.Lon)
	fmt.Fprintf(w, "TZ:      %s\n", a.cfg.Calculation.Timezone)
	fmt.Fprintf(w, "Rows:    %d (processed), %d skipped\n\n", rep.rows-rep.skipped, rep.skipped)
	return rep.print(w)
}

// compareRecords computes each row's date and accumulates the error of
// every prayer column. Bad rows are logged and skipped.
func compareRecords(records [][]string, compute computeFunc, out *csv.Writer, log *logger.Logger, verbose bool) (*report, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV file")
	}

	header := defaultColumns
	start := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		header = records[0]
		start = 1
	}

	rep := &report{}
	cols := make([]*prayerStats, len(header))
	for i, name := range header[1:] {
		p, err := praytimes.ParsePrayer(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+2, err)
		}
		cols[i+1] = &prayerStats{prayer: p}
		rep.columns = append(rep.columns, cols[i+1])
	}

	if out != nil {
		if err := out.Write([]string{"date", "prayer", "ref", "got", "err_min"}); err != nil {
			return nil, fmt.Errorf("failed to write outcsv header: %w", err)
		}
	}

	for i := start; i < len(records); i++ {
		row := records[i]
		rowLog := log.WithFields("row", i+1)
		rep.rows++

		if len(row) != len(header) {
			rowLog.Warnw("wrong column count, skipping", "want", len(header), "got", len(row))
			rep.skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])
		date, err := praytimes.ParseDate(dateStr)
		if err != nil {
			rowLog.WithError(err).Warn("invalid date, skipping")
			rep.skipped++
			continue
		}
		times, err := compute(date)
		if err != nil {
			rowLog.WithError(err).Warn("compute failed, skipping")
			rep.skipped++
			continue
		}

		for c := 1; c < len(row); c++ {
			ps := cols[c]
			refStr := strings.TrimSpace(row[c])
			ref, err := parseClock(refStr)
			if err != nil {
				rowLog.WithError(err).Warnw("invalid time", "prayer", ps.prayer.String(), "value", refStr)
				continue
			}
			got := times.Get(ps.prayer)
			if !got.OK {
				ps.missing++
				continue
			}
			d := diffMinutesSigned(got.Hours, ref)
			ps.signed.add(d)
			ps.abs.add(math.Abs(d))

			if verbose {
				rowLog.Infow("compared", "date", dateStr, "prayer", ps.prayer.String(),
					"ref", refStr, "got", praytimes.FormatTime(got, praytimes.Format24h), "err_min", d)
			}

			if out != nil {
				rec := []string{
					dateStr,
					ps.prayer.String(),
					refStr,
					praytimes.FormatTime(got, praytimes.Format24h),
					fmt.Sprintf("%.3f", d),
				}
				if err := out.Write(rec); err != nil {
					return nil, fmt.Errorf("failed to write outcsv: %w", err)
				}
			}
		}
	}
	return rep, nil
}

func (r *report) print(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PRAYER\tCOUNT\tMISSING\tMEAN |ERR|\tMAX |ERR|\tMEAN\tMIN\tMAX\t")
	for _, c := range r.columns {
		if c.signed.count == 0 {
			fmt.Fprintf(tw, "%s\t%d\t%d\t-\t-\t-\t-\t-\t\n", c.prayer.Title(), 0, c.missing)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%+.3f\t%+.3f\t%+.3f\t\n",
			c.prayer.Title(), c.signed.count, c.missing,
			c.abs.mean(), c.abs.max,
			c.signed.mean(), c.signed.min, c.signed.max)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\nerrors in minutes, ours - reference")
	return err
}

// parseClock parses HH:MM or HH:MM:SS into hours.
func parseClock(s string) (float64, error) {
	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return 0, err
	}
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600, nil
}

// diffMinutesSigned is got - ref in minutes, wrapped into [-12h, 12h]
// so that times either side of midnight compare correctly.
func diffMinutesSigned(got, ref float64) float64 {
	return math.Remainder(got-ref, 24) * 60
}
