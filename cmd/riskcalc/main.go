// Risk report CLI
// Runs the risk-metrics engine over local CSV price files, one independent
// engine invocation per file.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/finsightlab/finsight/internal/risk"
)

var (
	riskFreeRate = flag.Float64("rf", 0.0, "Annual risk-free rate (e.g. 0.02 for 2%)")
	tradingDays  = flag.Int("days", risk.DefaultTradingDays, "Trading days per year for annualization")
	jsonOutput   = flag.Bool("json", false, "Emit JSON instead of a table")
	concurrency  = flag.Int("concurrency", 4, "Maximum files analyzed in parallel")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
)

// fileReport is one CLI result row.
type fileReport struct {
	File         string       `json:"file"`
	Observations int          `json:"observations"`
	Metrics      risk.Metrics `json:"metrics"`
	Rating       risk.Rating  `json:"rating"`
}

func main() {
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: riskcalc [flags] <prices.csv> [more.csv ...]")
		flag.Usage()
		os.Exit(1)
	}

	params := risk.Params{RiskFreeRate: *riskFreeRate, TradingDays: *tradingDays}
	engine := risk.NewEngine(params)

	if *concurrency < 1 {
		*concurrency = 1
	}

	// Each file is an independent engine invocation; fan out freely.
	reports := make([]fileReport, len(files))
	var g errgroup.Group
	g.SetLimit(*concurrency)

	for i, file := range files {
		g.Go(func() error {
			series, err := loadSeriesCSV(file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			report, err := engine.Analyze(series)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			reports[i] = fileReport{
				File:         file,
				Observations: series.Len(),
				Metrics:      report.Metrics,
				Rating:       report.Rating,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	printTable(reports)
}

func printTable(reports []fileReport) {
	fmt.Printf("%-30s %6s %10s %10s %10s %8s %8s %6s %s\n",
		"FILE", "OBS", "VOL", "MAXDD", "VAR95", "SHARPE", "SORTINO", "SCORE", "RATING")
	for _, r := range reports {
		fmt.Printf("%-30s %6d %10.4f %10.4f %10.4f %8.3f %8.3f %6d %s\n",
			r.File, r.Observations,
			r.Metrics.Volatility, r.Metrics.MaxDrawdown, r.Metrics.VaR95,
			r.Metrics.SharpeRatio, r.Metrics.SortinoRatio,
			r.Rating.Score, r.Rating.Category)
	}
}

// loadSeriesCSV reads a price series from a CSV file with either a single
// price column or a date,price pair per row. A non-numeric first row is
// treated as a header and skipped.
func loadSeriesCSV(path string) (*risk.Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	var points []risk.PricePoint
	for i, record := range records {
		point, err := parseRecord(record)
		if err != nil {
			if i == 0 {
				continue // header row
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		points = append(points, point)
	}

	return risk.NewSeries(points)
}

// dateFormats accepted in the optional first CSV column.
var dateFormats = []string{time.RFC3339, "2006-01-02"}

func parseRecord(record []string) (risk.PricePoint, error) {
	switch len(record) {
	case 1:
		price, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return risk.PricePoint{}, fmt.Errorf("bad price %q", record[0])
		}
		return risk.PricePoint{Price: price}, nil
	case 2:
		var ts time.Time
		var err error
		for _, format := range dateFormats {
			if ts, err = time.Parse(format, record[0]); err == nil {
				break
			}
		}
		if err != nil {
			return risk.PricePoint{}, fmt.Errorf("bad date %q", record[0])
		}
		price, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return risk.PricePoint{}, fmt.Errorf("bad price %q", record[1])
		}
		return risk.PricePoint{Time: ts, Price: price}, nil
	default:
		return risk.PricePoint{}, fmt.Errorf("expected 1 or 2 columns, got %d", len(record))
	}
}
