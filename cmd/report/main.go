// Package main prints dashboard reports as markdown.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Avishah123/hb-dashboard/internal/bootstrap"
	"github.com/Avishah123/hb-dashboard/internal/change"
	"github.com/Avishah123/hb-dashboard/internal/config"
	"github.com/Avishah123/hb-dashboard/internal/dashboard"
	"github.com/Avishah123/hb-dashboard/internal/date"
	"github.com/Avishah123/hb-dashboard/internal/domain"
	"github.com/Avishah123/hb-dashboard/internal/logging"
	"github.com/Avishah123/hb-dashboard/internal/reporting"
	"github.com/Avishah123/hb-dashboard/internal/storage"
	"github.com/Avishah123/hb-dashboard/internal/storage/memory"
)

var (
	flags       bootstrap.Flags
	useFixtures bool
	rawOutput   bool
	wordWrap    int
	timeout     time.Duration

	datasetName string
	measureName string
	startDate   string
	endDate     string
	lookback    int
	threshold   float64
	symbol      string
	seedDays    int
	seedEnd     string
)

var rootCmd = &cobra.Command{
	Use:   "report",
	Short: "Market activity dashboard reports",
	Long: `Prints dashboard reports as markdown, rendered for the terminal unless
--raw is given.

Example usage:
  report changes --dataset stocks --lookback 7 --threshold 10
  report stats --dataset index --symbol NIFTY --measure net_qty
  report status --use-fixtures
  report seed --driver postgres --migrate --days 120`,
	SilenceUsage: true,
}

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Entities with significant changes over the lookback window",
	RunE:  runChanges,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Trend and statistics of one symbol over the lookback window",
	RunE:  runStats,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Store connectivity, row counts and last update",
	RunE:  runStatus,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write deterministic fixture data into the configured store",
	RunE:  runSeed,
}

func init() {
	pf := rootCmd.PersistentFlags()
	flags.Bind(pf)
	pf.BoolVar(&useFixtures, "use-fixtures", false, "Use in-memory fixtures instead of the configured store")
	pf.BoolVar(&rawOutput, "raw", false, "Print raw markdown")
	pf.IntVar(&wordWrap, "width", 100, "Word wrap width of rendered output")
	pf.DurationVar(&timeout, "timeout", 60*time.Second, "Timeout for the whole command")

	for _, c := range []*cobra.Command{changesCmd, statsCmd} {
		c.Flags().StringVarP(&datasetName, "dataset", "d", string(domain.DatasetStocks), "Dataset: index or stocks")
		c.Flags().StringVarP(&measureName, "measure", "m", "net_value", "Measure: net_value or net_qty")
		c.Flags().IntVarP(&lookback, "lookback", "l", 0, "Lookback window in days (0 uses the dataset default)")
		c.Flags().StringVar(&startDate, "start", "", "Start date YYYY-MM-DD")
		c.Flags().StringVar(&endDate, "end", "", "End date YYYY-MM-DD")
	}
	changesCmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "Threshold percent (0 uses the dataset default)")
	statsCmd.Flags().StringVarP(&symbol, "symbol", "s", "", "Symbol to drill into")
	_ = statsCmd.MarkFlagRequired("symbol")

	seedCmd.Flags().IntVar(&seedDays, "days", config.DefaultFixtureDays, "Calendar days of fixture data")
	seedCmd.Flags().StringVar(&seedEnd, "end", "", "Last fixture date YYYY-MM-DD (default today)")

	rootCmd.AddCommand(changesCmd, statsCmd, statusCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env is the per command runtime.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   storage.Store
	cleanup func()
}

func setup(ctx context.Context, cmd *cobra.Command) (*env, error) {
	if useFixtures {
		if err := cmd.Flags().Set("driver", config.DriverMemory); err != nil {
			return nil, err
		}
	}
	cfg, err := flags.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}
	// Logs go to stderr so the report stays clean on stdout.
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})

	store, cleanup, err := bootstrap.OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &env{cfg: cfg, log: logger, store: store, cleanup: cleanup}, nil
}

func (e *env) generator() *reporting.Generator {
	svc := dashboard.NewService(e.store, e.log).WithDefaults(e.cfg.Analysis)
	return reporting.NewGenerator(svc)
}

func runChanges(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	kind, m, r, err := analysisArgs()
	if err != nil {
		return err
	}
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.cleanup()

	rep, err := e.generator().Changes(ctx, kind, r, change.Params{
		Measure:          m,
		LookbackDays:     lookback,
		ThresholdPercent: threshold,
	})
	if err != nil {
		return err
	}
	return output(cmd, reporting.RenderChanges(rep))
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	kind, m, r, err := analysisArgs()
	if err != nil {
		return err
	}
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.cleanup()

	rep, err := e.generator().Trend(ctx, kind, r, m, symbol, lookback)
	if err != nil {
		return err
	}
	return output(cmd, reporting.RenderTrend(rep))
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.cleanup()

	rep, err := e.generator().Status(ctx)
	if err != nil {
		return err
	}
	return output(cmd, reporting.RenderStatus(rep))
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if useFixtures {
		return fmt.Errorf("seed writes to a database store; drop --use-fixtures")
	}
	end, err := bootstrap.FixtureEnd(config.MemoryConfig{FixtureEnd: seedEnd}, time.Now)
	if err != nil {
		return err
	}
	e, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer e.cleanup()
	if e.store.Driver() == config.DriverMemory {
		return fmt.Errorf("seed needs a postgres or clickhouse driver")
	}

	if err := memory.LoadFixtures(ctx, e.store, end, seedDays); err != nil {
		return err
	}
	e.log.Info().
		Str("driver", e.store.Driver()).
		Str("end", end.String()).
		Int("days", seedDays).
		Msg("fixtures written")
	return nil
}

// analysisArgs parses the dataset, measure and date range flags.
func analysisArgs() (domain.DatasetKind, domain.Measure, date.Range, error) {
	var r date.Range
	kind, err := domain.ParseDatasetKind(datasetName)
	if err != nil {
		return "", "", r, err
	}
	m, ok := domain.ParseMeasure(measureName)
	if !ok {
		return "", "", r, fmt.Errorf("unknown measure %q", measureName)
	}
	if startDate != "" {
		if r.From, err = date.Parse(startDate); err != nil {
			return "", "", r, fmt.Errorf("--start: %w", err)
		}
	}
	if endDate != "" {
		if r.To, err = date.Parse(endDate); err != nil {
			return "", "", r, fmt.Errorf("--end: %w", err)
		}
	}
	return kind, m, r, nil
}

// output prints markdown, rendered through glamour unless --raw is set.
func output(cmd *cobra.Command, md string) error {
	if rawOutput {
		_, err := fmt.Fprint(cmd.OutOrStdout(), md)
		return err
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
