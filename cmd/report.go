package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sellerlytics/sellerlytics/internal/analytics"
	"github.com/sellerlytics/sellerlytics/internal/export"
	"github.com/sellerlytics/sellerlytics/internal/generator"
	"github.com/sellerlytics/sellerlytics/internal/logging"
	"github.com/sellerlytics/sellerlytics/internal/models"
	"github.com/sellerlytics/sellerlytics/internal/store/postgres"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a filtered KPI report over a dataset",
	Long: `Compute per-seller KPIs, monthly trends, status and category breakdowns,
and top/underperformer rankings. The dataset is either generated in
memory from the configured seed or loaded from Postgres, and the report
tables are written to the configured output.`,
	RunE: runReport,
}

var (
	reportStart     string
	reportEnd       string
	reportLocation  string
	reportCategory  string
	reportSeller    string
	reportReference string
	reportSource    string
)

func init() {
	reportCmd.Flags().StringVar(&reportStart, "start-date", "", "Only orders placed on or after this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportEnd, "end-date", "", "Only orders placed on or before this date (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportLocation, "location", "", "Only sellers in this location")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "Only orders in this product category")
	reportCmd.Flags().StringVar(&reportSeller, "seller-id", "", "Only this seller")
	reportCmd.Flags().StringVar(&reportReference, "reference-date", "", "Reference date for seller tenure (YYYY-MM-DD, default today)")
	reportCmd.Flags().StringVar(&reportSource, "source", "generate", "Dataset source (generate, postgres)")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	snap, err := loadDataset(cfg)
	if err != nil {
		return err
	}

	spec, err := buildFilterSpec()
	if err != nil {
		return err
	}

	referenceDate := time.Now().UTC().Truncate(24 * time.Hour)
	if reportReference != "" {
		referenceDate, err = time.Parse("2006-01-02", reportReference)
		if err != nil {
			return fmt.Errorf("parsing reference-date: %w", err)
		}
	}

	engine := analytics.NewEngine(cfg)
	engine.Replace(snap)

	result, err := engine.Query(spec, referenceDate)
	if err != nil {
		return err
	}

	logging.Info().
		Int("sellers", len(result.SellerKPIs)).
		Int("top_sellers", len(result.TopSellers)).
		Int("underperformers", len(result.Underperformers)).
		Msg("report computed")

	exp, runID, err := export.New(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	for _, tbl := range export.ResultTables(result) {
		if err := exp.WriteTable(tbl); err != nil {
			return fmt.Errorf("writing %s: %w", tbl.Name, err)
		}
	}
	logging.Info().Str("format", cfg.OutputFormat).Str("run", runID).Msg("report written")
	return nil
}

func loadDataset(cfg *models.Config) (*models.Snapshot, error) {
	switch reportSource {
	case "generate":
		return generator.New(cfg).Generate()
	case "postgres":
		ctx := context.Background()
		st, err := postgres.NewStore(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		defer st.Close()
		return st.LoadSnapshot(ctx)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", reportSource)
	}
}

func buildFilterSpec() (analytics.FilterSpec, error) {
	var spec analytics.FilterSpec
	var err error

	parse := func(s string) (time.Time, error) {
		return time.Parse("2006-01-02", s)
	}
	if reportStart != "" {
		if spec.StartDate, err = parse(reportStart); err != nil {
			return spec, fmt.Errorf("parsing start-date: %w", err)
		}
	}
	if reportEnd != "" {
		if spec.EndDate, err = parse(reportEnd); err != nil {
			return spec, fmt.Errorf("parsing end-date: %w", err)
		}
	}
	spec.Location = reportLocation
	spec.Category = reportCategory
	spec.SellerID = reportSeller
	return spec, nil
}
