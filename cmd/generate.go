package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sellerlytics/sellerlytics/internal/export"
	"github.com/sellerlytics/sellerlytics/internal/generator"
	"github.com/sellerlytics/sellerlytics/internal/logging"
	"github.com/sellerlytics/sellerlytics/internal/models"
	"github.com/sellerlytics/sellerlytics/internal/store/postgres"
	"github.com/sellerlytics/sellerlytics/internal/stream"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic marketplace dataset",
	Long: `Generate a seeded, reproducible dataset of sellers, orders, ratings and
returns, then write it to the configured output (csv, json, parquet),
Kafka topics, and/or Postgres.`,
	RunE: runGenerate,
}

func init() {
	// Flag defaults mirror DefaultConfig so viper's precedence (flag value
	// over config file over flag default) leaves a bare invocation working.
	defaults := models.DefaultConfig()
	generateCmd.Flags().Int64("seed", defaults.Seed, "Random seed (same seed, same dataset)")
	generateCmd.Flags().Int("seller-count", defaults.SellerCount, "Number of sellers to generate")
	generateCmd.Flags().String("start-date", defaults.StartDate.Format(time.RFC3339), "Window start (RFC3339)")
	generateCmd.Flags().String("end-date", defaults.EndDate.Format(time.RFC3339), "Window end (RFC3339)")
	generateCmd.Flags().String("format", defaults.OutputFormat, "Output format (csv, json, parquet)")
	generateCmd.Flags().String("output", "output", "Output base path")
	generateCmd.Flags().Bool("kafka", false, "Publish records to Kafka")
	generateCmd.Flags().Bool("postgres", false, "Persist the dataset to Postgres")

	viper.BindPFlag("seed", generateCmd.Flags().Lookup("seed"))
	viper.BindPFlag("seller_count", generateCmd.Flags().Lookup("seller-count"))
	viper.BindPFlag("start_date", generateCmd.Flags().Lookup("start-date"))
	viper.BindPFlag("end_date", generateCmd.Flags().Lookup("end-date"))
	viper.BindPFlag("output_format", generateCmd.Flags().Lookup("format"))
	viper.BindPFlag("output_path", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("kafka_enabled", generateCmd.Flags().Lookup("kafka"))
	viper.BindPFlag("postgres_enabled", generateCmd.Flags().Lookup("postgres"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := models.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	gen := generator.New(cfg)
	bar := progressbar.Default(int64(cfg.SellerCount), "generating sellers")
	gen.Progress = func(done, total int) {
		bar.Set(done)
	}

	snap, err := gen.Generate()
	if err != nil {
		return err
	}
	bar.Finish()

	logging.Info().
		Int("sellers", len(snap.Sellers)).
		Int("orders", len(snap.Orders)).
		Int("ratings", len(snap.Ratings)).
		Int("returns", len(snap.Returns)).
		Uint64("version", snap.Version).
		Msg("dataset generated")

	if err := writeSnapshot(cfg, snap); err != nil {
		return err
	}

	if cfg.KafkaEnabled {
		producer, err := stream.NewProducer(cfg.KafkaBrokerList)
		if err != nil {
			return fmt.Errorf("connecting to kafka: %w", err)
		}
		defer producer.Close()
		if err := producer.PublishSnapshot(snap); err != nil {
			return fmt.Errorf("publishing to kafka: %w", err)
		}
		logging.Info().Str("brokers", cfg.KafkaBrokerList).Msg("dataset published to kafka")
	}

	if cfg.PostgresEnabled {
		ctx := context.Background()
		st, err := postgres.NewStore(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("connecting to postgres: %w", err)
		}
		defer st.Close()
		if err := st.Migrate(ctx); err != nil {
			return fmt.Errorf("migrating schema: %w", err)
		}
		if err := st.SaveSnapshot(ctx, snap); err != nil {
			return fmt.Errorf("persisting dataset: %w", err)
		}
	}

	return nil
}

func writeSnapshot(cfg *models.Config, snap *models.Snapshot) error {
	exp, runID, err := export.New(cfg)
	if err != nil {
		return err
	}
	defer exp.Close()

	for _, tbl := range export.SnapshotTables(snap) {
		if err := exp.WriteTable(tbl); err != nil {
			return fmt.Errorf("writing %s: %w", tbl.Name, err)
		}
	}
	logging.Info().Str("format", cfg.OutputFormat).Str("run", runID).Msg("dataset written")
	return nil
}
