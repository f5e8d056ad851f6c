package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type Config struct {
	Seed        int64     `mapstructure:"seed"`
	SellerCount int       `mapstructure:"seller_count"`
	StartDate   time.Time `mapstructure:"start_date"`
	EndDate     time.Time `mapstructure:"end_date"`

	Locations     []string `mapstructure:"locations"`
	Categories    []string `mapstructure:"categories"`
	ReturnReasons []string `mapstructure:"return_reasons"`

	// Generator tuning
	OrdersPerSellerMonth float64 `mapstructure:"orders_per_seller_month"`
	RatingFraction       float64 `mapstructure:"rating_fraction"`
	OnTimeDays           int     `mapstructure:"ontime_days"`

	// Ranking
	RankingMinOrders int `mapstructure:"ranking_min_orders"`
	RankingLimit     int `mapstructure:"ranking_limit"`

	// Result cache
	CacheSize int `mapstructure:"cache_size"`

	// Output
	OutputPath        string             `mapstructure:"output_path"`
	OutputFolder      string             `mapstructure:"output_folder"`
	OutputFormat      string             `mapstructure:"output_format"`
	OutputDestination string             `mapstructure:"output_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`

	// Kafka
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	// Postgres
	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`
}

// DefaultConfig returns a config that generates a year of data for a
// mid-sized marketplace.
func DefaultConfig() *Config {
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	return &Config{
		Seed:                 42,
		SellerCount:          50,
		StartDate:            end.AddDate(-1, 0, 0),
		EndDate:              end,
		Locations:            DefaultLocations,
		Categories:           DefaultCategories,
		ReturnReasons:        DefaultReturnReasons,
		OrdersPerSellerMonth: 25,
		RatingFraction:       0.4,
		OnTimeDays:           7,
		RankingMinOrders:     10,
		RankingLimit:         20,
		CacheSize:            128,
		OutputFormat:         "csv",
		OutputPath:           "output",
		OutputDestination:    "local",
	}
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	config := DefaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the generation parameters the engine cannot default away.
func (cfg *Config) Validate() error {
	if cfg.SellerCount <= 0 {
		return &GenerationError{Param: "seller_count", Constraint: "must be positive"}
	}
	if !cfg.EndDate.After(cfg.StartDate) {
		return &GenerationError{Param: "end_date", Constraint: "must be after start_date"}
	}
	if len(cfg.Locations) == 0 {
		return &GenerationError{Param: "locations", Constraint: "taxonomy must not be empty"}
	}
	if len(cfg.Categories) == 0 {
		return &GenerationError{Param: "categories", Constraint: "taxonomy must not be empty"}
	}
	if len(cfg.ReturnReasons) == 0 {
		return &GenerationError{Param: "return_reasons", Constraint: "taxonomy must not be empty"}
	}
	return nil
}
