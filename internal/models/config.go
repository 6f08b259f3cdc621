package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds every business constant the storefront depends on. The
// delivery fee thresholds and transition delays are product-owned
// defaults; they are configurable but must not be changed casually.
type Config struct {
	CurrencySymbol string `mapstructure:"currency_symbol"`

	// Delivery pricing. The fee is waived when the cart subtotal is
	// strictly greater than the threshold.
	FreeDeliveryThreshold int `mapstructure:"free_delivery_threshold"`
	DeliveryFee           int `mapstructure:"delivery_fee"`

	// Order simulation. Both delays are measured from order placement.
	InitialEstimateMinutes   string        `mapstructure:"initial_estimate_minutes"`
	PreparingEstimateMinutes string        `mapstructure:"preparing_estimate_minutes"`
	ConfirmDelay             time.Duration `mapstructure:"confirm_delay"`
	PreparingDelay           time.Duration `mapstructure:"preparing_delay"`
	TickInterval             time.Duration `mapstructure:"tick_interval"`

	// Reservations.
	ReservationConfirmDelay time.Duration `mapstructure:"reservation_confirm_delay"`
	ReservationTimeSlots    []string      `mapstructure:"reservation_time_slots"`

	// Catalog data files.
	MenuFile      string `mapstructure:"menu_file"`
	ReviewsFile   string `mapstructure:"reviews_file"`
	LocationsFile string `mapstructure:"locations_file"`

	// Session state persistence. Postgres wins when a DSN is set,
	// otherwise JSON files under StateDir.
	StateDir    string `mapstructure:"state_dir"`
	PostgresDSN string `mapstructure:"postgres_dsn"`

	// Event stream output.
	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`
	EventsDir       string `mapstructure:"events_dir"`

	// Order history export.
	ExportDir string `mapstructure:"export_dir"`
	S3Bucket  string `mapstructure:"s3_bucket"`
	AWSRegion string `mapstructure:"aws_region"`
}

// DefaultTimeSlots mirrors the dining room sittings offered at every
// location: lunch and dinner, half-hour steps.
var DefaultTimeSlots = []string{
	"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
	"6:00 PM", "6:30 PM", "7:00 PM", "7:30 PM", "8:00 PM", "8:30 PM", "9:00 PM",
}

func setDefaults() {
	viper.SetDefault("currency_symbol", "₦")
	viper.SetDefault("free_delivery_threshold", 5000)
	viper.SetDefault("delivery_fee", 500)
	viper.SetDefault("initial_estimate_minutes", "35")
	viper.SetDefault("preparing_estimate_minutes", "25")
	viper.SetDefault("confirm_delay", 3*time.Second)
	viper.SetDefault("preparing_delay", 8*time.Second)
	viper.SetDefault("tick_interval", 200*time.Millisecond)
	viper.SetDefault("reservation_confirm_delay", 1500*time.Millisecond)
	viper.SetDefault("reservation_time_slots", DefaultTimeSlots)
	viper.SetDefault("menu_file", "data/menu_items.json")
	viper.SetDefault("reviews_file", "data/reviews.json")
	viper.SetDefault("locations_file", "data/locations.json")
	viper.SetDefault("state_dir", ".habeeb-kitchen")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("export_dir", "exports")
	viper.SetDefault("aws_region", "eu-west-2")
}

// LoadConfig initializes and reads the configuration using Viper.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; the defaults above
		// describe a complete working storefront.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the built-in defaults without touching the
// process-wide viper instance. Tests lean on this.
func DefaultConfig() *Config {
	return &Config{
		CurrencySymbol:           "₦",
		FreeDeliveryThreshold:    5000,
		DeliveryFee:              500,
		InitialEstimateMinutes:   "35",
		PreparingEstimateMinutes: "25",
		ConfirmDelay:             3 * time.Second,
		PreparingDelay:           8 * time.Second,
		TickInterval:             200 * time.Millisecond,
		ReservationConfirmDelay:  1500 * time.Millisecond,
		ReservationTimeSlots:     append([]string{}, DefaultTimeSlots...),
		MenuFile:                 "data/menu_items.json",
		ReviewsFile:              "data/reviews.json",
		LocationsFile:            "data/locations.json",
		StateDir:                 ".habeeb-kitchen",
		KafkaBrokerList:          "localhost:9092",
		ExportDir:                "exports",
		AWSRegion:                "eu-west-2",
	}
}
