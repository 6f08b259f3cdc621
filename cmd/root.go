package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/catalog"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/export"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/factories"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/format"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/models"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/state"
	"github.com/habeeb-code-cell/Habeeb-s-kitchen/internal/storefront"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "habeeb-kitchen",
	Short: "Storefront engine for the Habeeb's Kitchen restaurant chain",
	Long: `habeeb-kitchen is the headless storefront for Habeeb's Kitchen:
menu catalog, cart, simulated checkout and order tracking, and
reservation booking. The demo run walks a full customer session and
streams every state change as events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return runDemo(cfg)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the order history to parquet (local file or S3)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return runExport(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is examples/config.json)")

	rootCmd.Flags().String("state-dir", ".habeeb-kitchen", "Directory for persisted session state")
	rootCmd.Flags().String("postgres-dsn", "", "Postgres DSN for session state (overrides state-dir)")
	rootCmd.Flags().Bool("kafka-enabled", false, "Enable Kafka event output")
	rootCmd.Flags().String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	rootCmd.Flags().String("events-dir", "", "Directory for per-topic event files (if not using Kafka)")
	rootCmd.Flags().Int("free-delivery-threshold", 5000, "Subtotal above which delivery is free")
	rootCmd.Flags().Int("delivery-fee", 500, "Flat delivery fee below the threshold")

	exportCmd.Flags().String("export-dir", "exports", "Directory for local parquet exports")
	exportCmd.Flags().String("s3-bucket", "", "S3 bucket for exports (if set, uploads instead)")
	exportCmd.Flags().String("aws-region", "eu-west-2", "AWS region for S3 exports")

	viper.BindPFlags(rootCmd.Flags())
	viper.BindPFlags(exportCmd.Flags())

	rootCmd.AddCommand(exportCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// runDemo walks a complete customer session: browse, fill a cart,
// check out, book a table, then let the simulated backend advance the
// order until every scheduled transition has fired.
func runDemo(cfg *models.Config) error {
	cat, err := catalog.Load(cfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := state.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	output, err := storefront.OpenOutput(cfg)
	if err != nil {
		return err
	}

	shop, err := storefront.New(cfg, cat, store, output, storefront.SystemClock())
	if err != nil {
		return err
	}

	popular := cat.Filter(catalog.PopularOnly(), catalog.ByCategory(models.CategoryNigerian))
	if len(popular) == 0 {
		popular = cat.MenuItems()
	}
	for _, item := range popular {
		if err := shop.AddToCart(item.ID); err != nil {
			return err
		}
		logrus.Infof("Added %s (%s) to cart", item.Name, format.FormatPrice(item.Price))
	}
	shop.CustomizeCartItem(popular[0].ID, "Extra spicy")

	logrus.Infof("Cart: %d items, subtotal %s, delivery %s, total %s",
		shop.CartItemCount(),
		format.FormatPrice(shop.CartSubtotal()),
		format.FormatPrice(shop.CartDeliveryFee()),
		format.FormatPrice(shop.CartTotal()))

	customers := &factories.CustomerFactory{}
	order, err := shop.PlaceOrder("card", customers.CreateCustomerInfo())
	if err != nil {
		return err
	}

	locations := cat.Locations()
	if len(locations) > 0 && len(cfg.ReservationTimeSlots) > 0 {
		form := customers.CreateReservationForm(locations[0], cfg.ReservationTimeSlots[0])
		if ackID, errs := shop.SubmitReservation(form); len(errs) > 0 {
			logrus.Warnf("demo reservation rejected: %v", errs)
		} else {
			logrus.Infof("Reservation submitted, acknowledgment %s", ackID)
		}
	}

	// Run until the preparing transition and the reservation
	// confirmation have both fired.
	deadline := cfg.PreparingDelay
	if cfg.ReservationConfirmDelay > deadline {
		deadline = cfg.ReservationConfirmDelay
	}
	runCtx, cancel := context.WithTimeout(ctx, deadline+time.Second)
	defer cancel()
	shop.Run(runCtx)

	if final, ok := shop.Order(order.ID); ok {
		estimate := final.EstimatedDelivery
		if minutes, err := strconv.Atoi(estimate); err == nil {
			estimate = format.FormatDeliveryTime(minutes)
		}
		logrus.Infof("Order %s finished the session as %q, estimated delivery %s",
			final.ID, final.Status, estimate)
	}
	return nil
}

func runExport(cfg *models.Config) error {
	ctx := context.Background()
	store, err := state.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	orders, err := store.LoadOrders()
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		logrus.Info("No orders to export")
		return nil
	}

	dest, err := export.New(cfg).Export(ctx, orders)
	if err != nil {
		return err
	}
	logrus.Infof("Exported %d orders to %s", len(orders), dest)
	return nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
