package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/thien/ecom-seeder/internal/config"
	"github.com/thien/ecom-seeder/internal/docker"
	"github.com/thien/ecom-seeder/internal/generator"
	"github.com/thien/ecom-seeder/internal/loader"
	"github.com/thien/ecom-seeder/internal/logger"
	"github.com/thien/ecom-seeder/internal/materializer"
	"github.com/thien/ecom-seeder/internal/reporter"
	"go.uber.org/zap"
)

var (
	cfgFile      string
	cfg          *config.Config
	dockerClient *docker.Client
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "ecom-seeder",
	Short: "Synthetic e-commerce fixture data tool",
	Long: `A CLI tool that generates a referentially-consistent e-commerce dataset
(users, products, orders, order items, payments), loads it into a local
PostgreSQL store, and runs a denormalized analytics report.

The three stages (generate, load, report) are independent invocations that
communicate only through the CSV files and the store.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		if err := logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
			os.Exit(1)
		}

		dockerClient = docker.NewClient(
			cfg.Docker.ContainerName,
			cfg.Docker.ComposeFile,
			cfg.Docker.AutoStart,
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// generateCmd synthesizes the dataset and writes the table files
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic dataset and write it to CSV files",
	Long: `Generates users, products, orders, order items and payments with valid
cross-table references, validates the result, and writes one CSV file per
table. Nothing is written until the whole dataset has passed validation.`,
	Run: func(cmd *cobra.Command, args []string) {
		applyGenerateFlags(cmd)

		seed := cfg.Generate.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		logger.Info("Generating dataset",
			zap.Int("users", cfg.Generate.Users),
			zap.Int("products", cfg.Generate.Products),
			zap.Int("orders", cfg.Generate.Orders),
			zap.Int64("seed", seed))

		opts := generator.DefaultOptions()
		opts.MinItemsPerOrder = cfg.Generate.MinItems
		opts.MaxItemsPerOrder = cfg.Generate.MaxItems

		gen := generator.New(seed, opts)
		ds, err := gen.BuildDataset(cfg.Generate.Users, cfg.Generate.Products, cfg.Generate.Orders)
		if err != nil {
			logger.Fatal("Dataset generation failed", zap.Error(err))
		}

		results, err := materializer.WriteCSV(cfg.Output.Dir, ds)
		if err != nil {
			logger.Fatal("Failed to write CSV files", zap.Error(err))
		}
		if cfg.Output.JSON {
			if _, err := materializer.WriteJSON(cfg.Output.Dir, ds); err != nil {
				logger.Fatal("Failed to write JSON files", zap.Error(err))
			}
		}

		fmt.Printf("Dataset written to %s (seed %d):\n", cfg.Output.Dir, seed)
		for _, r := range results {
			fmt.Printf("  %s: %d rows\n", r.Table, r.Rows)
		}
	},
}

// loadCmd replace-loads the CSV files into the store
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the CSV files into the PostgreSQL store",
	Long: `Clears and repopulates every entity table from the generated CSV files.
Each table is replaced inside its own transaction, so loading the same
files twice leaves the store with exactly the same rows as loading once.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := setupContext()

		if err := dockerClient.EnsureRunning(ctx); err != nil {
			logger.Fatal("Failed to ensure store container is running", zap.Error(err))
		}
		time.Sleep(2 * time.Second)

		db := connectStore(ctx)
		defer db.Close()

		l := loader.New(db)
		if err := l.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure store schema", zap.Error(err))
		}

		results, err := l.LoadAll(ctx, cfg.Output.Dir)
		if err != nil {
			logger.Fatal("Load failed", zap.Error(err))
		}

		var totalRows int64
		fmt.Println("Rows inserted:")
		for _, r := range results {
			totalRows += r.RowsInserted
			fmt.Printf("  %s: %d\n", r.Table, r.RowsInserted)
		}
		logger.Info("Load completed",
			zap.Int("tables", len(results)),
			zap.Int64("total_rows", totalRows))
	},
}

// reportCmd runs the fixed join report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the order analytics report against the store",
	Long: `Joins users, orders, order items, products and payments into one
denormalized report, one row per order item, and prints it as a table.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := setupContext()

		db := connectStore(ctx)
		defer db.Close()

		rows, err := reporter.New(db).Run(ctx)
		if err != nil {
			logger.Fatal("Report failed", zap.Error(err))
		}

		if len(rows) == 0 {
			fmt.Println("No data found. Run 'ecom-seeder load' first.")
			return
		}
		fmt.Print(reporter.Render(rows))
	},
}

// dockerCmd manages the store container
var dockerCmd = &cobra.Command{
	Use:   "docker",
	Short: "Manage the store's Docker container",
	Long:  "Start, stop, or recreate the local PostgreSQL Docker container backing the store",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := setupContext()

		action, _ := cmd.Flags().GetString("action")

		switch action {
		case "start":
			if err := dockerClient.Start(ctx); err != nil {
				logger.Fatal("Failed to start container", zap.Error(err))
			}
			logger.Info("Container started successfully")
		case "stop":
			if err := dockerClient.Stop(ctx); err != nil {
				logger.Fatal("Failed to stop container", zap.Error(err))
			}
			logger.Info("Container stopped successfully")
		case "restart":
			if err := dockerClient.Stop(ctx); err != nil {
				logger.Warn("Failed to stop container", zap.Error(err))
			}
			if err := dockerClient.Start(ctx); err != nil {
				logger.Fatal("Failed to start container", zap.Error(err))
			}
			logger.Info("Container restarted successfully")
		case "recreate":
			if err := dockerClient.Recreate(ctx); err != nil {
				logger.Fatal("Failed to recreate container", zap.Error(err))
			}
			logger.Info("Container recreated successfully")
		case "status":
			running, err := dockerClient.IsRunning(ctx)
			if err != nil {
				logger.Fatal("Failed to check container status", zap.Error(err))
			}
			if running {
				fmt.Println("Container is running")
			} else {
				fmt.Println("Container is not running")
			}
		case "logs":
			logs, err := dockerClient.GetLogs(ctx, 100)
			if err != nil {
				logger.Fatal("Failed to get logs", zap.Error(err))
			}
			fmt.Println(logs)
		default:
			logger.Fatal("Invalid action. Use: start, stop, restart, recreate, status, or logs")
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	generateCmd.Flags().Int("users", 25, "Number of users to generate")
	generateCmd.Flags().Int("products", 15, "Number of products to generate")
	generateCmd.Flags().Int("orders", 40, "Number of orders to generate")
	generateCmd.Flags().Int64("seed", 0, "Random seed (0 derives one from the clock)")
	generateCmd.Flags().Bool("json", false, "Also write .json copies alongside CSVs")
	generateCmd.Flags().String("out", "", "Output directory for table files")
	rootCmd.AddCommand(generateCmd)

	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(reportCmd)

	dockerCmd.Flags().String("action", "status", "Action to perform: start, stop, restart, recreate, status, or logs")
	rootCmd.AddCommand(dockerCmd)
}

// Helper functions

// applyGenerateFlags lets explicit flags override the config file.
func applyGenerateFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("users") {
		cfg.Generate.Users, _ = cmd.Flags().GetInt("users")
	}
	if cmd.Flags().Changed("products") {
		cfg.Generate.Products, _ = cmd.Flags().GetInt("products")
	}
	if cmd.Flags().Changed("orders") {
		cfg.Generate.Orders, _ = cmd.Flags().GetInt("orders")
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed, _ = cmd.Flags().GetInt64("seed")
	}
	if cmd.Flags().Changed("json") {
		cfg.Output.JSON, _ = cmd.Flags().GetBool("json")
	}
	if cmd.Flags().Changed("out") {
		cfg.Output.Dir, _ = cmd.Flags().GetString("out")
	}
}

func setupContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Received interrupt signal, shutting down...")
		cancel()
	}()

	return ctx
}

func connectStore(ctx context.Context) *sql.DB {
	logger.Info("Connecting to store", zap.String("host", cfg.Database.Host))
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open store connection", zap.Error(err))
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("Failed to ping store", zap.Error(err))
	}

	logger.Info("Store connection established")
	return db
}
