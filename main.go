package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/janenicoldelacruz-web/lakson-inventory/cache"
	"github.com/janenicoldelacruz-web/lakson-inventory/config"
	"github.com/janenicoldelacruz-web/lakson-inventory/database"
	"github.com/janenicoldelacruz-web/lakson-inventory/stock"
	"github.com/janenicoldelacruz-web/lakson-inventory/web"
)

func main() {
	// Command line flags
	var (
		migrate = flag.Bool("migrate", false, "Run database migration on startup")
		seed    = flag.Bool("seed", false, "Seed database with sample data")
		help    = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.App.Environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	// Initialize database connection
	if err := database.Initialize(&cfg.Database, log); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database connection check failed: %v", err)
	}

	// Run migration if requested
	if *migrate {
		log.Info("Running database migration...")
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Info("Migration completed successfully")
	}

	// Seed database if requested
	if *seed {
		log.Info("Seeding database with sample data...")
		if err := database.SeedData(database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		log.Info("Database seeded successfully")
	}

	// Optional Redis cache: a blank REDIS_ADDR runs the store without it
	rdb, err := cache.New(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		log.Info("Redis cache connected")
	}

	// Build the unit converter from the deployment's pack rules
	rules := make([]stock.PackRule, 0, len(cfg.Stock.PackOverrides))
	for _, o := range cfg.Stock.PackOverrides {
		rules = append(rules, stock.PackRule{Match: o.NameContains, KgPerSack: o.KgPerSack})
	}
	conv := stock.NewConverter(cfg.Stock.SackWeightKg, rules)

	engine := stock.NewEngine(database.GetDB(), conv, log,
		stock.WithNotifier(&cache.Invalidator{Client: rdb, Log: log}),
		stock.WithLockWait(cfg.Stock.LockWait),
	)

	// Create and start web server
	server := web.NewServer(engine, rdb, log)

	// Start server in a goroutine
	go func() {
		if err := server.Start(cfg.App.Port); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for interrupt signal
	<-quit
	log.Info("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
}

func showHelp() {
	logrus.Println(`
Lakson Feeds Inventory Server

Usage:
  go run main.go [options]

Options:
  -migrate  Run GORM AutoMigrate on startup
  -seed     Seed database with sample data
  -help     Show this help message

Examples:
  # Start server only
  go run main.go

  # Start server with migration
  go run main.go -migrate

  # Start server with migration and seed
  go run main.go -migrate -seed

For full migration control, use:
  go run cmd/migrate/main.go

For full seed control, use:
  go run cmd/seed/main.go`)
}
