package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/sirupsen/logrus"

	"github.com/janenicoldelacruz-web/lakson-inventory/config"
	"github.com/janenicoldelacruz-web/lakson-inventory/database"
)

func main() {
	// Define flags
	force := flag.Bool("force", false, "Force re-seed even if data exists")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("Starting database seeding tool")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	fmt.Printf("Database: %s@%s:%s/%s\n\n", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Initialize database connection
	if err := database.Initialize(&cfg.Database, logrus.StandardLogger()); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	// Check connection
	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatal("Database connection check failed:", err)
	}

	if *force {
		fmt.Println("Force flag enabled. Clearing existing data...")
		// Clear data in reverse dependency order
		tables := []string{
			"stock_movements",
			"sale_items",
			"sales",
			"purchase_items",
			"purchases",
			"product_batches",
			"products",
			"brands",
			"product_categories",
		}

		for _, table := range tables {
			if err := database.DB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
				log.Printf("Warning: Could not clear table %s: %v", table, err)
			} else {
				log.Printf("  Cleared table: %s", table)
			}
		}
		fmt.Println()
	}

	// Seed data
	fmt.Println("Seeding reference data...")
	if err := database.SeedData(database.DB); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	fmt.Println("Database seeded successfully")
}

func showHelp() {
	fmt.Println(`
Database Seeding Tool for Lakson Feeds Inventory

Usage:
  go run cmd/seed/main.go [options]

Options:
  -force    Clear existing data before seeding (WARNING: Data loss!)
  -help     Show this help message

Examples:
  # Seed missing reference data (idempotent)
  go run cmd/seed/main.go

  # Wipe and re-seed
  go run cmd/seed/main.go -force`)
}
