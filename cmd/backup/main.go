package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"themeclash/internal/config"
	"themeclash/internal/database"
	"themeclash/internal/store"
)

func main() {
	// Define subcommands
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)

	// Export flags
	exportOutput := exportCmd.String("output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")

	// Import flags
	importInput := importCmd.String("input", "", "Input file path (required)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	kv := store.NewSQLStore(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		handleExport(ctx, kv, *exportOutput)

	case "import":
		importCmd.Parse(os.Args[2:])
		if *importInput == "" {
			fmt.Println("Error: -input flag is required")
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		handleImport(ctx, kv, *importInput)

	default:
		printUsage()
		os.Exit(1)
	}
}

func handleExport(ctx context.Context, kv *store.SQLStore, outputPath string) {
	// Generate default filename if not provided
	if outputPath == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputPath = fmt.Sprintf("backup_%s.json", timestamp)
	}

	// Ensure directory exists
	dir := filepath.Dir(outputPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create output directory: %v", err)
		}
	}

	entries, err := kv.Dump(ctx)
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode backup: %v", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		log.Fatalf("Failed to write backup file: %v", err)
	}

	fileInfo, _ := os.Stat(outputPath)
	log.Printf("Exported %d entries to %s (%.2f KB)", len(entries), outputPath, float64(fileInfo.Size())/1024)
}

func handleImport(ctx context.Context, kv *store.SQLStore, inputPath string) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	var entries []store.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Fatalf("Failed to decode backup file: %v", err)
	}

	log.Printf("Importing %d entries from %s", len(entries), inputPath)
	if err := kv.Restore(ctx, entries); err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Println("Import complete!")
}

func printUsage() {
	fmt.Println("ThemeClash Store Backup Tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  backup export [options]    Export the kv store to a JSON file")
	fmt.Println("  backup import [options]    Import the kv store from a JSON file")
	fmt.Println()
	fmt.Println("Export Options:")
	fmt.Println("  -output <file>    Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	fmt.Println()
	fmt.Println("Import Options:")
	fmt.Println("  -input <file>     Input file path (required)")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  DB_TYPE          Database type: sqlite, postgres, or mysql (default: sqlite)")
	fmt.Println("  DB_PATH          SQLite database path (default: ./themeclash.db)")
	fmt.Println("  DATABASE_URL     PostgreSQL or MySQL connection URL")
}
