package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/internal/db"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	out := flag.String("out", "", "Backup file (default <dsn>.bak)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Driver != "" && cfg.Database.Driver != string(db.SQLite) {
		fmt.Fprintf(os.Stderr, "Backup error: only the sqlite driver is supported, use pg_dump for %s\n", cfg.Database.Driver)
		os.Exit(1)
	}

	src := cfg.Database.DSN
	dst := *out
	if dst == "" {
		dst = src + ".bak"
	}
	// VACUUM INTO refuses to overwrite
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.New(ctx, src, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	// consistent snapshot of a live database
	if _, err := database.Exec(ctx, "VACUUM INTO ?", dst); err != nil {
		fmt.Fprintf(os.Stderr, "Backup error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Database backup completed: %s\n", dst)
}
