package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/garnizeh/careerpages/internal/config"
	"github.com/joho/godotenv"
)

// Restore overwrites the SQLite database file with a backup. Stop the
// server first.
func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	in := flag.String("in", "", "Backup file (default <dsn>.bak)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Database.Driver != "" && cfg.Database.Driver != "sqlite" {
		fmt.Fprintf(os.Stderr, "Restore error: only the sqlite driver is supported\n")
		os.Exit(1)
	}

	dst := cfg.Database.DSN
	src := *in
	if src == "" {
		src = dst + ".bak"
	}

	srcFile, err := os.Open(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		fmt.Fprintf(os.Stderr, "Restore error: %v\n", err)
		os.Exit(1)
	}

	// stale WAL files would be replayed over the restored pages
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(dst + suffix)
	}

	fmt.Println("Database restore completed.")
}
