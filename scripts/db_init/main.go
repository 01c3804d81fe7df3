package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	dbfs "github.com/garnizeh/careerpages/db"
	"github.com/garnizeh/careerpages/internal/auth"
	"github.com/garnizeh/careerpages/internal/config"
	"github.com/garnizeh/careerpages/internal/db"
	"github.com/garnizeh/careerpages/internal/repository/sqlstore"
	"github.com/garnizeh/careerpages/internal/sections"
	"github.com/garnizeh/careerpages/internal/seed"
	"github.com/joho/godotenv"
)

const sampleTenant = "seed/sample_tenant.yaml"

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	withSeed := flag.Bool("seed", false, "Load the sample tenant after migrating")
	flag.Parse()

	_ = godotenv.Load()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	database, err := db.Open(ctx, db.Dialect(cfg.Database.Driver), cfg.Database.DSN, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Database initialized successfully.")

	if !*withSeed {
		return
	}

	tenant, err := seed.Load(dbfs.SeedFiles, sampleTenant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}
	schemas, err := sections.NewLoader()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}
	res, err := seed.Apply(ctx, sqlstore.New(database, nil), auth.NewHasher(cfg.BcryptCost), schemas, tenant)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %s: %d sections, %d jobs. Sign in as %s.\n", res.Company.Slug, res.Sections, res.Jobs, tenant.User.Email)
	fmt.Printf("Careers page: /%s/careers\n", res.Company.Slug)
}
