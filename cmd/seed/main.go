package main

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/oksasatya/campus-doctor-directory/config"
	"github.com/oksasatya/campus-doctor-directory/internal/application"
	pginfra "github.com/oksasatya/campus-doctor-directory/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-doctor-directory/internal/seed"
	"github.com/oksasatya/campus-doctor-directory/pkg/helpers"
)

// seed provisions the doctor directory. Run after migrations; re-running
// updates doctors in place and never duplicates vocabulary or associations.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var gcs *storage.Client
	if seed.IsGCS(cfg.SeedSource) {
		client, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = client.Close() }()
		gcs = client
	}

	dataset, err := seed.Load(ctx, cfg.SeedSource, gcs)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch client: %v", err)
	}

	svc := application.NewDirectoryService(pginfra.NewDirectoryRepository(pool), logger, es, cfg.ESDoctorsIndex)
	stored, err := svc.Provision(ctx, dataset)
	if err != nil {
		log.Fatalf("failed to provision directory: %v", err)
	}
	logger.WithField("source", sourceName(cfg.SeedSource)).Infof("seeded %d doctors", len(stored))
}

func sourceName(src string) string {
	if src == "" {
		return seed.SourceBuiltin
	}
	return src
}
