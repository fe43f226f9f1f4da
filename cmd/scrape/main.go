package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"

	"askmira/internal/config"
	"askmira/internal/database/minio"
	"askmira/internal/rag/storages/objectstore"
	"askmira/internal/scraper"
	"askmira/pkg/fetch"
	"askmira/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("Scraper", "")

	minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	store := objectstore.NewStore(minioClient, cfg.Databases.MinIO.Bucket)

	retries := cfg.Scraper.Retries
	if retries <= 0 {
		retries = 3
	}
	minDelay := time.Duration(cfg.Scraper.MinDelaySeconds) * time.Second
	maxDelay := time.Duration(cfg.Scraper.MaxDelaySeconds) * time.Second
	if minDelay <= 0 {
		minDelay = 2 * time.Second
	}
	if maxDelay < minDelay {
		maxDelay = minDelay + 3*time.Second
	}
	client := fetch.NewClient(retries, minDelay, maxDelay)

	s := scraper.New(client, store, cfg.Scraper.BaseURL, appLogger)

	start := time.Now()
	success, failed, err := s.Run(context.Background())
	if err != nil {
		log.Fatalf("Scrape failed: %v", err)
	}
	appLogger.Info(fmt.Sprintf("Scrape finished in %s: %d countries saved, %d failures", time.Since(start).Round(time.Second), success, failed))
}
