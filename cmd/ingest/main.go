package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"askmira/internal/config"
	"askmira/internal/database/kafka"
	"askmira/internal/database/milvus"
	"askmira/internal/database/minio"
	"askmira/internal/models"
	"askmira/internal/rag/embedding"
	"askmira/internal/rag/pipeline"
	"askmira/internal/rag/splitters"
	"askmira/internal/rag/storages/objectstore"
	"askmira/internal/rag/storages/vectorstore"
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
	appLogger := logger.New("Ingest", "")
	appLogger.Info("Starting ingestion run...")

	ctx := context.Background()

	// Object storage with the source documents.
	minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	objects := objectstore.NewStore(minioClient, cfg.Databases.MinIO.Bucket)

	// Vector store receiving the embeddings.
	milvusClient, err := milvus.GetClient(ctx, &cfg.Databases.Milvus)
	if err != nil {
		log.Fatalf("Failed to connect to Milvus: %v", err)
	}
	defer milvusClient.Close()

	dim := cfg.Embedding.Dimension
	if dim <= 0 {
		dim = 1024
	}
	vectors, err := vectorstore.NewMilvusStore(milvusClient, cfg.Databases.Milvus.Collection, dim, appLogger)
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}
	if err := vectors.EnsureCollection(ctx, cfg.Ingest.CreateCollection); err != nil {
		log.Fatalf("Collection not ready: %v", err)
	}

	// Embedding model, truncated and normalized to the collection dimension.
	model, err := embedding.NewModel(&cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to create embedding model: %v", err)
	}
	embedder := embedding.NewResized(model, dim)

	chunkSize := cfg.Ingest.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	chunkOverlap := cfg.Ingest.ChunkOverlap
	if chunkOverlap <= 0 {
		chunkOverlap = 200
	}
	splitter := splitters.NewCharacterSplitter(chunkSize, chunkOverlap)

	indexer := pipeline.NewIndexingPipeline(splitter, embedder, vectors, cfg.Ingest.BatchSize, appLogger)

	// Optional ingest events for downstream consumers.
	var publisher *kafka.IngestPublisher
	if cfg.Databases.Kafka.Enabled {
		kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
		if err != nil {
			appLogger.Warn("Kafka unavailable, ingest events disabled: " + err.Error())
		} else {
			publisher = kafka.NewIngestPublisher(kafkaClient)
			defer publisher.Close()
			defer kafkaClient.Close()
		}
	}

	prefixes := cfg.Ingest.Prefixes
	if len(prefixes) == 0 {
		prefixes = []string{"aacrao/", "FCE Regulations TXT/"}
	}

	totalDocs := 0
	totalVectors := 0
	failed := 0
	for _, prefix := range prefixes {
		keys, err := objects.ListKeys(ctx, prefix)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Failed to list %q: %v", prefix, err))
			failed++
			continue
		}
		appLogger.Info(fmt.Sprintf("Found %d objects under %q", len(keys), prefix))

		for _, key := range keys {
			if strings.ToLower(filepath.Ext(key)) != ".txt" {
				appLogger.Info(fmt.Sprintf("Skipping non-text object %q", key))
				continue
			}

			n, err := ingestOne(ctx, objects, indexer, key)
			event := &models.IngestEvent{
				Source:    key,
				Vectors:   n,
				Timestamp: time.Now().UTC(),
			}
			if err != nil {
				appLogger.Error(fmt.Sprintf("Failed to ingest %q: %v", key, err))
				event.Error = err.Error()
				failed++
			} else {
				totalDocs++
				totalVectors += n
			}

			if publisher != nil {
				if pubErr := publisher.Publish(ctx, event); pubErr != nil {
					appLogger.Warn(fmt.Sprintf("Failed to publish ingest event for %q: %v", key, pubErr))
				}
			}
		}
	}

	appLogger.Info(fmt.Sprintf("Ingestion complete: %d documents, %d vectors, %d failures", totalDocs, totalVectors, failed))
}

func ingestOne(ctx context.Context, objects *objectstore.Store, indexer *pipeline.IndexingPipeline, key string) (int, error) {
	data, err := objects.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return indexer.IndexDocument(ctx, key, string(data))
}
