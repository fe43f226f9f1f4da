package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"askmira/internal/config"
	"askmira/internal/database/milvus"
	"askmira/internal/database/minio"
	"askmira/internal/rag/embedding"
	"askmira/internal/rag/extractors"
	"askmira/internal/rag/pipeline"
	"askmira/internal/rag/splitters"
	"askmira/internal/rag/storages/objectstore"
	"askmira/internal/rag/storages/vectorstore"
	"askmira/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	singleKey := flag.String("key", "", "convert and index a single object instead of the whole input prefix")
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
	appLogger := logger.New("Convert", "")

	ctx := context.Background()

	minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	objects := objectstore.NewStore(minioClient, cfg.Databases.MinIO.Bucket)

	inputPrefix := cfg.Convert.InputPrefix
	if inputPrefix == "" {
		inputPrefix = "FCE Regulations/"
	}
	outputPrefix := cfg.Convert.OutputPrefix
	if outputPrefix == "" {
		outputPrefix = "FCE Regulations TXT/"
	}

	if *singleKey != "" {
		// Convert one document, then push it straight into the index so a
		// fresh regulation is searchable without a full ingest run.
		outKey, err := convertOne(ctx, objects, appLogger, *singleKey, inputPrefix, outputPrefix)
		if err != nil {
			log.Fatalf("Failed to convert %q: %v", *singleKey, err)
		}
		if err := indexOne(ctx, cfg, appLogger, objects, outKey); err != nil {
			log.Fatalf("Failed to index %q: %v", outKey, err)
		}
		appLogger.Info(fmt.Sprintf("Converted and indexed %q as %q", *singleKey, outKey))
		return
	}

	keys, err := objects.ListKeys(ctx, inputPrefix)
	if err != nil {
		log.Fatalf("Failed to list %q: %v", inputPrefix, err)
	}
	appLogger.Info(fmt.Sprintf("Converting %d objects under %q", len(keys), inputPrefix))

	converted := 0
	skipped := 0
	failed := 0
	for _, key := range keys {
		if _, err := convertOne(ctx, objects, appLogger, key, inputPrefix, outputPrefix); err != nil {
			if errors.Is(err, extractors.ErrUnsupportedFormat) {
				appLogger.Warn(fmt.Sprintf("Skipping unsupported document %q", key))
				skipped++
				continue
			}
			appLogger.Error(fmt.Sprintf("Failed to convert %q: %v", key, err))
			failed++
			continue
		}
		converted++
	}
	appLogger.Info(fmt.Sprintf("Conversion complete: %d converted, %d skipped, %d failures", converted, skipped, failed))
}

// convertOne extracts the text of one document and uploads it under the
// output prefix with the same relative path and a .txt extension.
func convertOne(ctx context.Context, objects *objectstore.Store, log *logger.Logger, key, inputPrefix, outputPrefix string) (string, error) {
	data, err := objects.Get(ctx, key)
	if err != nil {
		return "", err
	}

	ft, err := extractors.DetectFileType(key, data)
	if err != nil {
		return "", err
	}

	text, err := extractors.Extract(data, ft)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("document %q produced no text", key)
	}

	rel := strings.TrimPrefix(key, inputPrefix)
	outKey := outputPrefix + strings.TrimSuffix(rel, path.Ext(rel)) + ".txt"
	if err := objects.PutText(ctx, outKey, text); err != nil {
		return "", err
	}
	log.Info(fmt.Sprintf("Converted %q to %q", key, outKey))
	return outKey, nil
}

// indexOne reindexes a single converted text object.
func indexOne(ctx context.Context, cfg *config.AppConfig, log *logger.Logger, objects *objectstore.Store, key string) error {
	milvusClient, err := milvus.GetClient(ctx, &cfg.Databases.Milvus)
	if err != nil {
		return fmt.Errorf("connect to Milvus: %w", err)
	}
	defer milvusClient.Close()

	dim := cfg.Embedding.Dimension
	if dim <= 0 {
		dim = 1024
	}
	vectors, err := vectorstore.NewMilvusStore(milvusClient, cfg.Databases.Milvus.Collection, dim, log)
	if err != nil {
		return err
	}
	if err := vectors.EnsureCollection(ctx, cfg.Ingest.CreateCollection); err != nil {
		return err
	}

	model, err := embedding.NewModel(&cfg.Embedding)
	if err != nil {
		return err
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
	indexer := pipeline.NewIndexingPipeline(splitter, embedder, vectors, cfg.Ingest.BatchSize, log)

	data, err := objects.Get(ctx, key)
	if err != nil {
		return err
	}
	n, err := indexer.IndexDocument(ctx, key, string(data))
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("Indexed %d vectors for %q", n, key))
	return nil
}
