package main

import (
	"context"
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"askmira/internal/chat"
	"askmira/internal/config"
	"askmira/internal/database/milvus"
	"askmira/internal/database/minio"
	"askmira/internal/database/mongo"
	"askmira/internal/rag/embedding"
	"askmira/internal/rag/llms"
	"askmira/internal/rag/pipeline"
	"askmira/internal/rag/storages/objectstore"
	"askmira/internal/rag/storages/vectorstore"
	"askmira/internal/tui"
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
	appLogger := logger.New("Chat", "")

	ctx := context.Background()

	// 1. Vector store over the shared knowledge base collection.
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
		log.Fatalf("Failed to build vector store: %v", err)
	}
	if err := vectors.EnsureCollection(ctx, false); err != nil {
		log.Fatalf("Knowledge base collection unavailable, run ingest first: %v", err)
	}

	// 2. Embedding and chat models.
	model, err := embedding.NewModel(&cfg.Embedding)
	if err != nil {
		log.Fatalf("Failed to build embedding model: %v", err)
	}
	embedder := embedding.NewResized(model, dim)

	chatModel, err := llms.NewChatModel(&cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to build chat model: %v", err)
	}

	topK := cfg.Frontend.TopK
	if topK <= 0 {
		topK = 5
	}
	retriever := pipeline.NewRetrievalPipeline(embedder, vectors, appLogger)
	qa := pipeline.NewQAPipeline(chatModel, appLogger)

	// 3. Optional chat transcript store.
	var history *chat.HistoryStore
	if cfg.Databases.MongoDB.Enabled {
		mongoClient, err := mongo.GetClient(&cfg.Databases.MongoDB)
		if err != nil {
			appLogger.Warn("MongoDB unavailable, chat history disabled: " + err.Error())
		} else {
			history = chat.NewHistoryStore(mongoClient.Database(cfg.Databases.MongoDB.Database))
			defer mongoClient.Disconnect(ctx)
		}
	}

	// 4. Object store for the country browser.
	minioClient, err := minio.GetClient(&cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}
	objects := objectstore.NewStore(minioClient, cfg.Databases.MinIO.Bucket)

	app := tui.NewApp(&tui.Deps{
		Auth:      tui.NewAuthClient(cfg.Frontend.AuthServiceURL),
		Retriever: retriever,
		QA:        qa,
		History:   history,
		Objects:   objects,
		TopK:      topK,
		Log:       appLogger,
	})

	if _, err := tea.NewProgram(app).Run(); err != nil {
		log.Fatalf("Chat UI exited with error: %v", err)
	}
}
