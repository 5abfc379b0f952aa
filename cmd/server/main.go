package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/config"
	"github.com/mikeboe/workplace-chat/pkg/database"
	"github.com/mikeboe/workplace-chat/pkg/embeddings"
	"github.com/mikeboe/workplace-chat/pkg/grader"
	"github.com/mikeboe/workplace-chat/pkg/history"
	"github.com/mikeboe/workplace-chat/pkg/llm"
	"github.com/mikeboe/workplace-chat/pkg/prompts"
	"github.com/mikeboe/workplace-chat/pkg/retriever"
	"github.com/mikeboe/workplace-chat/pkg/server"
	"github.com/mikeboe/workplace-chat/pkg/vectorstore"
	"github.com/mikeboe/workplace-chat/pkg/websearch"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg := config.Load()
	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureVectorExtension(ctx); err != nil {
		log.Fatalf("Failed to ensure vector extension: %v", err)
	}
	if err := db.EnsureIndexTable(ctx, cfg.IndexName, cfg.EmbeddingDim); err != nil {
		log.Fatalf("Failed to ensure index table: %v", err)
	}
	if err := db.InitChatSchema(ctx, cfg.ChatHistoryTable); err != nil {
		log.Fatalf("Failed to initialize chat schema: %v", err)
	}

	historyStore, err := history.NewStore(db.Pool, cfg.ChatHistoryTable)
	if err != nil {
		log.Fatalf("Failed to create history store: %v", err)
	}

	store, err := vectorstore.NewPGVectorStore(db.Pool, cfg.IndexName)
	if err != nil {
		log.Fatalf("Failed to create vector store: %v", err)
	}

	embedder, err := embeddings.NewGoogleEmbedder(ctx, cfg.EmbeddingModel, cfg.GoogleApiKey, cfg.EmbeddingDim)
	if err != nil {
		log.Fatalf("Failed to create embedder: %v", err)
	}

	model, err := llm.NewGoogleClient(ctx, cfg.GoogleApiKey, cfg.ChatModel)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	chatSvc := chat.NewService(
		historyStore,
		retriever.New(embedder, store, cfg.TopK),
		websearch.NewClient(cfg.SearchAPIURL, cfg.SearchAPIKey, cfg.SearchMaxResults),
		grader.New(model),
		model,
		prompts.NewRenderer(),
		slog.Default(),
	)

	handler := server.NewHandler(chatSvc, historyStore)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(r)

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
