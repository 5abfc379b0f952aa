package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
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
	"github.com/mikeboe/workplace-chat/pkg/vectorstore"
	"github.com/mikeboe/workplace-chat/pkg/websearch"
	"github.com/spf13/cobra"
)

var (
	question  string
	sessionID string
)

func main() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	slog.SetDefault(slog.New(handler))

	if err := godotenv.Load(); err != nil {
		// It's okay if .env doesn't exist, as long as env vars are set
	}

	rootCmd := &cobra.Command{
		Use:   "workplace-chat",
		Short: "Ask the workplace assistant a question from the terminal",
		Long:  `workplace-chat runs one conversational turn: it condenses the question against the session history, retrieves from the document index, grades relevance, optionally blends in web search, and streams the answer to stdout.`,
		Run: func(cmd *cobra.Command, args []string) {
			if question == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Question: ")
				input, _ := reader.ReadString('\n')
				question = strings.TrimSpace(input)
				if question == "" {
					slog.Error("Question cannot be empty")
					os.Exit(1)
				}
			}

			if sessionID == "" {
				sessionID = uuid.New().String()
			}

			if err := runTurn(cmd.Context(), sessionID, question); err != nil {
				slog.Error("Turn failed", "error", err)
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&question, "question", "q", "", "The question to ask")
	rootCmd.Flags().StringVarP(&sessionID, "session", "s", "", "Session id to continue a conversation (new session when omitted)")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func runTurn(ctx context.Context, sessionID, question string) error {
	cfg := config.Load()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.InitChatSchema(ctx, cfg.ChatHistoryTable); err != nil {
		return fmt.Errorf("failed to initialize chat schema: %w", err)
	}

	historyStore, err := history.NewStore(db.Pool, cfg.ChatHistoryTable)
	if err != nil {
		return err
	}
	store, err := vectorstore.NewPGVectorStore(db.Pool, cfg.IndexName)
	if err != nil {
		return err
	}
	embedder, err := embeddings.NewGoogleEmbedder(ctx, cfg.EmbeddingModel, cfg.GoogleApiKey, cfg.EmbeddingDim)
	if err != nil {
		return err
	}
	model, err := llm.NewGoogleClient(ctx, cfg.GoogleApiKey, cfg.ChatModel)
	if err != nil {
		return err
	}

	svc := chat.NewService(
		historyStore,
		retriever.New(embedder, store, cfg.TopK),
		websearch.NewClient(cfg.SearchAPIURL, cfg.SearchAPIKey, cfg.SearchMaxResults),
		grader.New(model),
		model,
		prompts.NewRenderer(),
		slog.Default(),
	)

	var turnErr error
	for event, err := range svc.Ask(ctx, sessionID, question) {
		switch event.Type {
		case chat.EventSession:
			fmt.Fprintf(os.Stderr, "session: %s\n", event.Payload)
		case chat.EventStatus:
			fmt.Fprintf(os.Stderr, "[%s]\n", event.Payload)
		case chat.EventFragment:
			// Fragments carry the transport paragraph marker; stdout
			// wants plain newlines back.
			fmt.Print(strings.ReplaceAll(event.Payload, chat.ParagraphMark, "\n"))
		case chat.EventDone:
			fmt.Println()
		case chat.EventError:
			turnErr = err
		}
	}
	return turnErr
}
