// Package retriever is the index-side retrieval collaborator: it embeds the
// condensed question and similarity-searches the pgvector-backed document
// index.
package retriever

import (
	"context"
	"fmt"

	"github.com/mikeboe/workplace-chat/pkg/chat"
	"github.com/mikeboe/workplace-chat/pkg/embeddings"
	"github.com/mikeboe/workplace-chat/pkg/vectorstore"
)

type IndexRetriever struct {
	embedder *embeddings.GoogleEmbedder
	store    *vectorstore.PGVectorStore
	topK     int
}

func New(embedder *embeddings.GoogleEmbedder, store *vectorstore.PGVectorStore, topK int) *IndexRetriever {
	if topK <= 0 {
		topK = 5
	}
	return &IndexRetriever{
		embedder: embedder,
		store:    store,
		topK:     topK,
	}
}

// Retrieve returns the topK most similar index documents for the query.
func (r *IndexRetriever) Retrieve(ctx context.Context, query string) ([]chat.Document, error) {
	embedding, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	results, err := r.store.SimilaritySearch(ctx, embedding, r.topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search failed: %w", err)
	}

	docs := make([]chat.Document, 0, len(results))
	for _, res := range results {
		source := "index"
		if s, ok := res.Document.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		docs = append(docs, chat.Document{
			Content: res.Document.Content,
			Source:  source,
			Score:   res.Score,
		})
	}
	return docs, nil
}
