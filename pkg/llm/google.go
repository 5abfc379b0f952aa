// Package llm wraps the langchaingo Google AI client behind the two calls the
// turn pipeline needs: a one-shot invocation and a fragment stream.
package llm

import (
	"context"
	"fmt"
	"iter"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

type Client struct {
	model llms.Model
}

func NewGoogleClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}
	return &Client{model: model}, nil
}

// Invoke makes a single synchronous completion call.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt)
	if err != nil {
		return "", fmt.Errorf("llm invocation failed: %w", err)
	}
	return out, nil
}

// Stream generates a completion and yields it fragment by fragment as the
// model produces it. The sequence is finite and forward-only; if the consumer
// stops pulling, generation is cancelled.
func (c *Client) Stream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		type item struct {
			chunk string
			err   error
		}
		ch := make(chan item)

		go func() {
			defer close(ch)
			_, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
				llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
					select {
					case ch <- item{chunk: string(chunk)}:
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				}),
			)
			if err != nil {
				select {
				case ch <- item{err: fmt.Errorf("llm stream failed: %w", err)}:
				case <-ctx.Done():
				}
			}
		}()

		for it := range ch {
			if it.err != nil {
				yield("", it.err)
				return
			}
			if !yield(it.chunk, nil) {
				return
			}
		}
	}
}
