// Package generation turns product rows into marketing copy, one model call
// per row, with every row running concurrently.
package generation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/sheet-copywriter/internal/llm"
	"github.com/jonathan/sheet-copywriter/internal/types"
)

// Options control one Generator.
type Options struct {
	// MaxConcurrency caps in-flight model calls. Zero means one goroutine per
	// row with no cap, which is bounded only by what the provider accepts.
	MaxConcurrency int
	Retry          RetryPolicy
	Temperature    float64
	MaxTokens      int
	// RequestTimeout bounds each attempt. Zero leaves it to the transport.
	RequestTimeout time.Duration
}

// DefaultOptions returns unbounded fan-out with the default retry policy.
func DefaultOptions() Options {
	return Options{
		Retry:       DefaultRetryPolicy(),
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}
}

// ClientFactory builds the client used for one batch.
type ClientFactory func(ctx context.Context, cfg llm.ProviderConfig) (llm.Client, error)

// Generator produces one GenerationResult per ProductRow.
type Generator struct {
	opts    Options
	prompt  PromptTemplate
	factory ClientFactory
	logger  *zap.Logger
}

// New creates a Generator. A nil factory uses llm.NewClient; a nil logger
// discards output.
func New(opts Options, factory ClientFactory, logger *zap.Logger) (*Generator, error) {
	prompt, err := LoadPromptTemplate()
	if err != nil {
		return nil, err
	}
	if factory == nil {
		factory = func(ctx context.Context, cfg llm.ProviderConfig) (llm.Client, error) {
			return llm.NewClient(ctx, cfg)
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}
	return &Generator{opts: opts, prompt: prompt, factory: factory, logger: logger}, nil
}

// Generate builds a client from cfg, runs the batch and closes the client.
// The only error is a client that cannot be built; row failures are
// recorded on the results.
func (g *Generator) Generate(ctx context.Context, cfg llm.ProviderConfig, rows []types.ProductRow) ([]types.GenerationResult, error) {
	client, err := g.factory(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	defer func() { _ = client.Close() }()

	return g.GenerateWith(ctx, client, rows), nil
}

// GenerateWith runs every row against client and waits for all of them.
// len(result) == len(rows) and result[i] belongs to rows[i].
func (g *Generator) GenerateWith(ctx context.Context, client llm.Client, rows []types.ProductRow) []types.GenerationResult {
	start := time.Now()
	results := make([]types.GenerationResult, len(rows))

	var eg errgroup.Group
	if g.opts.MaxConcurrency > 0 {
		eg.SetLimit(g.opts.MaxConcurrency)
	}
	for i, row := range rows {
		eg.Go(func() error {
			results[i] = g.generateRow(ctx, client, row)
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	g.logger.Info("batch generated",
		zap.String("model", client.Model()),
		zap.Int("rows", len(rows)),
		zap.Int("failed", failed),
		zap.Int("max_concurrency", g.opts.MaxConcurrency),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results
}

// Request returns the chat request sent for a row.
func (g *Generator) Request(row types.ProductRow) llm.ChatRequest {
	return llm.ChatRequest{
		Messages:    g.prompt.Messages(row),
		Temperature: g.opts.Temperature,
		MaxTokens:   g.opts.MaxTokens,
		JSONOutput:  true,
	}
}

// generateRow never fails: any error or panic yields the empty copy.
func (g *Generator) generateRow(ctx context.Context, client llm.Client, row types.ProductRow) (result types.GenerationResult) {
	log := g.logger.With(zap.Int("row", row.Row), zap.String("product", row.Name))
	result = types.GenerationResult{ProductRow: row, MarketingCopy: types.EmptyCopy()}

	defer func() {
		if p := recover(); p != nil {
			result = types.GenerationResult{ProductRow: row, MarketingCopy: types.EmptyCopy(), Err: fmt.Sprintf("panic: %v", p)}
			log.Error("row generation panicked", zap.Any("panic", p))
		}
	}()

	req := g.Request(row)
	var lastErr error
	attempts := 0
	text, ok := Retry(ctx, g.opts.Retry, func(ctx context.Context) (string, error) {
		attempts++
		if g.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.opts.RequestTimeout)
			defer cancel()
		}
		return client.Chat(ctx, req)
	}, func(attempt int, err error) {
		lastErr = err
		log.Warn("generation attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	})
	if !ok {
		if lastErr == nil {
			lastErr = ctx.Err()
		}
		result.Err = (&CallError{Row: row.Row, Attempts: attempts, Cause: lastErr}).Error()
		return result
	}

	mc, err := ParseCopy(text)
	if err != nil {
		log.Warn("unusable model output", zap.Error(err), zap.String("output", truncate(text, 200)))
		result.Err = err.Error()
		return result
	}

	result.MarketingCopy = mc
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
