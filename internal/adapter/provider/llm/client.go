// Package llm is the extraction service adapter: it asks Claude to classify
// messages and to extract the labeled-line attribute block.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
	"github.com/heartmarshall/vacancy-normalizer/internal/extraction"
)

// classifyMaxTokens bounds the one-character classifier reply.
const classifyMaxTokens = 8

var errEmptyReply = errors.New("empty reply")

// Client calls the Messages API under a shared rate limit.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NewClient creates a Client from cfg. Extra options are appended after the
// config-derived ones, so tests can point it at a local server.
func NewClient(cfg config.ExtractorConfig, logger *slog.Logger, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Timeout > 0 {
		base = append(base, option.WithRequestTimeout(cfg.Timeout))
	}

	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		api:       anthropic.NewClient(append(base, opts...)...),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
		limiter:   rate.NewLimiter(limit, burst),
		log:       logger.With("adapter", "llm"),
	}
}

// Classify reports whether text is an IT vacancy.
func (c *Client) Classify(ctx context.Context, text string) (bool, error) {
	reply, err := c.complete(ctx, extraction.ClassifyPrompt(text), classifyMaxTokens)
	if err != nil {
		return false, fmt.Errorf("llm classify: %w", err)
	}
	return extraction.ParseClassification(reply), nil
}

// Extract returns the parsed attribute record of text. Only the attribute
// fields are filled.
func (c *Client) Extract(ctx context.Context, text string) (domain.RawAttributeRecord, error) {
	reply, err := c.complete(ctx, extraction.ExtractPrompt(text), c.maxTokens)
	if err != nil {
		return domain.RawAttributeRecord{}, fmt.Errorf("llm extract: %w", err)
	}
	return extraction.Parse(reply), nil
}

func (c *Client) complete(ctx context.Context, prompt string, maxTokens int64) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errEmptyReply
	}

	c.log.DebugContext(ctx, "llm reply",
		slog.String("model", string(c.model)),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return sb.String(), nil
}
