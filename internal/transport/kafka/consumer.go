// Package kafka feeds inbound chat messages from a consumer group into the
// pipeline and dead-letters messages whose failure is worth replaying.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/vacancy-normalizer/internal/config"
	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
	"github.com/heartmarshall/vacancy-normalizer/pkg/ctxutil"
)

// Dead-letter headers.
const (
	HeaderError         = "dlq-error"
	HeaderStage         = "dlq-stage"
	HeaderOriginalTopic = "dlq-original-topic"
	HeaderPartition     = "dlq-partition"
	HeaderOffset        = "dlq-offset"
	HeaderTimestamp     = "dlq-timestamp"
	HeaderTraceID       = "trace-id"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Stats() kafka.ReaderStats
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type processor interface {
	Process(ctx context.Context, msg domain.InboundMessage) (domain.Outcome, error)
}

// Consumer reads batches, processes each batch with bounded concurrency and
// commits the batch once every message in it reached a terminal state.
type Consumer struct {
	reader    messageReader
	dlq       messageWriter
	proc      processor
	channels  map[string]struct{}
	batchSize int
	batchWait time.Duration
	workers   int
	backoff   time.Duration
	log       *slog.Logger
}

// NewConsumer creates a Consumer on a kafka-go group reader and a
// dead-letter writer.
func NewConsumer(kcfg config.KafkaConfig, pcfg config.PipelineConfig, proc processor, logger *slog.Logger) *Consumer {
	log := logger.With("transport", "kafka")

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kcfg.Brokers,
		Topic:       kcfg.Topic,
		GroupID:     kcfg.GroupID,
		MinBytes:    kcfg.MinBytes,
		MaxBytes:    kcfg.MaxBytes,
		StartOffset: kafka.FirstOffset,
		Logger:      kafka.LoggerFunc(func(string, ...any) {}),
		ErrorLogger: errorLogger(log),
	})

	var dlq messageWriter
	if kcfg.DLQTopic != "" {
		dlq = &kafka.Writer{
			Addr:         kafka.TCP(kcfg.Brokers...),
			Topic:        kcfg.DLQTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
			ErrorLogger:  errorLogger(log),
		}
	}

	return newConsumer(reader, dlq, proc, kcfg, pcfg, log)
}

func newConsumer(
	reader messageReader,
	dlq messageWriter,
	proc processor,
	kcfg config.KafkaConfig,
	pcfg config.PipelineConfig,
	log *slog.Logger,
) *Consumer {
	channels := make(map[string]struct{}, len(pcfg.Channels))
	for _, ch := range pcfg.Channels {
		channels[ch] = struct{}{}
	}
	return &Consumer{
		reader:    reader,
		dlq:       dlq,
		proc:      proc,
		channels:  channels,
		batchSize: max(kcfg.BatchSize, 1),
		batchWait: kcfg.BatchWait,
		workers:   max(pcfg.Workers, 1),
		backoff:   time.Second,
		log:       log,
	}
}

func errorLogger(log *slog.Logger) kafka.LoggerFunc {
	return func(msg string, args ...any) {
		log.Error(fmt.Sprintf(msg, args...))
	}
}

// Run consumes until ctx is cancelled. A batch interrupted by shutdown is
// left uncommitted and is redelivered on the next start. Run returns an
// error only when a failed message could not be dead-lettered.
func (c *Consumer) Run(ctx context.Context) error {
	c.log.InfoContext(ctx, "consumer started",
		slog.Int("batch_size", c.batchSize),
		slog.Int("workers", c.workers),
	)

	for {
		batch, err := c.fetchBatch(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			c.log.ErrorContext(ctx, "fetch failed", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.backoff):
			}
			continue
		}

		if err := c.handleBatch(ctx, batch); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}

		if err := c.reader.CommitMessages(ctx, batch...); err != nil {
			c.log.ErrorContext(ctx, "commit failed",
				slog.Int("messages", len(batch)),
				slog.String("error", err.Error()),
			)
		}
	}
}

// fetchBatch blocks for the first message, then collects more until the
// batch is full or batchWait elapses.
func (c *Consumer) fetchBatch(ctx context.Context) ([]kafka.Message, error) {
	first, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}
	batch := append(make([]kafka.Message, 0, c.batchSize), first)
	if c.batchSize == 1 || c.batchWait <= 0 {
		return batch, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.batchWait)
	defer cancel()
	for len(batch) < c.batchSize {
		m, err := c.reader.FetchMessage(waitCtx)
		if err != nil {
			break
		}
		batch = append(batch, m)
	}
	return batch, nil
}

// handleBatch processes every message; a failed message never stops the
// others.
func (c *Consumer) handleBatch(ctx context.Context, batch []kafka.Message) error {
	var g errgroup.Group
	g.SetLimit(c.workers)
	for _, m := range batch {
		g.Go(func() error {
			return c.handle(ctx, m)
		})
	}
	return g.Wait()
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) error {
	var in domain.InboundMessage
	if err := json.Unmarshal(m.Value, &in); err != nil {
		c.log.WarnContext(ctx, "malformed message skipped",
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if len(c.channels) > 0 {
		if _, ok := c.channels[in.Source]; !ok {
			c.log.DebugContext(ctx, "channel ignored", slog.String("source", in.Source))
			return nil
		}
	}

	ctx, traceID := ctxutil.NewTraceID(ctx)

	_, err := c.proc.Process(ctx, in)
	if err == nil || !domain.IsRetryable(err) || ctx.Err() != nil {
		return nil
	}

	if c.dlq == nil {
		c.log.WarnContext(ctx, "no dead-letter topic, failed message dropped",
			slog.String("source", in.Source),
			slog.String("message_id", in.ExternalID),
		)
		return nil
	}

	if werr := c.dlq.WriteMessages(ctx, deadLetter(m, err, traceID.String())); werr != nil {
		return fmt.Errorf("dead-letter %s/%s: %w", in.Source, in.ExternalID, werr)
	}
	return nil
}

func deadLetter(m kafka.Message, cause error, traceID string) kafka.Message {
	stage := ""
	var se *domain.StageError
	if errors.As(cause, &se) {
		stage = string(se.Stage)
	}

	headers := append([]kafka.Header{}, m.Headers...)
	headers = append(headers,
		kafka.Header{Key: HeaderError, Value: []byte(cause.Error())},
		kafka.Header{Key: HeaderStage, Value: []byte(stage)},
		kafka.Header{Key: HeaderOriginalTopic, Value: []byte(m.Topic)},
		kafka.Header{Key: HeaderPartition, Value: []byte(strconv.Itoa(m.Partition))},
		kafka.Header{Key: HeaderOffset, Value: []byte(strconv.FormatInt(m.Offset, 10))},
		kafka.Header{Key: HeaderTimestamp, Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		kafka.Header{Key: HeaderTraceID, Value: []byte(traceID)},
	)

	return kafka.Message{
		Key:     m.Key,
		Value:   m.Value,
		Headers: headers,
		Time:    time.Now(),
	}
}

// Lag reports how far the group is behind the topic head.
func (c *Consumer) Lag() int64 {
	return c.reader.Stats().Lag
}

// Close releases the reader and the dead-letter writer.
func (c *Consumer) Close() error {
	err := c.reader.Close()
	if c.dlq != nil {
		err = errors.Join(err, c.dlq.Close())
	}
	return err
}
