// Command kafka_smoketest publishes a synthetic ledger event through the
// Kafka publisher and reads it back, to verify a local broker setup.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	infra_eventbus "github.com/amirasaad/bankaccount/infra/eventbus"
	"github.com/amirasaad/bankaccount/pkg/domain/account"
	"github.com/amirasaad/bankaccount/pkg/domain/events"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// RunSmokeTest round-trips one TransactionRecorded event through the topic.
func RunSmokeTest(ctx context.Context, logger *slog.Logger) error {
	brokers := strings.Split(envOr("KAFKA_BROKERS", "localhost:9092"), ",")
	topic := envOr("KAFKA_TOPIC", "bank-account.transactions") + ".smoketest"

	tx := account.NewDepositTransaction("ACC-SMOKE", decimal.NewFromInt(1), decimal.NewFromInt(1), time.Now().UTC())
	publisher, err := infra_eventbus.NewKafkaPublisher(brokers, topic, logger)
	if err != nil {
		return err
	}
	defer func() { _ = publisher.Close() }()
	if err := publisher.Publish(ctx, events.NewTransactionRecorded(tx)); err != nil {
		return err
	}
	logger.Info("produced", "topic", topic, "transactionId", tx.ID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     envOr("GROUP_ID", "bankaccount-smoketest"),
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer func() { _ = r.Close() }()

	readCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	for {
		msg, err := r.FetchMessage(readCtx)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		_ = r.CommitMessages(ctx, msg)

		var env infra_eventbus.Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.Warn("skipping undecodable message", "offset", msg.Offset, "error", err)
			continue
		}
		var evt events.TransactionRecordedEvent
		if err := json.Unmarshal(env.Payload, &evt); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
		if evt.TransactionID != tx.ID {
			continue // leftovers from an earlier run
		}
		if env.Type != events.EventTypeTransactionRecorded.String() || string(msg.Key) != "ACC-SMOKE" {
			return errors.New("unexpected envelope type or key")
		}
		logger.Info("consumed", "topic", topic, "type", env.Type, "offset", msg.Offset)
		return nil
	}
}

// main runs the smoke test and exits non-zero on failure.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := RunSmokeTest(ctx, logger); err != nil {
		logger.Error("kafka smoke test failed", "error", err)
		os.Exit(1)
	}
	logger.Info("kafka smoke test passed")
}
