package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"sync"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/adapters/mailer"
	notifyUC "github.com/khoahotran/portfolio-hub/internal/application/usecase/notify"
	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

func main() {
	fmt.Println("Starting Portfolio Hub Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("FATAL: cannot init logger: %v", err)
	}
	defer appLogger.Sync()

	// Worker Use Case
	processor := notifyUC.NewEventProcessor(mailer.NewLogMailer(appLogger), cfg.Auth.ConfirmURL, appLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		consume(ctx, cfg, event.TopicAuthEvents, appLogger, func(ctx context.Context, msg kafka.Message) error {
			var payload event.AuthEventPayload
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return errSkip(err)
			}
			return processor.HandleAuthEvent(ctx, payload)
		})
	}()
	go func() {
		defer wg.Done()
		consume(ctx, cfg, event.TopicProfileEvents, appLogger, func(ctx context.Context, msg kafka.Message) error {
			var payload event.ProfileEventPayload
			if err := json.Unmarshal(msg.Value, &payload); err != nil {
				return errSkip(err)
			}
			return processor.HandleProfileEvent(ctx, payload)
		})
	}()

	wg.Wait()
	appLogger.Info("Worker stopped.")
}

type skipError struct{ err error }

func (e skipError) Error() string { return e.err.Error() }

// errSkip marks a message that can never be processed. It is committed so it
// doesn't block the partition.
func errSkip(err error) error { return skipError{err: err} }

func consume(ctx context.Context, cfg config.Config, topic string, l logger.Logger, handle func(context.Context, kafka.Message) error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    topic,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	l.Info("Worker listening on topic", zap.String("topic", topic))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			l.Error("Failed to read message from Kafka", err, zap.String("topic", topic))
			continue
		}

		l.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		if err := handle(ctx, msg); err != nil {
			var skip skipError
			if !errors.As(err, &skip) {
				l.Error("Failed to process event", err, zap.String("topic", topic), zap.String("key", string(msg.Key)))
				continue
			}
			l.Warn("Skipping malformed event", zap.String("topic", topic), zap.Error(err))
		}

		if err := reader.CommitMessages(context.Background(), msg); err != nil {
			l.Error("Failed to commit message", err, zap.String("topic", topic))
		}
	}
}
