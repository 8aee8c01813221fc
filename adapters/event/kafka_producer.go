package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/internal/config"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

const (
	TopicAuthEvents    = "auth.events"
	TopicProfileEvents = "profile.events"
)

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	AuthEventsWriter    messageWriter
	ProfileEventsWriter messageWriter
	logger              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	authWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicAuthEvents,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}

	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		AuthEventsWriter:    authWriter,
		ProfileEventsWriter: profileWriter,
		logger:              log,
	}, nil
}

func (c *KafkaProducerClient) PublishAuthEvent(ctx context.Context, payload AuthEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal auth event: %w", err)
	}
	return c.AuthEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

// PublishProfileEvent keys by profile id so events for one profile stay ordered.
func (c *KafkaProducerClient) PublishProfileEvent(ctx context.Context, payload ProfileEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}
	return c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.ProfileID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.AuthEventsWriter != nil {
		if err := c.AuthEventsWriter.Close(); err != nil {
			c.logger.Warn("Closing auth events writer failed", zap.Error(err))
		}
	}
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.logger.Warn("Closing profile events writer failed", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}
