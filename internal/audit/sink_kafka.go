package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// Producer is the subset of *kgo.Client used by KafkaSink.
type Producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// KafkaSink publishes events to a Kafka topic. Produce is asynchronous;
// delivery failures are logged from the promise.
type KafkaSink struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

func NewKafkaSink(producer Producer, topic string, logger *slog.Logger) *KafkaSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &KafkaSink{producer: producer, topic: topic, logger: logger}
}

func (s *KafkaSink) Write(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	record := &kgo.Record{
		Topic: s.topic,
		Key:   []byte(event.ID),
		Value: payload,
	}
	// The record outlives the request that produced it.
	s.producer.Produce(context.WithoutCancel(ctx), record, func(r *kgo.Record, err error) {
		if err != nil {
			s.logger.Warn("audit event delivery failed",
				"topic", r.Topic,
				"event_id", string(r.Key),
				"error", err,
			)
		}
	})
	return nil
}

// TopicCreator is the subset of *kadm.Client used by EnsureTopic.
type TopicCreator interface {
	CreateTopic(ctx context.Context, partitions int32, replicationFactor int16, configs map[string]*string, topic string) (kadm.CreateTopicResponse, error)
}

// EnsureTopic creates the audit topic with broker-default replication. An
// existing topic is not an error.
func EnsureTopic(ctx context.Context, admin TopicCreator, topic string) error {
	resp, err := admin.CreateTopic(ctx, 1, -1, nil, topic)
	if err != nil {
		return fmt.Errorf("create audit topic %s: %w", topic, err)
	}
	if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
		return fmt.Errorf("create audit topic %s: %w", topic, resp.Err)
	}
	return nil
}
