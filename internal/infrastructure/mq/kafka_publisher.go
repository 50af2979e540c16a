package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"caller_id_server/internal/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes spam events keyed by phone, so all reports against
// one number land on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher creates the writer. No connection is made until the first write.
func NewKafkaPublisher(conf *config.KafkaConfig) *KafkaPublisher {
	timeout := time.Duration(conf.Timeout) * time.Second
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(conf.HostPort),
			Topic:                  conf.SpamTopic,
			Balancer:               &kafka.Hash{},
			WriteTimeout:           timeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: false,
		},
		topic: conf.SpamTopic,
	}
}

// PublishSpamReported encodes event as JSON and writes it.
func (p *KafkaPublisher) PublishSpamReported(ctx context.Context, event SpamReportedEvent) error {
	if event.Type == "" {
		event.Type = EventSpamReported
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", event.Type, err)
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Phone),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("write to topic %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	if err := p.writer.Close(); err != nil {
		zap.L().Error("close kafka writer", zap.String("topic", p.topic), zap.Error(err))
		return err
	}
	return nil
}

// EnsureTopic creates the spam topic when it does not exist yet.
func EnsureTopic(conf *config.KafkaConfig) error {
	conn, err := kafka.Dial("tcp", conf.HostPort)
	if err != nil {
		return fmt.Errorf("dial kafka %s: %w", conf.HostPort, err)
	}
	defer conn.Close()

	partitions := conf.Partition
	if partitions <= 0 {
		partitions = 1
	}
	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             conf.SpamTopic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		return fmt.Errorf("create topic %s: %w", conf.SpamTopic, err)
	}
	return nil
}
