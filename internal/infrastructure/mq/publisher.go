// Package mq publishes domain events to a message broker.
// The spam service announces every new report; what consumes the topic is
// outside this service.
package mq

import (
	"context"
	"fmt"
	"time"

	"caller_id_server/internal/config"
)

// EventSpamReported is the event type carried in every spam report message.
const EventSpamReported = "spam.reported"

// SpamReportedEvent is the message body published after a report is stored.
type SpamReportedEvent struct {
	Type         string    `json:"type"`
	ReportID     uint      `json:"reportId"`
	Phone        string    `json:"phone"`
	ReportedByID uint      `json:"reportedById"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SpamEventPublisher sends spam report events.
type SpamEventPublisher interface {
	PublishSpamReported(ctx context.Context, event SpamReportedEvent) error
	Close() error
}

// NewPublisher picks the implementation from conf.Mode: "none" (or empty)
// discards events, "kafka" writes them to conf.SpamTopic.
func NewPublisher(conf *config.KafkaConfig) (SpamEventPublisher, error) {
	switch conf.Mode {
	case "", "none":
		return NoopPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(conf), nil
	default:
		return nil, fmt.Errorf("unsupported kafka mode %q", conf.Mode)
	}
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) PublishSpamReported(context.Context, SpamReportedEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
