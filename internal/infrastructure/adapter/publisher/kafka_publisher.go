package publisher

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/event"
)

// Message headers attached to every ledger event
const (
	HeaderEventID   = "event_id"
	HeaderEventType = "event_type"
	HeaderUserID    = "user_id"
)

// KafkaConfig selects brokers and delivery guarantees
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	ClientID     string
	MaxRetries   int
	RequiredAcks string
}

// KafkaPublisher writes ledger events to a topic keyed by aggregate id,
// so all events of one deposit, withdrawal or round land on one partition
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   coreport.Logger
}

// NewKafkaPublisher connects a synchronous producer
func NewKafkaPublisher(cfg KafkaConfig, logger coreport.Logger) (*KafkaPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("kafka publisher requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka publisher requires a topic")
	}

	producer, err := sarama.NewSyncProducer(cfg.Brokers, newSaramaConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	logger.Info("Kafka publisher connected", map[string]any{
		"brokers": cfg.Brokers,
		"topic":   cfg.Topic,
	})
	return NewKafkaPublisherWithProducer(producer, cfg.Topic, logger), nil
}

// NewKafkaPublisherWithProducer wraps an existing producer
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger coreport.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func newSaramaConfig(cfg KafkaConfig) *sarama.Config {
	config := sarama.NewConfig()
	if cfg.ClientID != "" {
		config.ClientID = cfg.ClientID
	}
	config.Producer.RequiredAcks = parseAcks(cfg.RequiredAcks)
	config.Producer.Retry.Max = cfg.MaxRetries
	config.Producer.Return.Successes = true
	return config
}

func parseAcks(acks string) sarama.RequiredAcks {
	switch acks {
	case "none":
		return sarama.NoResponse
	case "local", "leader":
		return sarama.WaitForLocal
	default:
		return sarama.WaitForAll
	}
}

// Publish sends the event and waits for the broker acknowledgement
func (p *KafkaPublisher) Publish(ctx context.Context, evt *entity.LedgerEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(evt.AggregateID),
		Value: sarama.ByteEncoder(evt.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(HeaderEventID), Value: []byte(evt.ID)},
			{Key: []byte(HeaderEventType), Value: []byte(evt.Type)},
			{Key: []byte(HeaderUserID), Value: []byte(evt.UserID)},
		},
		Timestamp: evt.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s %s: %w", evt.Type, evt.ID, err)
	}

	p.logger.Debug("Ledger event published", map[string]any{
		"event_id":   evt.ID,
		"event_type": string(evt.Type),
		"partition":  partition,
		"offset":     offset,
	})
	return nil
}

// Close flushes and closes the producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

var _ event.Publisher = (*KafkaPublisher)(nil)
