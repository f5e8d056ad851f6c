// Package stream publishes generated record streams to Kafka for downstream
// consumers (warehouse loaders, live dashboards).
package stream

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"github.com/sellerlytics/sellerlytics/internal/logging"
	"github.com/sellerlytics/sellerlytics/internal/models"
)

const (
	TopicSellers = "sellers"
	TopicOrders  = "orders"
	TopicRatings = "ratings"
	TopicReturns = "returns"
)

type Producer struct {
	producer sarama.SyncProducer
}

func NewProducer(brokerList string) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokers := strings.Split(brokerList, ",")
	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logging.Info().Strs("brokers", brokers).Msg("kafka producer created")
	return &Producer{producer: producer}, nil
}

func (p *Producer) send(topic string, v interface{}) error {
	if p.producer == nil {
		return fmt.Errorf("kafka producer is closed")
	}
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	return err
}

// PublishSnapshot streams every record in the snapshot, one message per
// record, partitioned by topic.
func (p *Producer) PublishSnapshot(snap *models.Snapshot) error {
	for i := range snap.Sellers {
		if err := p.send(TopicSellers, &snap.Sellers[i]); err != nil {
			return fmt.Errorf("failed to publish seller: %w", err)
		}
	}
	for i := range snap.Orders {
		if err := p.send(TopicOrders, &snap.Orders[i]); err != nil {
			return fmt.Errorf("failed to publish order: %w", err)
		}
	}
	for i := range snap.Ratings {
		if err := p.send(TopicRatings, &snap.Ratings[i]); err != nil {
			return fmt.Errorf("failed to publish rating: %w", err)
		}
	}
	for i := range snap.Returns {
		if err := p.send(TopicReturns, &snap.Returns[i]); err != nil {
			return fmt.Errorf("failed to publish return: %w", err)
		}
	}
	return nil
}

func (p *Producer) Close() error {
	if p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
