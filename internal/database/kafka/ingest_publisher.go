package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"askmira/internal/models"

	"github.com/segmentio/kafka-go"
)

// IngestPublisher 封装了向 Kafka 发送文档摄取事件的逻辑。
type IngestPublisher struct {
	writer *kafka.Writer
}

// NewIngestPublisher 创建一个新的 IngestPublisher 实例。
func NewIngestPublisher(client *KafkaClient) *IngestPublisher {
	// 为摄取事件主题创建一个新的 writer 实例配置
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      client.Config.Brokers,
		Topic:        client.Config.Topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	})
	return &IngestPublisher{writer: writer}
}

// Publish 将 IngestEvent 序列化为 JSON 并发送到 Kafka。
// 消息以文档的对象键作为 key，保证同一文档的事件落在同一分区。
func (p *IngestPublisher) Publish(ctx context.Context, event *models.IngestEvent) error {
	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ingest event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Source),
		Value: jsonData,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close 关闭底层的 writer 连接。
func (p *IngestPublisher) Close() error {
	return p.writer.Close()
}
