package bus

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher mirrors engine events onto a Kafka topic. Events are
// JSON-encoded with the kind and component carried as message headers.
// Writes happen asynchronously so a slow or unreachable broker never blocks
// the engine.
type KafkaPublisher struct {
	writer    *kafka.Writer
	failCount atomic.Uint64
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// Publish implements Publisher. Encoding or write failures are counted and
// dropped; event mirroring is best-effort.
func (p *KafkaPublisher) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.recordFailure(event.Kind(), err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.Kind()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind())},
			{Key: "component", Value: []byte(event.Component())},
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.recordFailure(event.Kind(), err)
		}
	}()
}

// FailCount returns the total number of events that failed to publish.
func (p *KafkaPublisher) FailCount() uint64 {
	return p.failCount.Load()
}

// Close closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) recordFailure(kind string, err error) {
	count := p.failCount.Add(1)
	if count%10 == 1 { // Log every 10th failure to avoid spam
		log.Printf("[bus] WARNING: kafka publish failed (total failed: %d): kind=%s err=%v", count, kind, err)
	}
}
