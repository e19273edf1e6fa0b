package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Broker publishes community events. KafkaClient is the production implementation.
type Broker interface {
	WriteMessage(ctx context.Context, event string, message interface{}) error
}

type KafkaClient struct {
	writer *kafka.Writer
	reader *kafka.Reader
}

func NewKafkaClient(host string, port string, topic string, group string) (*KafkaClient, error) {
	address := fmt.Sprintf("%s:%s", host, port)

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(address),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{address},
		Topic:    topic,
		GroupID:  group,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &KafkaClient{
		writer: writer,
		reader: reader,
	}, nil
}

// WriteMessage publishes message as JSON, keyed by event name.
func (c *KafkaClient) WriteMessage(ctx context.Context, event string, message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return c.writer.WriteMessages(
		ctx,
		kafka.Message{
			Key:   []byte(event),
			Value: data,
		},
	)
}

// ReadMessage blocks until the next message and returns its event name and payload.
func (c *KafkaClient) ReadMessage(ctx context.Context) (string, []byte, error) {
	message, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return "", nil, err
	}
	return string(message.Key), message.Value, nil
}

func (c *KafkaClient) Close() error {
	err := c.writer.Close()
	if readerErr := c.reader.Close(); err == nil {
		err = readerErr
	}
	return err
}
