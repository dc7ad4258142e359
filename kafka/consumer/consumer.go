package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"user-directory/kafka/headers"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// fetchRetryDelay is the pause after a failed fetch before the reader is polled again.
var fetchRetryDelay = time.Second

type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Config struct {
	name    string
	topic   string
	groupId string
	brokers []string
}

func NewConfig(brokers []string) func(name string) func(topic string) func(groupId string) Config {
	return func(name string) func(topic string) func(groupId string) Config {
		return func(topic string) func(groupId string) Config {
			return func(groupId string) Config {
				return Config{name: name, topic: topic, groupId: groupId, brokers: brokers}
			}
		}
	}
}

func (c Config) Name() string {
	return c.name
}

func (c Config) Topic() string {
	return c.topic
}

func KafkaReader(c Config) Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: c.brokers,
		GroupID: c.groupId,
		Topic:   c.topic,
	})
}

// Handler processes a single message. A message is committed once its handler returns, regardless of
// the outcome, so a poisoned message cannot stall the partition.
type Handler func(l logrus.FieldLogger, ctx context.Context, m kafka.Message)

// AdaptHandler decodes the JSON message body into E before delegating.
func AdaptHandler[E any](h func(l logrus.FieldLogger, ctx context.Context, e E)) Handler {
	return func(l logrus.FieldLogger, ctx context.Context, m kafka.Message) {
		var e E
		if err := json.Unmarshal(m.Value, &e); err != nil {
			l.WithError(err).Errorf("Unable to decode message at offset [%d].", m.Offset)
			return
		}
		h(l, ctx, e)
	}
}

// Start consumes from r on a new goroutine registered with wg until ctx is cancelled.
func Start(l logrus.FieldLogger, ctx context.Context, wg *sync.WaitGroup) func(c Config, r Reader, h Handler) {
	return func(c Config, r Reader, h Handler) {
		cl := l.WithField("consumer", c.name).WithField("topic", c.topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if err := r.Close(); err != nil {
					cl.WithError(err).Errorf("Unable to close reader.")
				}
			}()

			cl.Infof("Starting consumer.")
			for {
				m, err := r.FetchMessage(ctx)
				if err != nil {
					if errors.Is(err, context.Canceled) || ctx.Err() != nil {
						cl.Infof("Stopping consumer.")
						return
					}
					cl.WithError(err).Errorf("Unable to fetch message. Retrying in %s.", fetchRetryDelay)
					select {
					case <-ctx.Done():
						cl.Infof("Stopping consumer.")
						return
					case <-time.After(fetchRetryDelay):
					}
					continue
				}

				h(cl, headers.ExtractSpan(ctx, &m), m)

				if err = r.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
					cl.WithError(err).Errorf("Unable to commit message at offset [%d].", m.Offset)
				}
			}
		}()
	}
}
