package producer

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"user-directory/kafka/headers"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	Produce(ctx context.Context, topic string, provider model.Provider[[]kafka.Message]) error
	Close() error
}

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type WriterFactory func(topic string) Writer

func KafkaWriterFactory(brokers []string) WriterFactory {
	return func(topic string) Writer {
		return &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		}
	}
}

type kafkaProducer struct {
	l       logrus.FieldLogger
	factory WriterFactory
	lock    sync.Mutex
	writers map[string]Writer
}

func New(l logrus.FieldLogger, factory WriterFactory) Producer {
	return &kafkaProducer{
		l:       l,
		factory: factory,
		writers: make(map[string]Writer),
	}
}

func (p *kafkaProducer) writer(topic string) Writer {
	p.lock.Lock()
	defer p.lock.Unlock()
	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.factory(topic)
	p.writers[topic] = w
	return w
}

func (p *kafkaProducer) Produce(ctx context.Context, topic string, provider model.Provider[[]kafka.Message]) error {
	ms, err := provider()
	if err != nil {
		p.l.WithError(err).Errorf("Unable to build messages for topic [%s].", topic)
		return err
	}
	for i := range ms {
		headers.InjectSpan(ctx, &ms[i])
	}

	err = p.writer(topic).WriteMessages(ctx, ms...)
	if err != nil {
		p.l.WithError(err).Errorf("Unable to emit %d message(s) to topic [%s].", len(ms), topic)
		return err
	}
	p.l.Debugf("Emitted %d message(s) to topic [%s].", len(ms), topic)
	return nil
}

func (p *kafkaProducer) Close() error {
	p.lock.Lock()
	defer p.lock.Unlock()
	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			p.l.WithError(err).Errorf("Unable to close writer for topic [%s].", topic)
			errs = append(errs, err)
		}
	}
	p.writers = make(map[string]Writer)
	return errors.Join(errs...)
}

type noopProducer struct {
	l logrus.FieldLogger
}

// Noop discards every message. Used when no brokers are configured.
func Noop(l logrus.FieldLogger) Producer {
	return noopProducer{l: l}
}

func (p noopProducer) Produce(_ context.Context, topic string, provider model.Provider[[]kafka.Message]) error {
	ms, err := provider()
	if err != nil {
		return err
	}
	p.l.Debugf("Discarding %d message(s) for topic [%s].", len(ms), topic)
	return nil
}

func (p noopProducer) Close() error {
	return nil
}

func CreateKey(key int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(key))
	return b
}

func SingleMessageProvider(key []byte, value interface{}) model.Provider[[]kafka.Message] {
	return func() ([]kafka.Message, error) {
		v, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return []kafka.Message{{Key: key, Value: v}}, nil
	}
}
