package producer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus/hooks/test"
)

type recordingWriter struct {
	topic    string
	messages []kafka.Message
	closed   bool
	fail     error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.fail != nil {
		return w.fail
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func recordingFactory(writers map[string]*recordingWriter) WriterFactory {
	return func(topic string) Writer {
		w := &recordingWriter{topic: topic}
		writers[topic] = w
		return w
	}
}

func TestProduceSingleMessage(t *testing.T) {
	l, _ := test.NewNullLogger()
	writers := make(map[string]*recordingWriter)
	p := New(l, recordingFactory(writers))

	value := map[string]string{"status": "CREATED"}
	err := p.Produce(context.Background(), "status", SingleMessageProvider(CreateKey(7), value))
	if err != nil {
		t.Fatalf("Unable to produce: %v", err)
	}

	w, ok := writers["status"]
	if !ok || len(w.messages) != 1 {
		t.Fatalf("Expected one message on topic [status]")
	}
	var got map[string]string
	if err = json.Unmarshal(w.messages[0].Value, &got); err != nil {
		t.Fatalf("Unable to decode message: %v", err)
	}
	if got["status"] != "CREATED" {
		t.Fatalf("Status mismatch. Expected %s, got %s", "CREATED", got["status"])
	}
	if string(w.messages[0].Key) != string(CreateKey(7)) {
		t.Fatalf("Key mismatch")
	}

	if err = p.Close(); err != nil {
		t.Fatalf("Unable to close: %v", err)
	}
	if !w.closed {
		t.Fatalf("Writer was not closed")
	}
}

func TestProduceReusesWriter(t *testing.T) {
	l, _ := test.NewNullLogger()
	writers := make(map[string]*recordingWriter)
	created := 0
	p := New(l, func(topic string) Writer {
		created++
		return recordingFactory(writers)(topic)
	})

	for i := 0; i < 3; i++ {
		_ = p.Produce(context.Background(), "status", SingleMessageProvider(CreateKey(i), i))
	}
	if created != 1 {
		t.Fatalf("Writer count mismatch. Expected %d, got %d", 1, created)
	}
	if len(writers["status"].messages) != 3 {
		t.Fatalf("Message count mismatch. Expected %d, got %d", 3, len(writers["status"].messages))
	}
}

func TestProduceWriteFailure(t *testing.T) {
	l, _ := test.NewNullLogger()
	failure := errors.New("broker down")
	p := New(l, func(topic string) Writer {
		return &recordingWriter{topic: topic, fail: failure}
	})

	err := p.Produce(context.Background(), "status", SingleMessageProvider(CreateKey(1), 1))
	if !errors.Is(err, failure) {
		t.Fatalf("Expected broker failure, got %v", err)
	}
}

func TestNoopProducer(t *testing.T) {
	l, _ := test.NewNullLogger()
	p := Noop(l)
	if err := p.Produce(context.Background(), "status", SingleMessageProvider(CreateKey(1), 1)); err != nil {
		t.Fatalf("Noop should not fail: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Noop close should not fail: %v", err)
	}
}
