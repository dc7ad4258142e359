package headers

import (
	"context"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Carrier adapts kafka message headers to an OpenTelemetry TextMapCarrier.
type Carrier struct {
	headers *[]kafka.Header
}

func NewCarrier(headers *[]kafka.Header) Carrier {
	return Carrier{headers: headers}
}

func (c Carrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c Carrier) Set(key string, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c Carrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

var _ propagation.TextMapCarrier = Carrier{}

func InjectSpan(ctx context.Context, m *kafka.Message) {
	otel.GetTextMapPropagator().Inject(ctx, NewCarrier(&m.Headers))
}

func ExtractSpan(ctx context.Context, m *kafka.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(ctx, NewCarrier(&m.Headers))
}
