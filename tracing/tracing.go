package tracing

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// InitTracer installs a global tracer provider for the service. When endpoint is empty spans are
// still recorded for context propagation, but nothing is exported.
func InitTracer(l logrus.FieldLogger) func(serviceName string, endpoint string) (*sdktrace.TracerProvider, error) {
	return func(serviceName string, endpoint string) (*sdktrace.TracerProvider, error) {
		res := resource.NewSchemaless(attribute.String("service.name", serviceName))

		opts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
		if endpoint != "" {
			exporter, err := otlptracegrpc.New(context.Background(),
				otlptracegrpc.WithEndpoint(endpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return nil, err
			}
			opts = append(opts, sdktrace.WithBatcher(exporter))
			l.Infof("Exporting traces to [%s].", endpoint)
		} else {
			l.Infof("No trace exporter configured.")
		}

		tp := sdktrace.NewTracerProvider(opts...)
		otel.SetTracerProvider(tp)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
		return tp, nil
	}
}

func Teardown(l logrus.FieldLogger) func(tp *sdktrace.TracerProvider) func() {
	return func(tp *sdktrace.TracerProvider) func() {
		return func() {
			if tp == nil {
				return
			}
			if err := tp.Shutdown(context.Background()); err != nil {
				l.WithError(err).Errorf("Unable to close tracer.")
			}
		}
	}
}
