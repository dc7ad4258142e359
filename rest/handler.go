package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const tracerName = "user-directory"

var validate = validator.New()

type SpanHandler func(ctx context.Context) http.HandlerFunc

// RetrieveSpan runs next inside a server span named name, continuing any trace carried by the request.
func RetrieveSpan(name string, next SpanHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := otel.GetTracerProvider().Tracer(tracerName).Start(ctx, name)
		defer span.End()
		next(ctx)(w, r.WithContext(ctx))
	}
}

type IdHandler func(id uint32) http.HandlerFunc

func ParseId(l logrus.FieldLogger, key string, next IdHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		value, err := strconv.ParseUint(mux.Vars(r)[key], 10, 32)
		if err != nil {
			l.WithError(err).Errorf("Unable to parse [%s] as uint32.", key)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		next(uint32(value))(w, r)
	}
}

type InputHandler[M any] func(input M) http.HandlerFunc

// ParseInput decodes the JSON request body into M. An undecodable body is a 400. Validation is left to
// next so each resource decides how a rejected input is reported.
func ParseInput[M any](l logrus.FieldLogger, next InputHandler[M]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input M
		defer r.Body.Close()

		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			l.WithError(err).Errorf("Unable to deserialize input.")
			WriteJSON(l)(w)(http.StatusBadRequest, ErrorBody("Malformed request body"))
			return
		}
		next(input)(w, r)
	}
}

// Validate checks input against its validate struct tags.
func Validate(input interface{}) error {
	return validate.Struct(input)
}

func ErrorBody(message string) map[string]string {
	return map[string]string{"Error": message}
}

func WriteJSON(l logrus.FieldLogger) func(w http.ResponseWriter) func(status int, body interface{}) {
	return func(w http.ResponseWriter) func(status int, body interface{}) {
		return func(status int, body interface{}) {
			res, err := json.Marshal(body)
			if err != nil {
				l.WithError(err).Errorf("Unable to marshal response.")
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			if _, err = w.Write(res); err != nil {
				l.WithError(err).Errorf("Unable to write response.")
			}
		}
	}
}

func WriteText(l logrus.FieldLogger) func(w http.ResponseWriter) func(status int, body string) {
	return func(w http.ResponseWriter) func(status int, body string) {
		return func(status int, body string) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(status)
			if _, err := w.Write([]byte(body)); err != nil {
				l.WithError(err).Errorf("Unable to write response.")
			}
		}
	}
}
