package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-directory/kafka/producer"

	"github.com/Chronicle20/atlas-model/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "user-directory"

// UpdatePatch carries the only fields an update may change.
type UpdatePatch struct {
	Username string
	Birthday *time.Time
}

type ProcessorOption func(p *Processor)

func WithEventProducer(pr producer.Producer, topic string) ProcessorOption {
	return func(p *Processor) {
		p.producer = pr
		p.statusTopic = topic
	}
}

func WithClock(clock func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.clock = clock
	}
}

func WithTokenGenerator(tokens func() string) ProcessorOption {
	return func(p *Processor) {
		p.tokens = tokens
	}
}

// Processor implements the account lifecycle rules on top of a Store. It holds no mutable state of its
// own; each operation runs in a single store transaction.
type Processor struct {
	l           logrus.FieldLogger
	ctx         context.Context
	s           Store
	producer    producer.Producer
	statusTopic string
	clock       func() time.Time
	tokens      func() string
}

func NewProcessor(l logrus.FieldLogger, ctx context.Context, s Store, opts ...ProcessorOption) *Processor {
	p := &Processor{
		l:           l,
		ctx:         ctx,
		s:           s,
		producer:    producer.Noop(l),
		statusTopic: EnvEventTopicAccountStatus,
		clock:       time.Now,
		tokens:      uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Processor) span(name string) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(tracerName).Start(p.ctx, name)
}

func (p *Processor) List() ([]Model, error) {
	ctx, span := p.span("account.list")
	defer span.End()

	ms, err := p.s.WithContext(ctx).ListAll()
	if err != nil {
		p.l.WithError(err).Errorf("Unable to retrieve accounts.")
		return nil, err
	}
	return ms, nil
}

// GetById returns ErrNotFound when no account has the given id.
func (p *Processor) GetById(id uint32) (Model, error) {
	ctx, span := p.span("account.get_by_id")
	defer span.End()
	span.SetAttributes(attribute.Int64("account.id", int64(id)))

	m, err := p.s.WithContext(ctx).FindById(id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.l.WithError(err).Errorf("Unable to retrieve account by id [%d].", id)
		}
		return Model{}, err
	}
	return m, nil
}

// Authenticate reports whether username exists and its stored password matches exactly. An unknown
// username and a wrong password are indistinguishable. A non-nil error means the lookup itself failed.
func (p *Processor) Authenticate(username string, password string) (bool, error) {
	ctx, span := p.span("account.authenticate")
	defer span.End()

	m, err := p.s.WithContext(ctx).FindByUsername(username)
	if errors.Is(err, ErrNotFound) {
		p.l.Debugf("Authentication failed for [%s].", username)
		return false, nil
	}
	if err != nil {
		p.l.WithError(err).Errorf("Unable to retrieve account [%s] for authentication.", username)
		return false, err
	}
	if m.Password() != password {
		p.l.Debugf("Authentication failed for [%s].", username)
		return false, nil
	}
	p.l.Debugf("Authentication successful for [%s].", username)
	return true, nil
}

// Create registers a new OFFLINE account. Only username and password come from the caller; the token,
// creation date and status are always assigned here. Returns ErrUsernameTaken if the name is in use and
// ErrMissingCredentials if either credential is empty.
func (p *Processor) Create(username string, password string) (Model, error) {
	ctx, span := p.span("account.create")
	defer span.End()

	if username == "" || password == "" {
		p.l.Infof("Unable to create account. Username and password are required.")
		return Model{}, ErrMissingCredentials
	}

	p.l.Debugf("Attempting to create account [%s].", username)
	var m Model
	err := p.s.WithContext(ctx).Transaction(func(tx Store) error {
		_, err := tx.FindByUsername(username)
		if err == nil {
			return ErrUsernameTaken
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		c := NewBuilder().
			SetUsername(username).
			SetPassword(password).
			SetToken(p.tokens()).
			SetCreationDate(p.clock()).
			SetStatus(StatusOffline).
			Build()
		m, err = tx.Insert(c)
		return err
	})
	if errors.Is(err, ErrUsernameTaken) {
		p.l.Infof("Unable to create account [%s]. Username already taken.", username)
		return Model{}, err
	}
	if err != nil {
		p.l.WithError(err).Errorf("Unable to create account [%s].", username)
		return Model{}, fmt.Errorf("create account %s: %w", username, err)
	}

	p.l.Debugf("Created account [%d] for [%s].", m.Id(), username)
	p.emit(ctx, createdEventProvider()(m.Id(), m.Username()))
	return m, nil
}

// Update merges patch onto the account with the given id. Username is overwritten without a uniqueness
// check, but never to an empty name; password, token, status and creation date are carried over from the
// stored record.
func (p *Processor) Update(id uint32, patch UpdatePatch) (Model, error) {
	ctx, span := p.span("account.update")
	defer span.End()
	span.SetAttributes(attribute.Int64("account.id", int64(id)))

	var m Model
	err := p.s.WithContext(ctx).Transaction(func(tx Store) error {
		e, err := tx.FindById(id)
		if err != nil {
			return err
		}
		if patch.Username == "" {
			return ErrMissingUsername
		}

		merged := Clone(e).
			SetUsername(patch.Username).
			SetBirthday(patch.Birthday).
			Build()

		ok, err := tx.ExistsById(id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		m, err = tx.Update(merged)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		p.l.Debugf("Unable to update account [%d]. Not found.", id)
		return Model{}, err
	}
	if err != nil {
		p.l.WithError(err).Errorf("Unable to update account [%d].", id)
		return Model{}, fmt.Errorf("update account %d: %w", id, err)
	}

	p.l.Debugf("Updated account [%d].", id)
	p.emit(ctx, updatedEventProvider()(m.Id(), m.Username()))
	return m, nil
}

func (p *Processor) emit(ctx context.Context, provider model.Provider[[]kafka.Message]) {
	if err := p.producer.Produce(ctx, p.statusTopic, provider); err != nil {
		p.l.WithError(err).Warnf("Unable to emit account status event.")
	}
}
