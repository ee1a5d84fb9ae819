package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/UnknownOlympus/athena/internal/lib/logger/sl"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/validation"
	"github.com/google/uuid"
)

// TokenField is the hidden input carrying the form instance token.
const TokenField = "_token"

var ErrInvalidTransition = errors.New("invalid form state transition")

// Definition binds an entity's fields to its record type.
type Definition[T any] struct {
	Entity   string
	ListPath string
	Fields   []Field
	Schema   *validation.Schema[T]
	Decode   func(d *Decoder) T
	Encode   func(rec T) map[string]string
}

// Instance is one rendering of a form.
type Instance[T any] struct {
	Token  string
	State  State
	Values map[string]string
	Errors validation.FieldErrors
	Err    error
	Record T
}

func (in *Instance[T]) moveTo(next State) error {
	if !in.State.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, in.State, next)
	}
	in.State = next
	return nil
}

// Value returns the current input value of a field.
func (in *Instance[T]) Value(name string) string {
	return in.Values[name]
}

// Submitter performs the backend call of a submission.
type Submitter[T any] func(ctx context.Context, rec T) (T, error)

// Controller runs submissions of one entity form.
type Controller[T any] struct {
	def      Definition[T]
	inflight *Inflight
	metrics  *metrics.Metrics
	log      *slog.Logger
}

func NewController[T any](def Definition[T], inflight *Inflight, m *metrics.Metrics, log *slog.Logger) *Controller[T] {
	return &Controller[T]{def: def, inflight: inflight, metrics: m, log: log}
}

func (c *Controller[T]) Definition() Definition[T] {
	return c.def
}

// New returns an editing instance pre-filled from initial under a fresh token.
func (c *Controller[T]) New(initial T) *Instance[T] {
	in := &Instance[T]{Token: uuid.NewString(), State: StateIdle, Record: initial}
	in.Values = c.def.Encode(initial)
	c.advance(context.Background(), c.log, in, StateEditing)
	return in
}

// advance walks in through path and stops at the first rejected step.
func (c *Controller[T]) advance(ctx context.Context, log *slog.Logger, in *Instance[T], path ...State) {
	for _, next := range path {
		if err := in.moveTo(next); err != nil {
			log.ErrorContext(ctx, "form state not advanced", "token", in.Token, sl.Err(err))
			return
		}
	}
}

// Submit validates values and, when they are accepted, calls submit exactly once.
// The returned instance is in StateSuccess, StateEditing (field errors, or a
// backend failure recorded in Err with the values kept) or StateSubmitting
// when the token already has a submission outstanding.
func (c *Controller[T]) Submit(
	ctx context.Context,
	operation string,
	values url.Values,
	submit Submitter[T],
) *Instance[T] {
	log := sl.Component(c.log, c.def.Entity, "Form.Submit").With(slog.String("operation", operation))

	in := &Instance[T]{
		Token:  values.Get(TokenField),
		State:  StateEditing,
		Values: c.rawValues(values),
	}
	if in.Token == "" {
		in.Token = uuid.NewString()
	}

	if err := c.inflight.Acquire(in.Token); err != nil {
		log.WarnContext(ctx, "duplicate submission rejected", "token", in.Token, sl.Err(err))
		c.metrics.ObserveSubmission(c.def.Entity, operation, metrics.OutcomeDuplicate)
		in.State = StateSubmitting
		in.Err = err
		return in
	}

	c.advance(ctx, log, in, StateValidating)

	dec := NewDecoder(values)
	rec := c.def.Decode(dec)
	rec, schemaErrs := c.def.Schema.Validate(ctx, rec)
	var fieldErrs validation.FieldErrors
	for field, tag := range dec.Errors() {
		fieldErrs = fieldErrs.Merge(validation.FieldErrors{field: c.def.Schema.Message(ctx, field, tag, "")})
	}
	// a value that failed to decode keeps its decode message
	fieldErrs = fieldErrs.Merge(schemaErrs)
	in.Record = rec

	if len(fieldErrs) > 0 {
		c.inflight.Release(in.Token)
		in.Errors = fieldErrs
		c.advance(ctx, log, in, StateEditing)
		log.DebugContext(ctx, "form rejected by validation", "fields", len(fieldErrs))
		c.metrics.ObserveSubmission(c.def.Entity, operation, metrics.OutcomeInvalid)
		return in
	}

	c.advance(ctx, log, in, StateSubmitting)
	if c.metrics != nil {
		c.metrics.InflightForms.Inc()
		defer c.metrics.InflightForms.Dec()
	}

	saved, err := submit(ctx, rec)
	if err != nil {
		c.inflight.Release(in.Token)
		in.Err = err
		c.advance(ctx, log, in, StateError, StateEditing)
		log.ErrorContext(ctx, "form submission failed", sl.Err(err))
		c.metrics.ObserveSubmission(c.def.Entity, operation, metrics.OutcomeFailed)
		return in
	}

	c.inflight.Complete(in.Token)
	in.Record = saved
	in.Values = nil
	c.advance(ctx, log, in, StateSuccess)
	c.metrics.ObserveSubmission(c.def.Entity, operation, metrics.OutcomeSuccess)

	return in
}

// rawValues keeps what the user typed for every declared field.
func (c *Controller[T]) rawValues(values url.Values) map[string]string {
	out := make(map[string]string, len(c.def.Fields))
	for _, f := range c.def.Fields {
		out[f.Name] = values.Get(f.Name)
		if f.Kind == KindAsyncSelect {
			out[LabelKey(f.Name)] = values.Get(LabelKey(f.Name))
		}
	}
	return out
}
