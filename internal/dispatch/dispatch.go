// Package dispatch delivers messages between registered identities.
package dispatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/eldtechnologies/graphmsg/internal/graph"
	"github.com/eldtechnologies/graphmsg/internal/message"
	"github.com/eldtechnologies/graphmsg/internal/metrics"
	"github.com/eldtechnologies/graphmsg/internal/transform"
)

// ErrNotConnected is returned when RequireEdge is set and the sender and
// receiver share no edge.
var ErrNotConnected = errors.New("sender and receiver are not connected")

// Outcome describes one delivered message.
type Outcome struct {
	ID           ulid.ULID    `json:"id"`
	Kind         message.Kind `json:"kind"`
	SenderName   string       `json:"sender"`
	ReceiverName string       `json:"receiver"`
	Result       string       `json:"result"`
}

func (o *Outcome) String() string {
	return fmt.Sprintf("Received Message from %s to %s: %s", o.SenderName, o.ReceiverName, o.Result)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// RequireEdge rejects delivery between identities that are not connected.
func RequireEdge(require bool) Option {
	return func(d *Dispatcher) {
		d.requireEdge = require
	}
}

// WithLogger sets the delivery logger. The default discards output.
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.log = logger
	}
}

// Dispatcher resolves the parties of a message in its Registry and applies
// the message transform. It holds no state of its own besides options.
type Dispatcher struct {
	registry    *graph.Registry
	log         zerolog.Logger
	requireEdge bool
}

// New creates a Dispatcher over registry.
func New(registry *graph.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver validates msg, resolves both parties and runs the transform.
// Errors are returned unchanged so callers can match them with errors.Is.
func (d *Dispatcher) Deliver(msg message.Message) (*Outcome, error) {
	if err := message.Validate(msg); err != nil {
		kind := "unknown"
		if msg != nil {
			kind = string(msg.Kind())
		}
		d.record(kind, err)
		d.log.Warn().Err(err).Str("error_kind", ErrorKind(err)).Msg("delivery rejected")
		return nil, err
	}

	kind := msg.Kind()
	h := msg.Envelope()
	log := d.log.With().
		Str("kind", string(kind)).
		Str("sender", h.SenderID).
		Str("receiver", h.ReceiverID).
		Str("metadata", h.Metadata).
		Logger()

	sender, err := d.registry.Lookup(h.SenderID)
	if err != nil {
		return nil, d.fail(log, kind, fmt.Errorf("sender: %w", err))
	}
	receiver, err := d.registry.Lookup(h.ReceiverID)
	if err != nil {
		return nil, d.fail(log, kind, fmt.Errorf("receiver: %w", err))
	}
	if d.requireEdge && !d.registry.Connected(sender.ID, receiver.ID) {
		return nil, d.fail(log, kind, ErrNotConnected)
	}

	start := time.Now()
	result, err := message.Process(msg, sender, receiver)
	metrics.TransformDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, d.fail(log, kind, err)
	}

	out := &Outcome{
		ID:           ulid.Make(),
		Kind:         kind,
		SenderName:   sender.DisplayName,
		ReceiverName: receiver.DisplayName,
		Result:       result,
	}
	d.record(string(kind), nil)
	log.Debug().Str("delivery_id", out.ID.String()).Msg("message delivered")
	return out, nil
}

func (d *Dispatcher) fail(log zerolog.Logger, kind message.Kind, err error) error {
	log.Warn().Err(err).Str("error_kind", ErrorKind(err)).Msg("delivery failed")
	d.record(string(kind), err)
	return err
}

func (d *Dispatcher) record(kind string, err error) {
	result := "ok"
	if err != nil {
		result = ErrorKind(err)
	}
	metrics.DeliveriesTotal.WithLabelValues(kind, result).Inc()
}

// ErrorKind names the failure class of err for logs and metric labels.
func ErrorKind(err error) string {
	if k := transform.Kind(err); k != "" {
		return k
	}
	switch {
	case errors.Is(err, graph.ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrNotConnected):
		return "NotConnected"
	case errors.Is(err, message.ErrInvalidMessage):
		return "InvalidMessage"
	case errors.Is(err, message.ErrUnknownKind):
		return "UnknownKind"
	default:
		return "Internal"
	}
}
