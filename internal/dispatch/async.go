package dispatch

import (
	"context"

	"github.com/eldtechnologies/graphmsg/internal/message"
	"github.com/eldtechnologies/graphmsg/internal/metrics"
)

type result struct {
	outcome *Outcome
	err     error
}

// Pending is a delivery running in the background.
type Pending struct {
	done chan result
}

// DeliverAsync starts Deliver in a goroutine. If ctx is done before the
// delivery finishes, the result is discarded and Wait reports ctx.Err().
func (d *Dispatcher) DeliverAsync(ctx context.Context, msg message.Message) *Pending {
	p := &Pending{done: make(chan result, 1)}
	go func() {
		if err := ctx.Err(); err != nil {
			p.done <- result{err: err}
			return
		}
		out, err := d.Deliver(msg)
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.AsyncDiscarded.Inc()
			out, err = nil, ctxErr
		}
		p.done <- result{out, err}
	}()
	return p
}

// Wait blocks until the delivery finishes or ctx is done.
func (p *Pending) Wait(ctx context.Context) (*Outcome, error) {
	select {
	case r := <-p.done:
		return r.outcome, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
