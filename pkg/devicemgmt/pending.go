package devicemgmt

import (
	"context"
	"sync"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// Handler observes the settlement of one dispatched action. It receives
// exactly the outcome the Pending settles with.
type Handler func(resp *soap.Response, err error)

// Pending is the deferred result of one dispatched action. It settles
// exactly once, with either a parsed response or an error, and the
// outcome can be observed any number of times afterwards.
type Pending struct {
	action Action

	once sync.Once
	done chan struct{}

	handler Handler

	resp *soap.Response
	err  error
}

// newPending creates an unsettled Pending for action. handler may be nil.
func newPending(action Action, handler Handler) *Pending {
	return &Pending{
		action:  action,
		done:    make(chan struct{}),
		handler: handler,
	}
}

// Action returns the action this Pending tracks.
func (p *Pending) Action() Action {
	return p.action
}

// Done returns a channel that is closed when the call settles.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the call settles or ctx is done. Abandoning the
// wait does not abort the call; it settles regardless.
func (p *Pending) Wait(ctx context.Context) (*soap.Response, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-p.done:
		return p.resp, p.err
	}
}

// Outcome returns the settled result without blocking. Before
// settlement both return values are nil.
func (p *Pending) Outcome() (*soap.Response, error) {
	select {
	case <-p.done:
		return p.resp, p.err
	default:
		return nil, nil
	}
}

// settle records the outcome, releases waiters and invokes the handler.
// Only the first call has any effect. The handler runs at most once and
// only after the outcome is observable through Done/Wait/Outcome.
func (p *Pending) settle(resp *soap.Response, err error) {
	p.once.Do(func() {
		p.resp = resp
		p.err = err
		close(p.done)
		if p.handler != nil {
			p.handler(resp, err)
		}
	})
}
