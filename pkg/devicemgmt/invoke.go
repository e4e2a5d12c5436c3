package devicemgmt

import (
	"context"
	"fmt"
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/log"
)

// Invoke dispatches one action through the four-step machine: validate,
// build, dispatch, complete. The returned Pending settles when the
// transport answers; rejections that never reach the network
// (unconfigured session, unknown or unimplemented action, parameter
// validation) settle before Invoke returns.
//
// Invokes may run concurrently. There is no call queue and no session
// lock: a time synchronization racing another authenticated call leaves
// the second call on the old or the new skew depending on completion
// order, which the protocol tolerates.
func (s *Session) Invoke(ctx context.Context, action Action, params Params) *Pending {
	return s.InvokeWithHandler(ctx, action, params, nil)
}

// InvokeWithHandler is Invoke with a completion handler attached before
// dispatch. The handler observes the settlement exactly once, with the
// same outcome the Pending reports, and never before the Pending is
// settled. For rejections that settle locally the handler runs on the
// calling goroutine, before InvokeWithHandler returns.
func (s *Session) InvokeWithHandler(ctx context.Context, action Action, params Params, handler Handler) *Pending {
	pending := newPending(action, handler)

	// Step 1: validate. Nothing here touches the network.
	if !s.configured.Load() {
		s.reject(pending, ErrNotConfigured)
		return pending
	}
	if !action.Known() {
		s.reject(pending, &ValidationError{Param: "Action", Constraint: "not in the action catalog"})
		return pending
	}
	spec, ok := actionTable[action]
	if !ok {
		s.reject(pending, &NotImplementedError{Action: action})
		return pending
	}
	if spec.validate != nil {
		if err := spec.validate(params); err != nil {
			s.reject(pending, err)
			return pending
		}
	}

	// Step 2: build. The builder is pure; failure here means the
	// session holds unusable security material.
	envelope, err := s.buildEnvelope(spec.body(params))
	if err != nil {
		s.reject(pending, fmt.Errorf("failed to build envelope: %w", err))
		return pending
	}
	s.captureEnvelope(action, envelope)

	// Steps 3 and 4 run off the caller's goroutine; the Pending is
	// returned immediately and settles when the transport answers.
	go s.dispatch(ctx, pending, spec, envelope)

	return pending
}

// dispatch performs the blocking exchange and completes the call.
func (s *Session) dispatch(ctx context.Context, pending *Pending, spec actionSpec, envelope string) {
	action := pending.Action()
	started := s.clock()

	resp, err := s.dispatcher.Do(ctx, s.endpoint, action.URI(), envelope)
	captured := s.clock()
	elapsed := captured.Sub(started)

	if err != nil {
		// Transport errors pass through unchanged: no retry, no
		// translation, diagnostics intact.
		if s.logger != nil {
			s.logger.Debug("dispatch: transport failed",
				"action", action.String(),
				"error", err)
		}
		s.captureAction(action, log.OutcomeRejected, err.Error(), elapsed)
		pending.settle(nil, err)
		return
	}

	// Complete. Post-processing runs before the call settles; its
	// failure modes are soft and never fail the call.
	if spec.post != nil {
		spec.post(s, resp, captured)
	}

	if s.logger != nil {
		s.logger.Debug("dispatch: resolved",
			"action", action.String(),
			"elapsed", elapsed)
	}
	s.captureAction(action, log.OutcomeResolved, "", elapsed)
	pending.settle(resp, nil)
}

// reject settles pending locally, before any network activity.
func (s *Session) reject(pending *Pending, err error) {
	if s.logger != nil {
		s.logger.Debug("Invoke: rejected locally",
			"action", pending.Action().String(),
			"error", err)
	}
	s.captureAction(pending.Action(), log.OutcomeRejected, err.Error(), 0)
	pending.settle(nil, err)
}

// captureEnvelope records a built envelope in the capture log.
func (s *Session) captureEnvelope(action Action, envelope string) {
	if s.capture == nil {
		return
	}
	body, truncated := log.TruncateBody([]byte(envelope))
	s.captureEvent(log.Event{
		Direction: log.DirectionOut,
		Layer:     log.LayerEnvelope,
		Category:  log.CategoryMessage,
		Envelope: &log.EnvelopeEvent{
			Action:        action.String(),
			Size:          len(envelope),
			Body:          body,
			Truncated:     truncated,
			Authenticated: s.username != "" && s.password != "",
		},
	})
}

// captureAction records a settlement in the capture log. A zero
// elapsed means the call never reached the network.
func (s *Session) captureAction(action Action, outcome, reason string, elapsed time.Duration) {
	if s.capture == nil {
		return
	}
	event := log.ActionEvent{
		Action:  action.String(),
		Outcome: outcome,
		Reason:  reason,
	}
	if elapsed > 0 {
		event.Duration = &elapsed
	}
	s.captureEvent(log.Event{
		Direction: log.DirectionIn,
		Layer:     log.LayerAction,
		Category:  log.CategoryMessage,
		Action:    &event,
	})
}
