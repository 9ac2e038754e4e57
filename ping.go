// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"
)

// DefaultPingTimeout is the overall time budget of a ping session when
// [StatusPingFunc.Timeout] is not set.
const DefaultPingTimeout = 5 * time.Second

// ErrPingTimeout indicates that a ping session exhausted its overall
// time budget before the server produced a complete status response.
var ErrPingTimeout = errors.New("mcwire: ping timeout")

// NewStatusPingFunc returns a new [*StatusPingFunc] composed from the
// default primitives.
//
// The cfg argument contains the common configuration for mcwire operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewStatusPingFunc(cfg *Config, logger SLogger) *StatusPingFunc {
	return &StatusPingFunc{
		CancelWatch:   NewCancelWatchFunc(),
		Connect:       NewConnectFunc(cfg, logger),
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		Observe:       NewObserveConnFunc(cfg, logger),
		Resolve:       NewResolveTargetFunc(cfg, logger),
		StatusConn:    NewStatusConnFunc(cfg, logger),
		TimeNow:       cfg.TimeNow,
		Timeout:       DefaultPingTimeout,
	}
}

// StatusPingFunc performs a complete ping session against a [Target]:
// SRV indirection, TCP connect, the status exchange, and the teardown.
//
// A session has exactly one outcome. Success, timeout, transport error,
// and context cancellation race for a [ResolveOnce] gate; whichever
// resolves first determines the result and every later finisher is
// discarded. When timeout or cancellation wins, the session socket is
// closed so the in-flight exchange fails promptly and its goroutine
// exits instead of leaking.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type StatusPingFunc struct {
	// CancelWatch closes the session socket on context cancellation.
	//
	// Set by [NewStatusPingFunc] to a default [*CancelWatchFunc].
	CancelWatch *CancelWatchFunc

	// Connect dials the connect side of the target.
	//
	// Set by [NewStatusPingFunc] to a default [*ConnectFunc].
	Connect *ConnectFunc

	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewStatusPingFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewStatusPingFunc] to the user-provided logger.
	Logger SLogger

	// Observe logs I/O events on the session socket.
	//
	// Set by [NewStatusPingFunc] to a default [*ObserveConnFunc].
	Observe *ObserveConnFunc

	// Resolve applies SRV indirection to the target.
	//
	// Set by [NewStatusPingFunc] to a default [*ResolveTargetFunc].
	Resolve *ResolveTargetFunc

	// StatusConn wraps the session socket for the status exchange.
	//
	// Set by [NewStatusPingFunc] to a default [*StatusConnFunc].
	StatusConn *StatusConnFunc

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewStatusPingFunc] from [Config.TimeNow].
	TimeNow func() time.Time

	// Timeout is the overall time budget of a session. Zero or
	// negative means [DefaultPingTimeout].
	//
	// Set by [NewStatusPingFunc] to [DefaultPingTimeout].
	Timeout time.Duration
}

var _ Func[Target, *ServerStatusResponse] = &StatusPingFunc{}

// Call invokes the [*StatusPingFunc] to ping the given [Target].
//
// Returns either a valid [*ServerStatusResponse] or an error, never
// both. The error is [ErrPingTimeout] when the time budget won the
// race, the context error when cancellation won, and otherwise the
// first transport or protocol failure of the session.
func (op *StatusPingFunc) Call(ctx context.Context, target Target) (*ServerStatusResponse, error) {
	timeout := op.Timeout
	if timeout <= 0 {
		timeout = DefaultPingTimeout
	}
	t0 := op.TimeNow()
	spanID := NewSpanID()
	op.logPingStart(spanID, target, timeout, t0)

	gate := NewResolveOnce[*ServerStatusResponse]()
	sessionCtx, cancelSession := context.WithCancel(ctx)
	defer cancelSession()

	timer := time.AfterFunc(timeout, func() {
		gate.Resolve(nil, ErrPingTimeout)
	})
	defer timer.Stop()

	stopWatch := context.AfterFunc(ctx, func() {
		gate.Resolve(nil, ctx.Err())
	})
	defer stopWatch()

	go func() {
		resp, err := op.session(sessionCtx, target)
		gate.Resolve(resp, err)
	}()

	resp, err := gate.Wait()

	// Tear down the session socket so the session goroutine cannot
	// linger in a blocked read when timeout or cancellation won.
	cancelSession()

	op.logPingDone(spanID, target, timeout, t0, err)
	return resp, err
}

// session runs the sequential part of a ping and returns its outcome.
// Cancelling ctx closes the session socket through [CancelWatchFunc],
// which aborts any blocked I/O.
func (op *StatusPingFunc) session(ctx context.Context, target Target) (*ServerStatusResponse, error) {
	pipeline := Compose5[Target, Target, net.Conn, net.Conn, net.Conn, *StatusConn](
		op.Resolve,
		op.Connect,
		op.CancelWatch,
		op.Observe,
		op.StatusConn,
	)
	sc, err := pipeline.Call(ctx, target)
	if err != nil {
		return nil, err
	}
	defer sc.Close()
	return sc.Query(ctx, target)
}

// Ping is a convenience wrapper over [StatusPingFunc.Call] for callers
// that only distinguish reachable from unreachable: any failure,
// including timeout and cancellation, yields a nil response.
func (op *StatusPingFunc) Ping(ctx context.Context, target Target) *ServerStatusResponse {
	resp, err := op.Call(ctx, target)
	if err != nil {
		return nil
	}
	return resp
}

func (op *StatusPingFunc) logPingStart(
	spanID string, target Target, timeout time.Duration, t0 time.Time) {
	op.Logger.Info(
		"pingStart",
		slog.String("connectAddr", target.ConnectAddr()),
		slog.String("serverHost", target.Host),
		slog.Int("serverPort", int(target.Port)),
		slog.String("spanID", spanID),
		slog.Duration("timeout", timeout),
		slog.Time("t", t0),
	)
}

func (op *StatusPingFunc) logPingDone(
	spanID string, target Target, timeout time.Duration, t0 time.Time, err error) {
	op.Logger.Info(
		"pingDone",
		slog.String("connectAddr", target.ConnectAddr()),
		slog.Any("err", err),
		slog.String("errClass", op.ErrClassifier.Classify(err)),
		slog.String("serverHost", target.Host),
		slog.String("spanID", spanID),
		slog.Duration("timeout", timeout),
		slog.Time("t0", t0),
		slog.Time("t", op.TimeNow()),
	)
}
