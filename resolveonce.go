// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import "sync/atomic"

// NewResolveOnce returns a new unresolved [*ResolveOnce].
func NewResolveOnce[T any]() *ResolveOnce[T] {
	return &ResolveOnce[T]{
		claimed: atomic.Bool{},
		ch:      make(chan resolution[T], 1),
	}
}

// ResolveOnce is a single-resolution gate for racing completion paths.
//
// A ping session has several ways to finish: the session goroutine
// succeeds or fails, the timeout timer fires, or the caller's context
// is cancelled. Exactly one of these may determine the outcome. Each
// path calls [ResolveOnce.Resolve]; the first call claims the gate and
// delivers its outcome, every later call is a no-op. The waiter calls
// [ResolveOnce.Wait] once and observes the winning outcome.
//
// The claim is an atomic compare-and-swap, so concurrent Resolve calls
// from different goroutines are safe and never block: the channel is
// buffered and only the claiming call sends on it.
type ResolveOnce[T any] struct {
	claimed atomic.Bool
	ch      chan resolution[T]
}

// resolution is the outcome delivered through the gate.
type resolution[T any] struct {
	value T
	err   error
}

// Resolve attempts to resolve the gate with the given outcome. The
// return value is true when this call claimed the gate and false when
// another path already resolved it.
func (g *ResolveOnce[T]) Resolve(value T, err error) bool {
	if !g.claimed.CompareAndSwap(false, true) {
		return false
	}
	g.ch <- resolution[T]{value: value, err: err}
	return true
}

// Wait blocks until the gate is resolved and returns the winning
// outcome. Call Wait at most once: a second call blocks forever.
func (g *ResolveOnce[T]) Wait() (T, error) {
	res := <-g.ch
	return res.value, res.err
}
