// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"github.com/bassosimone/runtimex"
	"github.com/google/uuid"
)

// NewSpanID returns a UUIDv7 representing a span.
//
// A span is a sequence of operations that can fail in a single,
// specific way. In this package each ping session is one span: its
// pingStart and pingDone events carry the span ID, and callers that
// want every event of a session tagged attach the same ID to their
// logger with [slog.Logger.With], which keeps concurrent sessions
// apart when polling a whole server list at once.
//
// The span terminology is borrowed from OTel.
//
// This function panics if the system random number generator fails,
// which should only happen under extraordinary circumstances.
func NewSpanID() string {
	return runtimex.PanicOnError1(uuid.NewV7()).String()
}
