// SPDX-License-Identifier: GPL-3.0-or-later

// Package mcwire provides composable primitives for the Minecraft
// Server List Ping protocol (1.7+ JSON status) and, in the nested
// nbt package, a lossless codec for the NBT world-save format.
//
// # Core Abstraction
//
// The package is built around a single interface:
//
//	type Func[A, B any] interface {
//		Call(ctx context.Context, input A) (B, error)
//	}
//
// Each Func represents an atomic operation with exactly one success
// mode and one failure mode. This design enables type-safe composition
// via [Compose2], [Compose3], etc., where the compiler verifies that
// outputs match inputs across pipeline stages.
//
// # Available Primitives
//
// Connection establishment:
//   - [ConnectFunc]: dials the TCP side of a [Target]
//   - [ObserveConnFunc]: observes connections for logging I/O operations
//   - [CancelWatchFunc]: closes the connection on context cancellation,
//     which is how ping timeouts interrupt in-flight reads
//
// Server List Ping:
//   - [ResolveTargetFunc]: rewrites the connect side of a [Target]
//     through a _minecraft._tcp SRV lookup while preserving the
//     hostname advertised inside the handshake
//   - [StatusConn]: wraps a connection for status queries: handshake,
//     status request, partial-frame reassembly, JSON decoding
//     (created via [NewStatusConnFunc])
//   - [StatusPingFunc]: the full ping session, racing the query
//     pipeline against a timeout timer and caller cancellation
//     through a [ResolveOnce] gate
//
// Composition utilities:
//   - [Compose2] through [Compose5]: chain Funcs into pipelines
//   - [FuncAdapter]: wrap a function as a Func for ad-hoc custom behavior
//   - [Apply]: bind a fixed input to a Func
//   - [ConstFunc]: lift a pure value into a Func
//   - [NewTargetFunc]: convenience wrapper for ConstFunc with targets
//
// # Connection Lifecycle
//
// Dial operations ([ConnectFunc]) create connections and transfer
// ownership to the next stage on success.
//
// Wrapper types ([StatusConn]) OWN their underlying connection. The
// caller must call Close() when done, which closes the underlying
// connection. These can be composed into pipelines via their
// corresponding Func types.
//
// [StatusPingFunc] manages the whole lifecycle internally: each call is
// an independent session with no state shared across sessions, and the
// session socket is closed whichever of {response, timeout, error,
// cancel} resolves the session first.
//
// # Observability
//
// All primitives support structured logging via [SLogger] (compatible
// with [log/slog]).
//
// By default, logging is disabled. Set the Logger field to a custom
// [*slog.Logger] to enable logging. Error classification is
// configurable via [ErrClassifier]; the default classifier labels
// transport errors (ECONNREFUSED, ETIMEDOUT, ...) for analysis.
//
// Primitives emit two kinds of structured log events:
//
//   - Span events (*Start/*Done pairs): record operation lifecycle
//     including timing and success/failure, e.g. connectStart,
//     statusQueryDone, pingDone.
//
//   - Wire observations (statusResponse): capture protocol-level
//     payload metadata for debugging server compatibility issues.
//
// I/O-level events (read, write, deadline changes) are emitted at
// [slog.LevelDebug]; all other events use [slog.LevelInfo]. All events
// share a common set of fields: localAddr, remoteAddr, protocol, and t
// (timestamp). Completion events (*Done) additionally include t0
// (start time), err, and errClass.
//
// Each ping session is tagged with a spanID (UUIDv7, see [NewSpanID])
// so that the events of concurrent sessions polling a server list can
// be correlated in the log stream.
//
// # Timeout and Context Philosophy
//
// Primitives are context-transparent: they never modify the context
// they receive. [StatusPingFunc] is the one orchestrator in this
// package: it derives a session context, arms a timeout timer, and
// closes the session socket through [CancelWatchFunc] when the session
// resolves, so that a blocked read never outlives its session.
//
// Exactly one of {decoded response, timeout, transport or protocol
// error, caller cancel} resolves a session. The [ResolveOnce] gate
// makes double-resolution structurally impossible rather than merely
// unlikely: resolution is claimed with an atomic compare-and-set and
// losing paths are dropped.
//
// # Design Boundaries
//
// This package intentionally provides only primitives. The following
// are out of scope and should be implemented by higher-level packages:
//
//   - Retry and backoff logic for unreachable servers
//   - Fan-out over server lists
//   - Caching of ping results or decoded save metadata
//
// Liveness probing is best-effort by design: [StatusPingFunc.Ping]
// collapses every failure to a nil response so that callers polling
// dozens of servers never need to handle per-server errors.
package mcwire
