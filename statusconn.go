// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/bassosimone/safeconn"
)

// ErrTruncatedResponse indicates that the server closed the connection
// before delivering a complete status frame.
var ErrTruncatedResponse = errors.New("mcwire: connection closed before a complete status frame")

// NewStatusConnFunc returns a new [*StatusConnFunc].
//
// The cfg argument contains the common configuration for mcwire operations.
//
// The logger argument is the [SLogger] to use for structured logging.
func NewStatusConnFunc(cfg *Config, logger SLogger) *StatusConnFunc {
	return &StatusConnFunc{
		ErrClassifier: cfg.ErrClassifier,
		Logger:        logger,
		TimeNow:       cfg.TimeNow,
	}
}

// StatusConnFunc converts a [net.Conn] into a [*StatusConn] speaking
// the Server List Ping status protocol.
//
// All fields are safe to modify after construction but before first use.
// Fields must not be mutated concurrently with calls to [Call].
type StatusConnFunc struct {
	// ErrClassifier classifies errors for structured logging.
	//
	// Set by [NewStatusConnFunc] from [Config.ErrClassifier].
	ErrClassifier ErrClassifier

	// Logger is the [SLogger] to use (configurable for testing or custom logging).
	//
	// Set by [NewStatusConnFunc] to the user-provided logger.
	Logger SLogger

	// TimeNow is the function to get the current time (configurable for testing).
	//
	// Set by [NewStatusConnFunc] from [Config.TimeNow].
	TimeNow func() time.Time
}

var _ Func[net.Conn, *StatusConn] = &StatusConnFunc{}

// Call invokes the [*StatusConnFunc] to wrap the given [net.Conn].
func (op *StatusConnFunc) Call(ctx context.Context, conn net.Conn) (*StatusConn, error) {
	sc := &StatusConn{
		conn:          conn,
		ErrClassifier: op.ErrClassifier,
		Logger:        op.Logger,
		TimeNow:       op.TimeNow,
	}
	return sc, nil
}

// StatusConn is a [net.Conn] wrapper speaking the status half of the
// Server List Ping protocol.
//
// The StatusConn owns the underlying connection: closing the StatusConn
// closes the connection. Construct instances with [StatusConnFunc].
//
// [StatusConn.Query] is not safe for concurrent use: the status
// protocol is a single request-response exchange on a dedicated
// connection, so there is nothing to multiplex.
type StatusConn struct {
	// conn is the owned TCP connection.
	conn net.Conn

	// ErrClassifier classifies errors for structured logging.
	ErrClassifier ErrClassifier

	// Logger is the SLogger to use.
	Logger SLogger

	// TimeNow is the function to get the current time.
	TimeNow func() time.Time
}

// Close closes the underlying connection.
func (c *StatusConn) Close() error {
	return c.conn.Close()
}

// Conn returns the underlying net.Conn for logging purposes.
func (c *StatusConn) Conn() net.Conn {
	return c.conn
}

// Query performs the full status exchange: it sends the handshake and
// the status request, then accumulates response bytes until a complete
// status frame parses, and decodes the JSON payload.
//
// The target argument supplies the handshake side of the [Target]: the
// host and port written into the handshake packet, which may differ
// from the address the connection was dialed to when SRV indirection
// applied.
//
// Query does not watch the context itself. Wrap the connection with
// [CancelWatchFunc] before converting it with [StatusConnFunc]: then a
// cancelled context closes the socket and any read blocked here fails
// immediately.
func (c *StatusConn) Query(ctx context.Context, target Target) (*ServerStatusResponse, error) {
	t0 := c.TimeNow()
	deadline, _ := ctx.Deadline()
	c.logQueryStart(target, t0, deadline)
	resp, err := c.query(target)
	c.logQueryDone(target, t0, deadline, err)
	return resp, err
}

func (c *StatusConn) query(target Target) (*ServerStatusResponse, error) {
	// 1. send handshake and status request as a single write
	out := appendHandshake(nil, target.Host, target.Port)
	out = appendStatusRequest(out)
	if _, err := c.conn.Write(out); err != nil {
		return nil, err
	}

	// 2. accumulate chunks until a complete frame parses
	var frame []byte
	buf := make([]byte, 4096)
	for {
		payload, perr := parseStatusFrame(frame)
		if perr == nil {
			return c.decode(payload)
		}
		if !errors.Is(perr, ErrIncompleteFrame) {
			return nil, perr
		}
		count, rerr := c.conn.Read(buf)
		frame = append(frame, buf[:count]...)
		if rerr != nil {
			// a read may return data along with the error, so give
			// the parser one more chance before giving up
			if count > 0 {
				continue
			}
			if errors.Is(rerr, io.EOF) {
				return nil, ErrTruncatedResponse
			}
			return nil, rerr
		}
	}
}

func (c *StatusConn) decode(payload []byte) (*ServerStatusResponse, error) {
	resp := &ServerStatusResponse{}
	if err := json.Unmarshal(payload, resp); err != nil {
		return nil, err
	}
	c.Logger.Info(
		"statusResponse",
		slog.Int("payloadSize", len(payload)),
		slog.String("localAddr", safeconn.LocalAddr(c.conn)),
		slog.Int("playersMax", resp.Players.Max),
		slog.Int("playersOnline", resp.Players.Online),
		slog.String("protocol", safeconn.Network(c.conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(c.conn)),
		slog.String("serverVersion", resp.Version.Name),
		slog.Time("t", c.TimeNow()),
	)
	return resp, nil
}

func (c *StatusConn) logQueryStart(target Target, t0 time.Time, deadline time.Time) {
	c.Logger.Info(
		"statusQueryStart",
		slog.Time("deadline", deadline),
		slog.String("localAddr", safeconn.LocalAddr(c.conn)),
		slog.String("protocol", safeconn.Network(c.conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(c.conn)),
		slog.String("serverHost", target.Host),
		slog.Int("serverPort", int(target.Port)),
		slog.Time("t", t0),
	)
}

func (c *StatusConn) logQueryDone(
	target Target, t0 time.Time, deadline time.Time, err error) {
	c.Logger.Info(
		"statusQueryDone",
		slog.Time("deadline", deadline),
		slog.Any("err", err),
		slog.String("errClass", c.ErrClassifier.Classify(err)),
		slog.String("localAddr", safeconn.LocalAddr(c.conn)),
		slog.String("protocol", safeconn.Network(c.conn)),
		slog.String("remoteAddr", safeconn.RemoteAddr(c.conn)),
		slog.String("serverHost", target.Host),
		slog.Time("t0", t0),
		slog.Time("t", c.TimeNow()),
	)
}
