// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"sync"

	"github.com/bassosimone/netstub"
	"github.com/bassosimone/slogstub"
)

// newCapturingLogger returns a logger that captures all log records into the
// returned slice. The caller can inspect the slice after exercising the code
// under test to verify which events were emitted.
func newCapturingLogger() (*slog.Logger, *[]slog.Record) {
	var records []slog.Record
	handler := &slogstub.FuncHandler{
		EnabledFunc: func(ctx context.Context, level slog.Level) bool {
			return true
		},
		HandleFunc: func(ctx context.Context, record slog.Record) error {
			records = append(records, record)
			return nil
		},
	}
	return slog.New(handler), &records
}

// hasLogEvent returns whether any captured record carries the given message.
func hasLogEvent(records *[]slog.Record, message string) bool {
	for _, record := range *records {
		if record.Message == message {
			return true
		}
	}
	return false
}

// newMinimalConn returns a [*netstub.FuncConn] with only LocalAddrFunc and
// RemoteAddrFunc set. This is the minimum needed for code that calls
// [safeconn.LocalAddr], [safeconn.RemoteAddr], and [safeconn.Network]
// during construction.
func newMinimalConn() *netstub.FuncConn {
	return &netstub.FuncConn{
		LocalAddrFunc:  func() net.Addr { return &net.TCPAddr{} },
		RemoteAddrFunc: func() net.Addr { return &net.TCPAddr{} },
	}
}

// newScriptedConn returns a [*netstub.FuncConn] whose reads serve the given
// chunks in order, one chunk per Read call, followed by [io.EOF]. Writes are
// accumulated into the returned buffer. This simulates a server delivering a
// response in arbitrary fragments.
func newScriptedConn(chunks ...[]byte) (*netstub.FuncConn, *[]byte) {
	var (
		mu      sync.Mutex
		next    int
		written []byte
	)
	conn := newMinimalConn()
	conn.CloseFunc = func() error { return nil }
	conn.ReadFunc = func(buf []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		if next >= len(chunks) {
			return 0, io.EOF
		}
		count := copy(buf, chunks[next])
		next++
		return count, nil
	}
	conn.WriteFunc = func(data []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		written = append(written, data...)
		return len(data), nil
	}
	return conn, &written
}

// newStatusFrame builds a complete status response frame carrying the JSON
// serialization of the given document.
func newStatusFrame(document map[string]any) []byte {
	payload := mustMarshalJSON(document)
	inner := AppendVarInt(nil, statusResponsePacketID)
	inner = AppendVarInt(inner, int32(len(payload)))
	inner = append(inner, payload...)
	return appendPacket(nil, inner)
}

// splitChunks splits data into pieces of at most size bytes, to exercise
// the partial-frame reassembly of the receive loop.
func splitChunks(data []byte, size int) [][]byte {
	var chunks [][]byte
	for len(data) > 0 {
		count := min(size, len(data))
		chunks = append(chunks, data[:count])
		data = data[count:]
	}
	return chunks
}

func mustMarshalJSON(document map[string]any) []byte {
	payload, err := json.Marshal(document)
	if err != nil {
		panic(err)
	}
	return payload
}
