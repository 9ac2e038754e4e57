// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// appendHandshake produces the exact handshake byte layout.
func TestAppendHandshake(t *testing.T) {
	out := appendHandshake(nil, "mc.example.com", 25565)

	want := []byte{
		// frame length: 1 + 5 + 1 + 14 + 2 + 1 = 24
		24,
		// packet id
		0x00,
		// protocol version sentinel -1
		0xff, 0xff, 0xff, 0xff, 0x0f,
		// string length then host
		14,
		'm', 'c', '.', 'e', 'x', 'a', 'm', 'p', 'l', 'e', '.', 'c', 'o', 'm',
		// port, big endian
		0x63, 0xdd,
		// next state: status
		0x01,
	}
	assert.Equal(t, want, out)
}

// appendStatusRequest produces the two-byte status request frame.
func TestAppendStatusRequest(t *testing.T) {
	out := appendStatusRequest(nil)

	assert.Equal(t, []byte{0x01, 0x00}, out)
}

// parseStatusFrame extracts the JSON payload from a complete frame.
func TestParseStatusFrame(t *testing.T) {
	frame := newStatusFrame(map[string]any{"description": "hello"})

	payload, err := parseStatusFrame(frame)

	require.NoError(t, err)
	assert.JSONEq(t, `{"description": "hello"}`, string(payload))
}

// Every strict prefix of a valid frame reports ErrIncompleteFrame, so a
// receive loop fed one byte at a time converges without ever misreading
// a partial frame as malformed.
func TestParseStatusFramePrefixes(t *testing.T) {
	frame := newStatusFrame(map[string]any{"version": map[string]any{"name": "1.20.4", "protocol": 765}})

	for size := 0; size < len(frame); size++ {
		_, err := parseStatusFrame(frame[:size])
		require.ErrorIs(t, err, ErrIncompleteFrame, "prefix of %d bytes", size)
	}

	payload, err := parseStatusFrame(frame)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "1.20.4")
}

// Frames that are complete but internally inconsistent are terminal errors.
func TestParseStatusFrameMalformed(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// frame is the malformed input.
		frame []byte

		// wantErr is the expected error.
		wantErr error
	}{
		{
			name: "negative frame length",
			// VarInt -1 as the frame length
			frame:   []byte{0xff, 0xff, 0xff, 0xff, 0x0f},
			wantErr: ErrMalformedFrame,
		},

		{
			name: "oversize frame length",
			// VarInt 1 << 24 as the frame length
			frame:   []byte{0x80, 0x80, 0x80, 0x08},
			wantErr: ErrFrameTooLarge,
		},

		{
			name: "empty frame has no packet id",
			// declared length 0, so the id VarInt is missing
			frame:   []byte{0x00},
			wantErr: ErrMalformedFrame,
		},

		{
			name: "wrong packet id",
			// length 1, id 1
			frame:   []byte{0x01, 0x01},
			wantErr: ErrUnexpectedPacket,
		},

		{
			name: "string overruns frame",
			// length 2, id 0, declared string length 5 with no bytes
			frame:   []byte{0x02, 0x00, 0x05},
			wantErr: ErrMalformedFrame,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseStatusFrame(tt.frame)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
