// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import "errors"

// Packet layout constants for the modern (1.7+) status protocol. The
// handshake, the status request, and the status response all use
// packet id zero within their respective protocol states.
const (
	handshakePacketID      = 0x00
	statusRequestPacketID  = 0x00
	statusResponsePacketID = 0x00

	// statusProtocolSentinel is the protocol version advertised in a
	// status handshake. Status queries work against any server
	// version, so the handshake sends -1 rather than a real version.
	statusProtocolSentinel = -1

	// handshakeNextStateStatus switches the connection into the
	// status protocol state.
	handshakeNextStateStatus = 1
)

// maxStatusFrameSize bounds the declared length of a status response.
// Real responses stay well below this even with a base64 favicon and a
// long mod list; anything larger is a hostile or corrupt peer.
const maxStatusFrameSize = 1 << 21

// ErrFrameTooLarge indicates a status response whose declared length
// exceeds [maxStatusFrameSize].
var ErrFrameTooLarge = errors.New("mcwire: status frame too large")

// ErrMalformedFrame indicates a status frame whose declared lengths do
// not describe its actual content, e.g. a packet shorter than its own
// header or a JSON string overrunning the frame.
var ErrMalformedFrame = errors.New("mcwire: malformed status frame")

// ErrUnexpectedPacket indicates a packet id other than the status
// response id where a status response was required.
var ErrUnexpectedPacket = errors.New("mcwire: unexpected packet id")

// appendString appends the protocol encoding of s: VarInt byte length
// followed by the UTF-8 bytes.
func appendString(dst []byte, s string) []byte {
	dst = AppendVarInt(dst, int32(len(s)))
	return append(dst, s...)
}

// appendPacket frames payload with its VarInt length prefix.
func appendPacket(dst, payload []byte) []byte {
	dst = AppendVarInt(dst, int32(len(payload)))
	return append(dst, payload...)
}

// appendHandshake appends a complete handshake packet advertising the
// given host and port with next-state status.
func appendHandshake(dst []byte, host string, port uint16) []byte {
	payload := AppendVarInt(nil, handshakePacketID)
	payload = AppendVarInt(payload, statusProtocolSentinel)
	payload = appendString(payload, host)
	payload = append(payload, byte(port>>8), byte(port))
	payload = AppendVarInt(payload, handshakeNextStateStatus)
	return appendPacket(dst, payload)
}

// appendStatusRequest appends a complete status request packet.
func appendStatusRequest(dst []byte) []byte {
	return appendPacket(dst, AppendVarInt(nil, statusRequestPacketID))
}

// parseStatusFrame attempts to extract the JSON payload of a status
// response from an accumulated receive buffer.
//
// The function returns [ErrIncompleteFrame] while buf does not yet hold
// the whole declared frame; the receive loop keeps appending chunks and
// re-attempting. Once the declared frame is fully buffered, any inner
// inconsistency is terminal: at that point "not enough bytes" means the
// frame lies about its own layout, not that more data is coming.
func parseStatusFrame(buf []byte) ([]byte, error) {
	length, n, err := ParseVarInt(buf)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ErrMalformedFrame
	}
	if length > maxStatusFrameSize {
		return nil, ErrFrameTooLarge
	}
	if len(buf) < n+int(length) {
		return nil, ErrIncompleteFrame
	}
	payload := buf[n : n+int(length)]

	packetID, idLen, err := ParseVarInt(payload)
	if err != nil {
		return nil, ErrMalformedFrame
	}
	if packetID != statusResponsePacketID {
		return nil, ErrUnexpectedPacket
	}

	strLen, lenLen, err := ParseVarInt(payload[idLen:])
	if err != nil {
		return nil, ErrMalformedFrame
	}
	start := idLen + lenLen
	if strLen < 0 || start+int(strLen) > len(payload) {
		return nil, ErrMalformedFrame
	}
	return payload[start : start+int(strLen)], nil
}
