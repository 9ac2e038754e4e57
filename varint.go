// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import "errors"

// ErrIncompleteFrame indicates that the receive buffer does not yet
// contain enough bytes to decode what the wire format declares. This is
// not a protocol violation: the receive loop treats it as "wait for
// more data" and re-attempts the parse after the next chunk arrives.
var ErrIncompleteFrame = errors.New("mcwire: incomplete frame")

// errVarIntTooLong indicates a VarInt with a continuation bit still set
// in its fifth byte, which no 32-bit value encodes to.
var errVarIntTooLong = errors.New("mcwire: varint exceeds five bytes")

// maxVarIntBytes is the longest encoding of a 32-bit VarInt.
const maxVarIntBytes = 5

// AppendVarInt appends the Minecraft protocol encoding of value to dst
// and returns the extended buffer.
//
// The encoding emits seven bits per byte, least-significant group
// first, with the high bit marking continuation. There is no ZigZag
// step: negative values carry their full 32-bit two's-complement
// pattern, so -1 (the protocol-version sentinel used in status
// handshakes) always occupies five bytes.
func AppendVarInt(dst []byte, value int32) []byte {
	uval := uint32(value)
	for {
		b := byte(uval & 0x7f)
		uval >>= 7
		if uval != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if uval == 0 {
			return dst
		}
	}
}

// ParseVarInt decodes a VarInt from the beginning of buf and returns
// the value and the number of bytes consumed.
//
// When buf ends in the middle of an encoding the error is
// [ErrIncompleteFrame], so callers accumulating a partial frame can
// distinguish "need more data" from a malformed stream.
func ParseVarInt(buf []byte) (int32, int, error) {
	var result uint32
	for i := 0; i < maxVarIntBytes; i++ {
		if i >= len(buf) {
			return 0, 0, ErrIncompleteFrame
		}
		b := buf[i]
		result |= uint32(b&0x7f) << (7 * i)
		if b&0x80 == 0 {
			return int32(result), i + 1, nil
		}
	}
	return 0, 0, errVarIntTooLong
}
