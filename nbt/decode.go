// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"unicode/utf8"
)

// DecodeError is the typed failure of [Parse].
//
// Offset is the byte position in the (decompressed) input where the
// decoder gave up, so callers can log where a corrupt save went wrong.
type DecodeError struct {
	// Offset is the byte position of the failure.
	Offset int

	// Reason describes what was expected versus found.
	Reason string
}

var _ error = &DecodeError{}

// Error implements error.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("nbt: %s at offset %d", e.Reason, e.Offset)
}

// maxDepth bounds compound/list nesting so a hostile file cannot
// overflow the goroutine stack through recursion.
const maxDepth = 512

// Parse decodes a complete NBT document.
//
// The input is the raw file content: when it starts with the gzip magic
// bytes 1F 8B it is decompressed first, otherwise it is decoded as-is.
// The document must consist of exactly one named root compound. The
// root's own name (empty in every known save format) is discarded.
//
// Any truncation, negative length prefix, unknown tag-type byte, or
// invalid UTF-8 yields a [*DecodeError]; the decoder never substitutes
// defaults for unreadable data, so callers can tell a corrupt file from
// one that genuinely lacks a key.
func Parse(data []byte) (*Compound, error) {
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecodeError{Offset: 0, Reason: fmt.Sprintf("gzip: %s", err.Error())}
		}
		defer zr.Close()
		if data, err = io.ReadAll(zr); err != nil {
			return nil, &DecodeError{Offset: 0, Reason: fmt.Sprintf("gzip: %s", err.Error())}
		}
	}

	dec := &decoder{buf: data, off: 0}
	tag, err := dec.readTagType()
	if err != nil {
		return nil, err
	}
	if tag != TagCompound {
		return nil, dec.failf("expected %s root, found %s", TagCompound, tag)
	}
	if _, err := dec.readName(); err != nil {
		return nil, err
	}
	root, err := dec.readCompound(0)
	if err != nil {
		return nil, err
	}
	if dec.off != len(dec.buf) {
		return nil, dec.failf("%d trailing bytes after root compound", len(dec.buf)-dec.off)
	}
	return root, nil
}

// decoder walks the byte stream linearly with a private cursor.
type decoder struct {
	buf []byte
	off int
}

// failf returns a [*DecodeError] at the current cursor position.
func (d *decoder) failf(format string, v ...any) error {
	return &DecodeError{Offset: d.off, Reason: fmt.Sprintf(format, v...)}
}

// need fails unless count more bytes are available at the cursor.
func (d *decoder) need(count int) error {
	if count < 0 {
		return d.failf("negative length %d", count)
	}
	if len(d.buf)-d.off < count {
		return d.failf("expected %d more bytes, found %d", count, len(d.buf)-d.off)
	}
	return nil
}

func (d *decoder) take(count int) ([]byte, error) {
	if err := d.need(count); err != nil {
		return nil, err
	}
	chunk := d.buf[d.off : d.off+count]
	d.off += count
	return chunk, nil
}

func (d *decoder) readTagType() (TagType, error) {
	chunk, err := d.take(1)
	if err != nil {
		return TagEnd, err
	}
	tag := TagType(chunk[0])
	if tag > TagLongArray {
		d.off--
		return TagEnd, d.failf("unknown tag type 0x%02x", chunk[0])
	}
	return tag, nil
}

func (d *decoder) readUint16() (uint16, error) {
	chunk, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(chunk), nil
}

func (d *decoder) readInt32() (int32, error) {
	chunk, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(chunk)), nil
}

func (d *decoder) readInt64() (int64, error) {
	chunk, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(chunk)), nil
}

// readName reads a 16-bit-length-prefixed UTF-8 name.
func (d *decoder) readName() (string, error) {
	length, err := d.readUint16()
	if err != nil {
		return "", err
	}
	chunk, err := d.take(int(length))
	if err != nil {
		return "", err
	}
	if !utf8.Valid(chunk) {
		return "", d.failf("invalid UTF-8 in name")
	}
	return string(chunk), nil
}

// readArrayLength reads a 4-byte signed element count and validates it
// against the bytes actually remaining, so a hostile length prefix
// cannot drive a huge allocation.
func (d *decoder) readArrayLength(elemSize int) (int, error) {
	length, err := d.readInt32()
	if err != nil {
		return 0, err
	}
	if length < 0 {
		return 0, d.failf("negative length %d", length)
	}
	if err := d.need(int(length) * elemSize); err != nil {
		return 0, err
	}
	return int(length), nil
}

// readPayload dispatches on the tag kind and decodes one payload.
func (d *decoder) readPayload(tag TagType, depth int) (Value, error) {
	if depth > maxDepth {
		return nil, d.failf("nesting deeper than %d levels", maxDepth)
	}
	switch tag {
	case TagByte:
		chunk, err := d.take(1)
		if err != nil {
			return nil, err
		}
		return Byte(chunk[0]), nil

	case TagShort:
		chunk, err := d.take(2)
		if err != nil {
			return nil, err
		}
		return Short(binary.BigEndian.Uint16(chunk)), nil

	case TagInt:
		value, err := d.readInt32()
		if err != nil {
			return nil, err
		}
		return Int(value), nil

	case TagLong:
		value, err := d.readInt64()
		if err != nil {
			return nil, err
		}
		return Long(value), nil

	case TagFloat:
		chunk, err := d.take(4)
		if err != nil {
			return nil, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(chunk))), nil

	case TagDouble:
		chunk, err := d.take(8)
		if err != nil {
			return nil, err
		}
		return Double(math.Float64frombits(binary.BigEndian.Uint64(chunk))), nil

	case TagByteArray:
		length, err := d.readArrayLength(1)
		if err != nil {
			return nil, err
		}
		chunk, err := d.take(length)
		if err != nil {
			return nil, err
		}
		return ByteArray(bytes.Clone(chunk)), nil

	case TagString:
		length, err := d.readUint16()
		if err != nil {
			return nil, err
		}
		chunk, err := d.take(int(length))
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(chunk) {
			return nil, d.failf("invalid UTF-8 in string")
		}
		return String(chunk), nil

	case TagList:
		return d.readList(depth)

	case TagCompound:
		return d.readCompound(depth)

	case TagIntArray:
		length, err := d.readArrayLength(4)
		if err != nil {
			return nil, err
		}
		values := make(IntArray, length)
		for i := range values {
			value, err := d.readInt32()
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil

	case TagLongArray:
		length, err := d.readArrayLength(8)
		if err != nil {
			return nil, err
		}
		values := make(LongArray, length)
		for i := range values {
			value, err := d.readInt64()
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil

	default:
		return nil, d.failf("unexpected %s payload", tag)
	}
}

// readList reads the element tag type, the signed count, and then that
// many unnamed payloads of the declared type.
func (d *decoder) readList(depth int) (*List, error) {
	elemType, err := d.readTagType()
	if err != nil {
		return nil, err
	}
	count, err := d.readInt32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, d.failf("negative length %d", count)
	}
	// TAG_End elements are only the "no element type" marker of an
	// empty list; a nonempty list of them is unrepresentable.
	if elemType == TagEnd && count > 0 {
		return nil, d.failf("list of %s with %d elements", TagEnd, count)
	}
	list := &List{ElemType: elemType, Items: nil}
	for i := int32(0); i < count; i++ {
		item, err := d.readPayload(elemType, depth+1)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

// readCompound reads named entries until the End tag.
func (d *decoder) readCompound(depth int) (*Compound, error) {
	compound := NewCompound()
	for {
		tag, err := d.readTagType()
		if err != nil {
			return nil, err
		}
		if tag == TagEnd {
			return compound, nil
		}
		name, err := d.readName()
		if err != nil {
			return nil, err
		}
		value, err := d.readPayload(tag, depth+1)
		if err != nil {
			return nil, err
		}
		compound.Set(name, value)
	}
}
