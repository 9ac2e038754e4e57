// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// errOversizeString indicates a name or string payload longer than the
// 16-bit length prefix can express.
var errOversizeString = errors.New("nbt: string longer than 65535 bytes")

// errOversizeArray indicates an array or list longer than the 32-bit
// signed length prefix can express.
var errOversizeArray = errors.New("nbt: array longer than 2147483647 elements")

// Encode serializes root as an uncompressed NBT document with an
// unnamed root compound, the inverse of [Parse] on uncompressed input.
//
// Because every [Value] keeps its stored width and every [*Compound]
// its insertion order, decoding an uncompressed document and encoding
// it again reproduces the original bytes.
func Encode(root *Compound) ([]byte, error) {
	out := []byte{byte(TagCompound)}
	out, err := appendString16(out, "")
	if err != nil {
		return nil, err
	}
	return appendCompound(out, root)
}

// EncodeGzip serializes root like [Encode] and gzip-compresses the
// result, matching how Minecraft stores world saves on disk.
func EncodeGzip(root *Compound) ([]byte, error) {
	raw, err := Encode(root)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendString16 appends a 16-bit-length-prefixed UTF-8 string.
func appendString16(dst []byte, s string) ([]byte, error) {
	if len(s) > math.MaxUint16 {
		return nil, errOversizeString
	}
	dst = binary.BigEndian.AppendUint16(dst, uint16(len(s)))
	return append(dst, s...), nil
}

// appendPayload appends the payload of value without tag or name.
func appendPayload(dst []byte, value Value) ([]byte, error) {
	switch v := value.(type) {
	case Byte:
		return append(dst, byte(v)), nil

	case Short:
		return binary.BigEndian.AppendUint16(dst, uint16(v)), nil

	case Int:
		return binary.BigEndian.AppendUint32(dst, uint32(v)), nil

	case Long:
		return binary.BigEndian.AppendUint64(dst, uint64(v)), nil

	case Float:
		return binary.BigEndian.AppendUint32(dst, math.Float32bits(float32(v))), nil

	case Double:
		return binary.BigEndian.AppendUint64(dst, math.Float64bits(float64(v))), nil

	case ByteArray:
		if len(v) > math.MaxInt32 {
			return nil, errOversizeArray
		}
		dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
		return append(dst, v...), nil

	case String:
		return appendString16(dst, string(v))

	case *List:
		return appendList(dst, v)

	case *Compound:
		return appendCompound(dst, v)

	case IntArray:
		if len(v) > math.MaxInt32 {
			return nil, errOversizeArray
		}
		dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
		for _, elem := range v {
			dst = binary.BigEndian.AppendUint32(dst, uint32(elem))
		}
		return dst, nil

	case LongArray:
		if len(v) > math.MaxInt32 {
			return nil, errOversizeArray
		}
		dst = binary.BigEndian.AppendUint32(dst, uint32(len(v)))
		for _, elem := range v {
			dst = binary.BigEndian.AppendUint64(dst, uint64(elem))
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("nbt: cannot encode %T", value)
	}
}

// appendList appends the element tag type, the count, and then every
// element payload.
func appendList(dst []byte, list *List) ([]byte, error) {
	if len(list.Items) > math.MaxInt32 {
		return nil, errOversizeArray
	}
	if list.ElemType == TagEnd && len(list.Items) > 0 {
		return nil, fmt.Errorf("nbt: cannot encode nonempty list of %s", TagEnd)
	}
	dst = append(dst, byte(list.ElemType))
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(list.Items)))
	for _, item := range list.Items {
		if item.Type() != list.ElemType {
			return nil, fmt.Errorf(
				"nbt: %s element in list of %s", item.Type(), list.ElemType)
		}
		var err error
		if dst, err = appendPayload(dst, item); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// appendCompound appends every named entry in insertion order followed
// by the End tag.
func appendCompound(dst []byte, compound *Compound) ([]byte, error) {
	for _, name := range compound.Names() {
		value, _ := compound.Get(name)
		dst = append(dst, byte(value.Type()))
		var err error
		if dst, err = appendString16(dst, name); err != nil {
			return nil, err
		}
		if dst, err = appendPayload(dst, value); err != nil {
			return nil, err
		}
	}
	return append(dst, byte(TagEnd)), nil
}
