// SPDX-License-Identifier: GPL-3.0-or-later

// Package nbt decodes and encodes the NBT (Named Binary Tag) binary
// format used by Minecraft world saves such as level.dat and
// world_gen_settings.dat, as well as Litematica schematic files.
//
// The format is a tree of typed, optionally named tags with big-endian
// fixed-width or length-prefixed payloads, usually gzip-compressed on
// disk. [Parse] detects gzip by its magic bytes, so callers always hand
// in the raw file content.
//
// Decoded documents use a closed set of [Value] implementations, one
// per tag kind, so call sites switch over concrete types instead of
// casting through interface{} and silently getting nil on a mismatch.
// Every numeric value keeps its exact stored width: world metadata
// fields changed width across save-format generations, and lossless
// round-trip re-serialization requires remembering what was read.
// Widening is an explicit caller-side step via [Int64Value].
package nbt

import "fmt"

// TagType identifies one of the thirteen NBT tag kinds.
type TagType byte

// The NBT tag kinds, in wire order.
const (
	TagEnd TagType = iota
	TagByte
	TagShort
	TagInt
	TagLong
	TagFloat
	TagDouble
	TagByteArray
	TagString
	TagList
	TagCompound
	TagIntArray
	TagLongArray
)

// tagTypeNames maps each tag kind to its conventional name.
var tagTypeNames = map[TagType]string{
	TagEnd:       "TAG_End",
	TagByte:      "TAG_Byte",
	TagShort:     "TAG_Short",
	TagInt:       "TAG_Int",
	TagLong:      "TAG_Long",
	TagFloat:     "TAG_Float",
	TagDouble:    "TAG_Double",
	TagByteArray: "TAG_Byte_Array",
	TagString:    "TAG_String",
	TagList:      "TAG_List",
	TagCompound:  "TAG_Compound",
	TagIntArray:  "TAG_Int_Array",
	TagLongArray: "TAG_Long_Array",
}

// String returns the conventional name of the tag kind.
func (t TagType) String() string {
	if name, found := tagTypeNames[t]; found {
		return name
	}
	return fmt.Sprintf("TAG_Unknown(%d)", byte(t))
}

// Value is one decoded NBT payload.
//
// The implementations are exactly [Byte], [Short], [Int], [Long],
// [Float], [Double], [ByteArray], [String], [*List], [*Compound],
// [IntArray], and [LongArray]. The unexported method seals the set, so
// a type switch over these cases is exhaustive.
type Value interface {
	// Type returns the tag kind of this value.
	Type() TagType

	isValue()
}

// Byte is a signed 8-bit integer payload.
type Byte int8

// Short is a signed big-endian 16-bit integer payload.
type Short int16

// Int is a signed big-endian 32-bit integer payload.
type Int int32

// Long is a signed big-endian 64-bit integer payload.
type Long int64

// Float is a big-endian IEEE-754 32-bit payload.
type Float float32

// Double is a big-endian IEEE-754 64-bit payload.
type Double float64

// ByteArray is a length-prefixed run of raw bytes.
type ByteArray []byte

// String is a length-prefixed UTF-8 string payload.
type String string

// IntArray is a length-prefixed run of signed 32-bit integers.
type IntArray []int32

// LongArray is a length-prefixed run of signed 64-bit integers.
type LongArray []int64

// List is a homogeneous sequence of unnamed payloads.
//
// ElemType declares the kind of every element. An empty list may
// declare [TagEnd] as its element kind; a nonempty one may not.
type List struct {
	// ElemType is the declared kind of every element.
	ElemType TagType

	// Items holds the elements in wire order.
	Items []Value
}

// Type implements [Value].
func (Byte) Type() TagType { return TagByte }

// Type implements [Value].
func (Short) Type() TagType { return TagShort }

// Type implements [Value].
func (Int) Type() TagType { return TagInt }

// Type implements [Value].
func (Long) Type() TagType { return TagLong }

// Type implements [Value].
func (Float) Type() TagType { return TagFloat }

// Type implements [Value].
func (Double) Type() TagType { return TagDouble }

// Type implements [Value].
func (ByteArray) Type() TagType { return TagByteArray }

// Type implements [Value].
func (String) Type() TagType { return TagString }

// Type implements [Value].
func (*List) Type() TagType { return TagList }

// Type implements [Value].
func (*Compound) Type() TagType { return TagCompound }

// Type implements [Value].
func (IntArray) Type() TagType { return TagIntArray }

// Type implements [Value].
func (LongArray) Type() TagType { return TagLongArray }

func (Byte) isValue()      {}
func (Short) isValue()     {}
func (Int) isValue()       {}
func (Long) isValue()      {}
func (Float) isValue()     {}
func (Double) isValue()    {}
func (ByteArray) isValue() {}
func (String) isValue()    {}
func (*List) isValue()     {}
func (*Compound) isValue() {}
func (IntArray) isValue()  {}
func (LongArray) isValue() {}

// NewCompound returns a new empty [*Compound].
func NewCompound() *Compound {
	return &Compound{
		index: map[string]int{},
		names: nil,
		vals:  nil,
	}
}

// Compound is a set of named values preserving insertion order.
//
// Wire order carries information in world saves (and keeping it makes
// decode-encode round trips byte-stable), so iteration with
// [Compound.Names] visits entries in the order they were first set.
type Compound struct {
	index map[string]int
	names []string
	vals  []Value
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	return len(c.names)
}

// Names returns the entry names in insertion order. The returned slice
// is owned by the compound and must not be modified.
func (c *Compound) Names() []string {
	return c.names
}

// Get returns the value stored under name, if any.
func (c *Compound) Get(name string) (Value, bool) {
	pos, found := c.index[name]
	if !found {
		return nil, false
	}
	return c.vals[pos], true
}

// Set stores value under name. Replacing an existing entry keeps its
// original position; a new entry appends at the end.
func (c *Compound) Set(name string, value Value) {
	if pos, found := c.index[name]; found {
		c.vals[pos] = value
		return
	}
	c.index[name] = len(c.names)
	c.names = append(c.names, name)
	c.vals = append(c.vals, value)
}

// GetCompound returns the child compound stored under name, if the
// entry exists and is a compound.
func (c *Compound) GetCompound(name string) (*Compound, bool) {
	value, found := c.Get(name)
	if !found {
		return nil, false
	}
	child, ok := value.(*Compound)
	return child, ok
}

// GetString returns the string stored under name, if the entry exists
// and is a string.
func (c *Compound) GetString(name string) (string, bool) {
	value, found := c.Get(name)
	if !found {
		return "", false
	}
	str, ok := value.(String)
	return string(str), ok
}
