// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

// Int64Value widens value to a signed 64-bit integer when it is one of
// the integer kinds (Byte, Short, Int, Long). The second result is
// false for every other kind, including floats: world-metadata fields
// change integer width across save-format generations, but a float in
// an integer slot is corruption, not a width variation.
func Int64Value(value Value) (int64, bool) {
	switch v := value.(type) {
	case Byte:
		return int64(v), true
	case Short:
		return int64(v), true
	case Int:
		return int64(v), true
	case Long:
		return int64(v), true
	default:
		return 0, false
	}
}

// BoolValue interprets any numeric value as a flag: nonzero means true.
// The second result is false when value is not numeric. Save formats
// store flags like "hardcore" as Byte or Int depending on generation.
func BoolValue(value Value) (bool, bool) {
	switch v := value.(type) {
	case Byte:
		return v != 0, true
	case Short:
		return v != 0, true
	case Int:
		return v != 0, true
	case Long:
		return v != 0, true
	case Float:
		return v != 0, true
	case Double:
		return v != 0, true
	default:
		return false, false
	}
}
