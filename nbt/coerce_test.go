// SPDX-License-Identifier: GPL-3.0-or-later

package nbt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Int64Value widens integer kinds and rejects everything else.
func TestInt64Value(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// value is the input value.
		value Value

		// want is the widened result.
		want int64

		// wantOK indicates whether coercion should succeed.
		wantOK bool
	}{
		{name: "byte", value: Byte(-5), want: -5, wantOK: true},
		{name: "short", value: Short(-300), want: -300, wantOK: true},
		{name: "int", value: Int(70000), want: 70000, wantOK: true},
		{name: "long", value: Long(1 << 40), want: 1 << 40, wantOK: true},
		{name: "float rejected", value: Float(1.0), wantOK: false},
		{name: "double rejected", value: Double(1.0), wantOK: false},
		{name: "string rejected", value: String("42"), wantOK: false},
		{name: "compound rejected", value: NewCompound(), wantOK: false},
		{name: "nil rejected", value: nil, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Int64Value(tt.value)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// BoolValue treats any nonzero numeric as true and rejects non-numerics.
func TestBoolValue(t *testing.T) {
	tests := []struct {
		// name describes what this test case verifies.
		name string

		// value is the input value.
		value Value

		// want is the expected flag.
		want bool

		// wantOK indicates whether coercion should succeed.
		wantOK bool
	}{
		{name: "byte zero", value: Byte(0), want: false, wantOK: true},
		{name: "byte one", value: Byte(1), want: true, wantOK: true},
		{name: "short nonzero", value: Short(-2), want: true, wantOK: true},
		{name: "int zero", value: Int(0), want: false, wantOK: true},
		{name: "long nonzero", value: Long(9), want: true, wantOK: true},
		{name: "float nonzero", value: Float(0.5), want: true, wantOK: true},
		{name: "double zero", value: Double(0), want: false, wantOK: true},
		{name: "string rejected", value: String("true"), wantOK: false},
		{name: "list rejected", value: &List{ElemType: TagEnd}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BoolValue(tt.value)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
