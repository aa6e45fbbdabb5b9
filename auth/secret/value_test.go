// Copyright (C) 2024 Christian Rößner
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndZero(t *testing.T) {
	assert.True(t, New("").IsZero())
	assert.True(t, Value{}.IsZero())

	v := New("hunter2")
	assert.False(t, v.IsZero())
	assert.Equal(t, 7, v.Len())
}

func TestFromBytesCopiesInput(t *testing.T) {
	buf := []byte("hunter2")
	v := FromBytes(buf)

	buf[0] = 'X'

	v.WithString(func(s string) {
		assert.Equal(t, "hunter2", s)
	})
}

func TestEqual(t *testing.T) {
	assert.True(t, New("same").Equal(New("same")))
	assert.False(t, New("same").Equal(New("other")))
	assert.True(t, New("").Equal(Value{}))
}

func TestWithBytesClearsScratchBuffer(t *testing.T) {
	v := New("hunter2")

	var leaked []byte

	v.WithBytes(func(buf []byte) {
		leaked = buf
	})

	for _, b := range leaked {
		assert.Zero(t, b)
	}

	// The value itself is still intact after scoped access.
	v.WithString(func(s string) {
		assert.Equal(t, "hunter2", s)
	})
}

func TestWithBytesEmptyValue(t *testing.T) {
	called := false

	Value{}.WithBytes(func(buf []byte) {
		called = true

		assert.Nil(t, buf)
	})

	assert.True(t, called)
}

func TestDestroyScrubsSharedBackingArray(t *testing.T) {
	v := New("hunter2")
	shared := v

	v.Destroy()

	assert.True(t, v.IsZero())

	// Copies made before Destroy see only zeroed bytes.
	shared.WithBytes(func(buf []byte) {
		for _, b := range buf {
			assert.Zero(t, b)
		}
	})
}

func TestDestroyIsIdempotentAndNilSafe(t *testing.T) {
	v := New("hunter2")
	v.Destroy()
	v.Destroy()

	var nilValue *Value

	assert.NotPanics(t, func() {
		nilValue.Destroy()
	})
}
