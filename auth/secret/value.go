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
	"bytes"
)

// Value stores credential material and provides scoped access helpers. Every
// code path that obtained a Value from the conversation collaborator must call
// Destroy before returning.
type Value struct {
	data []byte
}

// New wraps a string secret into a Value.
func New(value string) Value {
	if value == "" {
		return Value{}
	}

	return Value{data: []byte(value)}
}

// FromBytes wraps a byte slice secret into a Value. The input is copied, the
// caller keeps ownership of its buffer.
func FromBytes(value []byte) Value {
	if len(value) == 0 {
		return Value{}
	}

	return Value{data: bytes.Clone(value)}
}

// IsZero reports whether the secret is empty.
func (v Value) IsZero() bool {
	return len(v.data) == 0
}

// Len returns the secret length in bytes.
func (v Value) Len() int {
	return len(v.data)
}

// Equal compares two secrets byte-wise. Not constant-time; use the crypt
// helpers for credential comparison.
func (v Value) Equal(other Value) bool {
	return bytes.Equal(v.data, other.data)
}

// WithBytes provides a temporary byte slice to the caller and clears it
// afterwards.
func (v Value) WithBytes(fn func([]byte)) {
	if len(v.data) == 0 {
		fn(nil)

		return
	}

	buf := bytes.Clone(v.data)

	defer clear(buf)

	fn(buf)
}

// WithString provides a temporary string to the caller.
// Avoid for long-lived strings; prefer WithBytes when possible.
func (v Value) WithString(fn func(string)) {
	v.WithBytes(func(buf []byte) {
		fn(string(buf))
	})
}

// Destroy scrubs the backing buffer in place. The Value is empty afterwards;
// copies of the Value share the same backing array and are scrubbed as well.
func (v *Value) Destroy() {
	if v == nil || v.data == nil {
		return
	}

	clear(v.data)

	v.data = nil
}
