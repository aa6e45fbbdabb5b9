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

package backend

import (
	"strings"
	"testing"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/simia-tech/crypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// c2Stored builds a stored protected password field the way the database
// entry would have been written: the transform is seeded with a complete
// crypt value so the settings can be recovered from it.
func c2Stored(t *testing.T, password string, transform string) string {
	t.Helper()

	seed, err := crypt.Crypt("", "$1$c2salt00$")
	require.NoError(t, err)

	stored, err := C2Transform(password, seed, transform)
	require.NoError(t, err)

	return stored
}

func initializedC2Backend(t *testing.T, transform string, stored string, c *scriptedConv) (*C2Backend, *Attempt) {
	t.Helper()

	b := NewC2Backend(transform)
	a := testAttempt(c)

	require.Equal(t, definitions.AuthSuccess, b.Init(a, passwdIdentity(stored)))

	return b, a
}

func TestC2VerifyDispatchTransform(t *testing.T) {
	stored := c2Stored(t, "letmein", definitions.C2TransformDispatch)

	for _, tc := range []struct {
		name     string
		response string
		expected definitions.Outcome
	}{
		{name: "match", response: "letmein", expected: definitions.AuthSuccess},
		{name: "mismatch", response: "letmeout", expected: definitions.AuthFailure},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &scriptedConv{script: []scriptedPrompt{{response: tc.response}}}
			b, a := initializedC2Backend(t, definitions.C2TransformDispatch, stored, c)

			assert.Equal(t, tc.expected, b.Verify(a, passwdIdentity(stored), "C2 Password: "))
		})
	}
}

func TestC2VerifySegmentedTransform(t *testing.T) {
	// Longer than one eight byte segment, so the concatenating transform is
	// actually exercised across segment boundaries.
	password := "correct horse battery staple"
	stored := c2Stored(t, password, definitions.C2TransformSegmented)

	c := &scriptedConv{script: []scriptedPrompt{{response: password}}}
	b, a := initializedC2Backend(t, definitions.C2TransformSegmented, stored, c)

	assert.Equal(t, definitions.AuthSuccess, b.Verify(a, passwdIdentity(stored), "C2 Password: "))
}

func TestC2SegmentedRejectsTruncatedMatch(t *testing.T) {
	// A password agreeing only on the first eight bytes must be rejected;
	// the bytes beyond one crypt unit still count.
	stored := c2Stored(t, "longpassword", definitions.C2TransformSegmented)

	c := &scriptedConv{script: []scriptedPrompt{{response: "longpassX"}}}
	b, a := initializedC2Backend(t, definitions.C2TransformSegmented, stored, c)

	assert.Equal(t, definitions.AuthFailure, b.Verify(a, passwdIdentity(stored), "C2 Password: "))
}

func TestC2VerifyWithoutInitIsFatal(t *testing.T) {
	b := NewC2Backend(definitions.C2TransformDispatch)

	assert.Equal(t, definitions.AuthFatal, b.Verify(testAttempt(&scriptedConv{}), passwdIdentity(""), "C2 Password: "))
}

func TestC2VerifyInterrupted(t *testing.T) {
	stored := c2Stored(t, "letmein", definitions.C2TransformDispatch)
	c := &scriptedConv{script: []scriptedPrompt{{err: errors.ErrPromptInterrupted}}}

	b, a := initializedC2Backend(t, definitions.C2TransformDispatch, stored, c)

	assert.Equal(t, definitions.AuthIntr, b.Verify(a, passwdIdentity(stored), "C2 Password: "))
}

func TestC2EmptyStoredField(t *testing.T) {
	for _, tc := range []struct {
		name     string
		response string
		expected definitions.Outcome
	}{
		{name: "empty response matches", response: "", expected: definitions.AuthSuccess},
		{name: "non-empty response fails", response: "anything", expected: definitions.AuthFailure},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := &scriptedConv{script: []scriptedPrompt{{response: tc.response}}}
			b, a := initializedC2Backend(t, definitions.C2TransformDispatch, "", c)

			assert.Equal(t, tc.expected, b.Verify(a, passwdIdentity(""), "C2 Password: "))
		})
	}
}

func TestC2UndecodableStoredValueIsFailure(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{response: "letmein"}}}
	b, a := initializedC2Backend(t, definitions.C2TransformSegmented, "not-a-crypt-value", c)

	assert.Equal(t, definitions.AuthFailure, b.Verify(a, passwdIdentity("not-a-crypt-value"), "C2 Password: "))
}

func TestC2VerifyScrubsCredential(t *testing.T) {
	stored := c2Stored(t, "letmein", definitions.C2TransformDispatch)
	c := &scriptedConv{script: []scriptedPrompt{{response: "letmein"}}}

	b, a := initializedC2Backend(t, definitions.C2TransformDispatch, stored, c)
	b.Verify(a, passwdIdentity(stored), "C2 Password: ")

	require.Len(t, c.issued, 1)
	assertScrubbed(t, c.issued)
}

func TestC2CleanupIsIdempotent(t *testing.T) {
	b, a := initializedC2Backend(t, definitions.C2TransformDispatch, "x", &scriptedConv{})

	assert.Equal(t, definitions.AuthSuccess, b.Cleanup(a, nil))
	assert.Equal(t, definitions.AuthSuccess, b.Cleanup(a, nil))
}

func TestC2TransformSegmentedShape(t *testing.T) {
	stored := c2Stored(t, "abcdefghij", definitions.C2TransformSegmented)
	short := c2Stored(t, "abcdefgh", definitions.C2TransformSegmented)

	// The concatenated form for a two segment password is strictly longer
	// than the single segment form and shares its settings prefix.
	assert.Greater(t, len(stored), len(short))
	assert.True(t, strings.HasPrefix(stored, "$1$c2salt00$"))
}
