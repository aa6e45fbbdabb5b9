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
	"testing"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/simia-tech/crypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func md5Hash(t *testing.T, password string) string {
	t.Helper()

	hash, err := crypt.Crypt(password, "$1$testsalt$")
	require.NoError(t, err)

	return hash
}

func TestPasswdVerifyMatch(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{response: "letmein"}}}
	b := NewPasswdBackend()

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), passwdIdentity(md5Hash(t, "letmein"))))
	assert.Equal(t, definitions.AuthSuccess, b.Verify(testAttempt(c), passwdIdentity(md5Hash(t, "letmein")), "Password: "))

	require.Len(t, c.calls, 1)
	assert.Equal(t, definitions.EchoOff, c.calls[0].echo)
	assert.Equal(t, "Password: ", c.calls[0].text)
}

func TestPasswdVerifyMismatch(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{response: "wrong"}}}
	b := NewPasswdBackend()

	ident := passwdIdentity(md5Hash(t, "letmein"))

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
	assert.Equal(t, definitions.AuthFailure, b.Verify(testAttempt(c), ident, "Password: "))
}

func TestPasswdVerifyWithoutInitIsFatal(t *testing.T) {
	c := &scriptedConv{}
	b := NewPasswdBackend()

	assert.Equal(t, definitions.AuthFatal, b.Verify(testAttempt(c), passwdIdentity("x"), "Password: "))
	assert.Empty(t, c.calls)
}

func TestPasswdVerifyInterrupted(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{err: errors.ErrPromptInterrupted}}}
	b := NewPasswdBackend()

	ident := passwdIdentity(md5Hash(t, "letmein"))

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
	assert.Equal(t, definitions.AuthIntr, b.Verify(testAttempt(c), ident, "Password: "))
}

func TestPasswdVerifyTimeout(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{err: errors.ErrPromptTimeout}}}
	b := NewPasswdBackend()

	ident := passwdIdentity(md5Hash(t, "letmein"))

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
	assert.Equal(t, definitions.AuthIntr, b.Verify(testAttempt(c), ident, "Password: "))
}

func TestPasswdEmptyStoredField(t *testing.T) {
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
			b := NewPasswdBackend()

			ident := passwdIdentity("")

			require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
			assert.Equal(t, tc.expected, b.Verify(testAttempt(c), ident, "Password: "))
		})
	}
}

func TestPasswdUndecodableHashIsFailure(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{response: "letmein"}}}
	b := NewPasswdBackend()

	ident := passwdIdentity("not-a-hash")

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
	assert.Equal(t, definitions.AuthFailure, b.Verify(testAttempt(c), ident, "Password: "))
}

func TestPasswdInitNilIdentityIsFatal(t *testing.T) {
	b := NewPasswdBackend()

	assert.Equal(t, definitions.AuthFatal, b.Init(testAttempt(&scriptedConv{}), nil))
}

func TestPasswdVerifyScrubsCredential(t *testing.T) {
	c := &scriptedConv{script: []scriptedPrompt{{response: "letmein"}}}
	b := NewPasswdBackend()

	ident := passwdIdentity(md5Hash(t, "letmein"))

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(c), ident))
	b.Verify(testAttempt(c), ident, "Password: ")

	require.Len(t, c.issued, 1)

	c.issued[0].WithBytes(func(buf []byte) {
		for _, value := range buf {
			assert.Zero(t, value)
		}
	})
}

func TestPasswdCleanupIsIdempotent(t *testing.T) {
	b := NewPasswdBackend()

	require.Equal(t, definitions.AuthSuccess, b.Init(testAttempt(&scriptedConv{}), passwdIdentity("x")))
	assert.Equal(t, definitions.AuthSuccess, b.Cleanup(nil, nil))
	assert.Equal(t, definitions.AuthSuccess, b.Cleanup(nil, nil))
}
