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
	"github.com/croessner/elevate/auth/native"
	"github.com/stretchr/testify/assert"
)

func TestClassifyStatus(t *testing.T) {
	for _, tc := range []struct {
		status   native.Status
		expected definitions.Outcome
	}{
		{status: native.StatusOK, expected: definitions.AuthSuccess},
		{status: native.StatusDenied, expected: definitions.AuthFailure},
		{status: native.StatusNoUser, expected: definitions.AuthFailure},
		{status: native.StatusExpired, expected: definitions.AuthFailure},
		{status: native.StatusFault, expected: definitions.AuthFatal},
	} {
		assert.Equal(t, tc.expected, ClassifyStatus(tc.status), tc.status.String())
	}
}

func TestClassifyPromptError(t *testing.T) {
	for _, tc := range []struct {
		name     string
		err      error
		expected definitions.Outcome
	}{
		{name: "nil", err: nil, expected: definitions.AuthSuccess},
		{name: "interrupted", err: errors.ErrPromptInterrupted, expected: definitions.AuthIntr},
		{name: "timeout", err: errors.ErrPromptTimeout, expected: definitions.AuthIntr},
		{name: "no terminal", err: errors.ErrNoTerminal, expected: definitions.AuthFatal},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ClassifyPromptError(tc.err))
		})
	}
}
