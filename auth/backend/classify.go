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
	stderrors "errors"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/native"
)

// ClassifyStatus maps the raw status vocabulary of a native mechanism onto
// the shared outcome taxonomy. A wrong credential and a missing user are both
// plain failures; only a broken mechanism is fatal.
func ClassifyStatus(status native.Status) definitions.Outcome {
	switch status {
	case native.StatusOK:
		return definitions.AuthSuccess
	case native.StatusDenied, native.StatusNoUser, native.StatusExpired:
		return definitions.AuthFailure
	default:
		return definitions.AuthFatal
	}
}

// ClassifyPromptError maps a conversation error onto an outcome. Both an
// interrupted prompt and an expired timeout mean no credential was obtainable
// and count as a user initiated abort, not as a policy failure. Anything else
// means the conversation channel itself is broken.
func ClassifyPromptError(err error) definitions.Outcome {
	if err == nil {
		return definitions.AuthSuccess
	}

	if stderrors.Is(err, errors.ErrPromptInterrupted) || stderrors.Is(err, errors.ErrPromptTimeout) {
		return definitions.AuthIntr
	}

	return definitions.AuthFatal
}
