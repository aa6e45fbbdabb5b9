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

// Package conv holds the conversation collaborator used to obtain credentials
// from the user during verify.
package conv

import (
	"time"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/secret"
)

// Conversation obtains a credential from the user. A zero timeout blocks
// until input arrives. Implementations return ErrPromptInterrupted when the
// user aborts the input and ErrPromptTimeout when the timeout expires; no
// credential is returned in either case.
type Conversation interface {
	Prompt(text string, echo definitions.EchoMode, timeout time.Duration) (secret.Value, error)
}

// The ConversationFunc type is an adapter to allow the use of ordinary
// functions as conversations.
type ConversationFunc func(text string, echo definitions.EchoMode, timeout time.Duration) (secret.Value, error)

// Prompt calls f(text, echo, timeout).
func (f ConversationFunc) Prompt(text string, echo definitions.EchoMode, timeout time.Duration) (secret.Value, error) {
	return f(text, echo, timeout)
}
