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
	"github.com/croessner/elevate/auth/conv"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/native"
	"github.com/croessner/elevate/auth/secret"
)

type sessionState struct {
	sess native.Session
}

// SessionBackend delegates credential validation to an opaque native session.
// Success and failure come back as a raw status translated by the result
// classifier; the backend itself knows nothing about the mechanism's notion
// of correctness.
type SessionBackend struct {
	opener native.Opener
	state  *sessionState
}

// NewSessionBackend returns an uninitialized generic session backend.
func NewSessionBackend(opener native.Opener) *SessionBackend {
	return &SessionBackend{opener: opener}
}

// Tag implements the Backend interface.
func (b *SessionBackend) Tag() definitions.Backend {
	return definitions.BackendSession
}

// Init implements the Backend interface.
func (b *SessionBackend) Init(a *Attempt, ident *identity.Identity) definitions.Outcome {
	if ident == nil {
		return definitions.AuthFatal
	}

	sess, err := b.opener.Open(a.LoginStyle, ident.Username)
	if err != nil {
		detailed := errors.ErrSessionSetup.WithGUID(a.GUID).WithDetail(err.Error())
		log.Warning(detailed, log.UseErrno|log.NoMail, "unable to begin session authentication")

		return definitions.AuthFatal
	}

	b.state = &sessionState{sess: sess}

	return definitions.AuthSuccess
}

// Verify implements the Backend interface.
func (b *SessionBackend) Verify(a *Attempt, _ *identity.Identity, prompt string) definitions.Outcome {
	if b.state == nil {
		log.Warning(errors.ErrNotInitialized, log.NoMail, "%s backend used before init", b.Tag().String())

		return definitions.AuthFatal
	}

	pass, err := conv.WithDefaultDisposition(conv.ChildSignal, a.RearmSignals, func() (secret.Value, error) {
		return a.Conv.Prompt(prompt, definitions.EchoOff, a.PromptTimeout)
	})
	if err != nil {
		return ClassifyPromptError(err)
	}

	defer pass.Destroy()

	var (
		status     native.Status
		respondErr error
	)

	pass.WithString(func(plain string) {
		status, respondErr = b.state.sess.Respond(plain)
	})

	if respondErr != nil {
		return definitions.AuthFatal
	}

	return ClassifyStatus(status)
}

// Cleanup implements the Backend interface.
func (b *SessionBackend) Cleanup(_ *Attempt, _ *identity.Identity) definitions.Outcome {
	if b.state == nil {
		return definitions.AuthSuccess
	}

	outcome := definitions.AuthSuccess

	if err := b.state.sess.Close(); err != nil {
		outcome = definitions.AuthFailure
	}

	b.state = nil

	return outcome
}
