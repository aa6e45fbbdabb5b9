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
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/util"
)

type passwdState struct {
	hash string
}

// PasswdBackend compares a user entered credential against the encrypted
// password field of the identity record. The one-way transform is seeded with
// the stored value, byte-equal transformed strings mean a match.
type PasswdBackend struct {
	state *passwdState
}

// NewPasswdBackend returns an uninitialized password database backend.
func NewPasswdBackend() *PasswdBackend {
	return &PasswdBackend{}
}

// Tag implements the Backend interface.
func (b *PasswdBackend) Tag() definitions.Backend {
	return definitions.BackendPasswd
}

// Init implements the Backend interface. The stored hash is captured into
// backend private state; it must not be re-read during verify.
func (b *PasswdBackend) Init(_ *Attempt, ident *identity.Identity) definitions.Outcome {
	if ident == nil {
		return definitions.AuthFatal
	}

	b.state = &passwdState{hash: ident.Password}

	return definitions.AuthSuccess
}

// Verify implements the Backend interface.
func (b *PasswdBackend) Verify(a *Attempt, ident *identity.Identity, prompt string) definitions.Outcome {
	if b.state == nil {
		log.Warning(errors.ErrNotInitialized, log.NoMail, "%s backend used before init", b.Tag().String())

		return definitions.AuthFatal
	}

	pass, err := a.Conv.Prompt(prompt, definitions.EchoOff, a.PromptTimeout)
	if err != nil {
		return ClassifyPromptError(err)
	}

	defer pass.Destroy()

	// An empty stored field only ever matches an empty credential.
	if b.state.hash == "" {
		if pass.IsZero() {
			return definitions.AuthSuccess
		}

		return definitions.AuthFailure
	}

	outcome := definitions.AuthFailure

	pass.WithString(func(plain string) {
		match, cmpErr := util.ComparePasswords(b.state.hash, plain)
		if cmpErr != nil {
			log.Warning(cmpErr, log.NoMail, "unable to transform password for user %s", ident.Username)

			return
		}

		if match {
			outcome = definitions.AuthSuccess
		}
	})

	return outcome
}

// Cleanup implements the Backend interface.
func (b *PasswdBackend) Cleanup(_ *Attempt, _ *identity.Identity) definitions.Outcome {
	b.state = nil

	return definitions.AuthSuccess
}
