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
	"crypto/subtle"
	"strings"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/util"
	"github.com/simia-tech/crypt"
)

type c2State struct {
	hash string
}

// C2Backend verifies credentials against a C2 style protected password
// database. Which of the two vendor one-way transforms is applied was decided
// when the registry was built; it never changes per verify call.
type C2Backend struct {
	transform string
	state     *c2State
}

// NewC2Backend returns an uninitialized C2 backend using the given transform.
func NewC2Backend(transform string) *C2Backend {
	return &C2Backend{transform: transform}
}

// Tag implements the Backend interface.
func (b *C2Backend) Tag() definitions.Backend {
	return definitions.BackendC2
}

// Init implements the Backend interface.
func (b *C2Backend) Init(_ *Attempt, ident *identity.Identity) definitions.Outcome {
	if ident == nil {
		return definitions.AuthFatal
	}

	b.state = &c2State{hash: ident.Password}

	return definitions.AuthSuccess
}

// Verify implements the Backend interface.
func (b *C2Backend) Verify(a *Attempt, ident *identity.Identity, prompt string) definitions.Outcome {
	if b.state == nil {
		log.Warning(errors.ErrNotInitialized, log.NoMail, "%s backend used before init", b.Tag().String())

		return definitions.AuthFatal
	}

	pass, err := a.Conv.Prompt(prompt, definitions.EchoOff, a.PromptTimeout)
	if err != nil {
		return ClassifyPromptError(err)
	}

	defer pass.Destroy()

	if b.state.hash == "" {
		if pass.IsZero() {
			return definitions.AuthSuccess
		}

		return definitions.AuthFailure
	}

	outcome := definitions.AuthFailure

	pass.WithString(func(plain string) {
		encoded, encErr := C2Transform(plain, b.state.hash, b.transform)
		if encErr != nil {
			log.Warning(encErr, log.NoMail, "unable to transform password for user %s", ident.Username)

			return
		}

		if subtle.ConstantTimeCompare([]byte(encoded), []byte(b.state.hash)) == 1 {
			outcome = definitions.AuthSuccess
		}
	})

	return outcome
}

// Cleanup implements the Backend interface.
func (b *C2Backend) Cleanup(_ *Attempt, _ *identity.Identity) definitions.Outcome {
	b.state = nil

	return definitions.AuthSuccess
}

// C2Transform applies one of the two vendor one-way transforms. The dispatch
// transform runs the plain crypt(3) style transform seeded by the stored
// value. The segmented transform processes the password in eight byte
// segments, concatenating the per-segment digests, so passwords longer than a
// single crypt unit contribute all of their bytes.
func C2Transform(plainPassword string, storedValue string, transform string) (string, error) {
	if transform != definitions.C2TransformSegmented {
		return util.CryptTransform(plainPassword, storedValue)
	}

	_, _, _, pwhash, err := crypt.DecodeSettings(storedValue)
	if err != nil {
		return "", err
	}

	settings, _, _ := strings.Cut(storedValue, pwhash)

	var result strings.Builder

	for index, segment := range segments(plainPassword, 8) {
		encoded, encErr := crypt.Crypt(segment, settings)
		if encErr != nil {
			return "", encErr
		}

		if index == 0 {
			result.WriteString(encoded)
		} else {
			result.WriteString(strings.TrimPrefix(encoded, settings))
		}
	}

	return result.String(), nil
}

func segments(value string, size int) []string {
	if value == "" {
		return []string{""}
	}

	var parts []string

	for len(value) > size {
		parts = append(parts, value[:size])
		value = value[size:]
	}

	return append(parts, value)
}
