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

// Package backend implements the credential backends. Every backend drives
// one native authentication mechanism through the same init, verify and
// cleanup contract; the dispatcher in the core package never sees anything
// mechanism specific.
package backend

import (
	"os"
	"time"

	"github.com/croessner/elevate/auth/config"
	"github.com/croessner/elevate/auth/conv"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/native"
)

// Attempt is the per-attempt state threaded through every backend operation.
// It replaces what used to be process wide globals (the login style in
// particular); nothing in here is shared between two authentication attempts.
type Attempt struct {
	// GUID identifies the attempt in logs.
	GUID string

	// Conv is the conversation collaborator used to obtain credentials.
	Conv conv.Conversation

	// PromptTimeout is passed to the conversation on every prompt.
	PromptTimeout time.Duration

	// LoginStyle is the requested authentication style. Session backends
	// update it to the style actually resolved during init.
	LoginStyle string

	// LoginClass is the name of the login class resolved during init; empty
	// until a class-aware backend initialized.
	LoginClass string

	// RearmSignals are notification channels re-armed after a guarded prompt.
	RearmSignals []chan<- os.Signal
}

// Backend is one compiled credential mechanism. Verify is only called after
// Init returned success on the same instance, and Cleanup exactly once per
// instance whose Init succeeded; the dispatcher enforces both.
type Backend interface {
	// Tag returns the numeric backend identifier.
	Tag() definitions.Backend

	// Init acquires the per-identity resources of the mechanism.
	Init(a *Attempt, ident *identity.Identity) definitions.Outcome

	// Verify obtains a credential through the conversation and validates it.
	Verify(a *Attempt, ident *identity.Identity, prompt string) definitions.Outcome

	// Cleanup releases everything Init acquired.
	Cleanup(a *Attempt, ident *identity.Identity) definitions.Outcome
}

// Mechanisms bundles the native collaborators a registry hands to its
// backends.
type Mechanisms struct {
	// Opener creates native sessions for the challenge and session backends.
	Opener native.Opener

	// Classes resolves login classes for the challenge backend.
	Classes native.ClassResolver
}

// Registry is the ordered, read-only set of configured backend instances of
// one process invocation. Order is taken verbatim from the configuration;
// there is no re-ordering at runtime.
type Registry struct {
	backends []Backend
}

// NewRegistry builds the registry from the ordered auth_backends list.
func NewRegistry(cfg *config.Config, mechs Mechanisms) (*Registry, error) {
	registry := &Registry{}

	for _, tag := range cfg.AuthBackends {
		switch tag.Get() {
		case definitions.BackendPasswd:
			registry.backends = append(registry.backends, NewPasswdBackend())
		case definitions.BackendC2:
			registry.backends = append(registry.backends, NewC2Backend(cfg.C2Transform.Get()))
		case definitions.BackendChallenge:
			registry.backends = append(registry.backends, NewChallengeBackend(mechs.Opener, mechs.Classes))
		case definitions.BackendSession:
			registry.backends = append(registry.backends, NewSessionBackend(mechs.Opener))
		default:
			return nil, errors.ErrUnknownBackend
		}
	}

	return registry, nil
}

// NewTestRegistry wraps a fixed backend list. Used by tests and callers that
// assemble backends themselves.
func NewTestRegistry(backends ...Backend) *Registry {
	return &Registry{backends: backends}
}

// Backends returns the backend instances in configuration order.
func (r *Registry) Backends() []Backend {
	return r.backends
}

// Len returns the number of configured backends.
func (r *Registry) Len() int {
	return len(r.backends)
}
