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

// Package core drives one authentication attempt across the configured
// backend registry.
package core

import (
	"github.com/croessner/elevate/auth/backend"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/stats"
	"github.com/croessner/elevate/auth/util"
	"github.com/go-kit/log/level"
)

// Dispatcher runs the init, verify and cleanup lifecycle over an ordered
// backend registry and folds the per-backend outcomes into one result. The
// configured mechanisms are alternative proofs of identity, so the verify
// pass is a logical OR with failure as the default until one backend
// succeeds.
type Dispatcher struct {
	registry *backend.Registry
}

// NewDispatcher returns a Dispatcher over the given registry.
func NewDispatcher(registry *backend.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Authenticate performs one full dispatch pass for the given identity.
// Callers must only distinguish AuthResultOK from everything else; the other
// results exist for the audit trail, not for granting access.
func (d *Dispatcher) Authenticate(a *backend.Attempt, ident *identity.Identity, prompt string) definitions.AuthResult {
	if d.registry.Len() == 0 {
		level.Error(log.Logger).Log(
			definitions.LogKeyGUID, a.GUID,
			definitions.LogKeyError, errors.ErrNoBackends,
		)

		stats.AuthResultsCounter.WithLabelValues(definitions.AuthResultTempFail.String()).Inc()

		return definitions.AuthResultTempFail
	}

	result := definitions.AuthResultUnset

	// Init pass. A fatal init aborts the whole dispatch; backends after the
	// fatal one are neither initialized nor cleaned up.
	var initialized, eligible []backend.Backend

	for _, b := range d.registry.Backends() {
		outcome := b.Init(a, ident)
		logOperation(a, b, definitions.AuthOpInit, outcome)

		if outcome == definitions.AuthSuccess {
			initialized = append(initialized, b)
			eligible = append(eligible, b)

			continue
		}

		result = definitions.AuthResultTempFail

		break
	}

	// Verify pass over the backends whose init succeeded, in the same order.
	// The first success wins; later backends are not consulted.
	if result == definitions.AuthResultUnset {
	verify:
		for _, b := range eligible {
			outcome := b.Verify(a, ident, prompt)
			logOperation(a, b, definitions.AuthOpVerify, outcome)

			switch outcome {
			case definitions.AuthSuccess:
				result = definitions.AuthResultOK

				break verify
			case definitions.AuthIntr:
				result = definitions.AuthResultAbort

				break verify
			case definitions.AuthFatal:
				result = definitions.AuthResultTempFail

				break verify
			default:
				// Failure: try the next backend.
			}
		}
	}

	if result == definitions.AuthResultUnset {
		result = definitions.AuthResultFail
	}

	// Terminal cleanup pass, always, for every backend that was initialized.
	// Cleanup failures are logged, never escalated past the decided result.
	for _, b := range initialized {
		outcome := b.Cleanup(a, ident)
		logOperation(a, b, definitions.AuthOpCleanup, outcome)

		if outcome != definitions.AuthSuccess {
			level.Warn(log.Logger).Log(
				definitions.LogKeyGUID, a.GUID,
				definitions.LogKeyBackend, b.Tag().String(),
				definitions.LogKeyMsg, "backend cleanup failed",
			)
		}
	}

	level.Info(log.Logger).Log(
		definitions.LogKeyGUID, a.GUID,
		definitions.LogKeyUsername, ident.Username,
		definitions.LogKeyLoginClass, util.WithNotAvailable(a.LoginClass),
		definitions.LogKeyLoginStyle, util.WithNotAvailable(a.LoginStyle),
		definitions.LogKeyAuthResult, result.String(),
	)

	stats.AuthResultsCounter.WithLabelValues(result.String()).Inc()

	return result
}

func logOperation(a *backend.Attempt, b backend.Backend, operation string, outcome definitions.Outcome) {
	stats.BackendOutcomeCounter.WithLabelValues(b.Tag().String(), operation, outcome.String()).Inc()

	util.DebugModule(
		definitions.DbgDispatch,
		definitions.LogKeyGUID, a.GUID,
		definitions.LogKeyBackend, b.Tag().String(),
		definitions.LogKeyOperation, operation,
		definitions.LogKeyOutcome, outcome.String(),
	)
}
