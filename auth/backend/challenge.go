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

	"github.com/croessner/elevate/auth/conv"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/native"
	"github.com/croessner/elevate/auth/secret"
)

type challengeState struct {
	sess  native.Session
	class native.Class
	style string
}

// ChallengeBackend drives a challenge/response capable session mechanism.
// Init resolves the target user's login class and authentication style and
// opens the native session; verify supports a mechanism issued challenge with
// the visible re-prompt convention for one-time codes.
type ChallengeBackend struct {
	opener  native.Opener
	classes native.ClassResolver
	state   *challengeState
}

// NewChallengeBackend returns an uninitialized challenge/response backend.
func NewChallengeBackend(opener native.Opener, classes native.ClassResolver) *ChallengeBackend {
	return &ChallengeBackend{opener: opener, classes: classes}
}

// Tag implements the Backend interface.
func (b *ChallengeBackend) Tag() definitions.Backend {
	return definitions.BackendChallenge
}

// Init implements the Backend interface. The login class is based on the auth
// user, which may not be the invoking user.
func (b *ChallengeBackend) Init(a *Attempt, ident *identity.Identity) definitions.Outcome {
	if ident == nil {
		return definitions.AuthFatal
	}

	className := ident.LoginClass
	if className == "" {
		if ident.UID == 0 {
			className = definitions.DefaultRootLoginClass
		} else {
			className = definitions.DefaultLoginClass
		}
	}

	class, err := b.classes.Get(className)
	if err != nil {
		detailed := errors.ErrNoLoginClass.WithGUID(a.GUID).WithDetail(err.Error())
		log.Warning(detailed, log.UseErrno|log.NoMail, "unable to get login class for user %s", ident.Username)

		return definitions.AuthFatal
	}

	style := class.Style(a.LoginStyle, definitions.DefaultLoginStyle)
	if style == "" {
		detailed := errors.ErrInvalidLoginStyle.WithGUID(a.GUID).WithDetail(a.LoginStyle)
		log.Warning(detailed, log.NoMail, "invalid authentication type")
		class.Close()

		return definitions.AuthFatal
	}

	sess, err := b.opener.Open(style, ident.Username)
	if err != nil {
		detailed := errors.ErrSessionOpen.WithGUID(a.GUID).WithDetail(err.Error())
		log.Warning(detailed, log.UseErrno|log.NoMail, "unable to begin challenge authentication")
		class.Close()

		return definitions.AuthFatal
	}

	// Later backends and the audit trail see the resolved style and class.
	a.LoginStyle = style
	a.LoginClass = class.Name()

	b.state = &challengeState{sess: sess, class: class, style: style}

	return definitions.AuthSuccess
}

// Verify implements the Backend interface.
//
// If the mechanism issued a challenge and the user just hits return on the
// first prompt, the last challenge line is shown again with echo turned on,
// which is useful for challenge/response things like one-time code lists.
// Only the second response is validated then.
func (b *ChallengeBackend) Verify(a *Attempt, _ *identity.Identity, prompt string) definitions.Outcome {
	if b.state == nil {
		log.Warning(errors.ErrNotInitialized, log.NoMail, "%s backend used before init", b.Tag().String())

		return definitions.AuthFatal
	}

	challenge, err := b.state.sess.Challenge()
	if err != nil {
		return definitions.AuthFatal
	}

	pass, err := conv.WithDefaultDisposition(conv.ChildSignal, a.RearmSignals, func() (secret.Value, error) {
		pass, promptErr := a.Conv.Prompt(prompt, definitions.EchoOff, a.PromptTimeout)
		if promptErr != nil || challenge == "" || !pass.IsZero() {
			return pass, promptErr
		}

		pass.Destroy()

		return a.Conv.Prompt(echoOnPrompt(challenge), definitions.EchoOn, a.PromptTimeout)
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

	outcome := ClassifyStatus(status)
	if outcome != definitions.AuthSuccess {
		if msg := b.state.sess.Value("errormsg"); msg != "" {
			log.Warning(nil, log.NoMail, "%s", msg)
		}
	}

	return outcome
}

// Cleanup implements the Backend interface.
func (b *ChallengeBackend) Cleanup(_ *Attempt, _ *identity.Identity) definitions.Outcome {
	if b.state == nil {
		return definitions.AuthSuccess
	}

	outcome := definitions.AuthSuccess

	if err := b.state.sess.Close(); err != nil {
		outcome = definitions.AuthFailure
	}

	if err := b.state.class.Close(); err != nil {
		outcome = definitions.AuthFailure
	}

	b.state = nil

	return outcome
}

// echoOnPrompt derives the visible re-prompt from the last challenge line,
// with trailing whitespace and colons removed and the echo marker appended.
func echoOnPrompt(challenge string) string {
	line := challenge
	if index := strings.LastIndex(challenge, "\n"); index >= 0 {
		line = challenge[index+1:]
	}

	line = strings.TrimRight(line, " \t:")

	return line + definitions.EchoOnSuffix
}
