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
	"os"
	"testing"
	"time"

	"github.com/croessner/elevate/auth/config"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/native"
	"github.com/croessner/elevate/auth/secret"
)

func TestMain(m *testing.M) {
	config.EnvConfig = &config.Config{Verbosity: &config.Verbosity{}}
	log.SetupLogging(definitions.LogLevelNone, false, false, "test")

	os.Exit(m.Run())
}

type promptCall struct {
	text string
	echo definitions.EchoMode
}

type scriptedPrompt struct {
	response string
	err      error
}

// scriptedConv replays canned prompt responses and records every call plus
// the secret values it handed out, so tests can check they were scrubbed.
type scriptedConv struct {
	script []scriptedPrompt
	calls  []promptCall
	issued []secret.Value
}

func (c *scriptedConv) Prompt(text string, echo definitions.EchoMode, _ time.Duration) (secret.Value, error) {
	c.calls = append(c.calls, promptCall{text: text, echo: echo})

	if len(c.script) == 0 {
		return secret.Value{}, nil
	}

	next := c.script[0]
	c.script = c.script[1:]

	if next.err != nil {
		return secret.Value{}, next.err
	}

	value := secret.New(next.response)
	c.issued = append(c.issued, value)

	return value, nil
}

type fakeSession struct {
	challenge    string
	challengeErr error
	accept       string
	status       *native.Status
	respondErr   error
	values       map[string]string
	responses    []string
	closed       bool
	closeErr     error
}

func (s *fakeSession) Challenge() (string, error) {
	return s.challenge, s.challengeErr
}

func (s *fakeSession) Respond(response string) (native.Status, error) {
	s.responses = append(s.responses, response)

	if s.respondErr != nil {
		return native.StatusFault, s.respondErr
	}

	if s.status != nil {
		return *s.status, nil
	}

	if response == s.accept {
		return native.StatusOK, nil
	}

	return native.StatusDenied, nil
}

func (s *fakeSession) Value(key string) string {
	return s.values[key]
}

func (s *fakeSession) Close() error {
	s.closed = true

	return s.closeErr
}

type fakeOpener struct {
	sess      *fakeSession
	err       error
	style     string
	usernames []string
}

func (o *fakeOpener) Open(style string, username string) (native.Session, error) {
	o.style = style
	o.usernames = append(o.usernames, username)

	if o.err != nil {
		return nil, o.err
	}

	return o.sess, nil
}

type fakeClassResolver struct {
	inner    native.ClassResolver
	err      error
	requests []string
}

func (r *fakeClassResolver) Get(name string) (native.Class, error) {
	r.requests = append(r.requests, name)

	if r.err != nil {
		return nil, r.err
	}

	return r.inner.Get(name)
}

func assertScrubbed(t *testing.T, issued []secret.Value) {
	t.Helper()

	for index, value := range issued {
		value.WithBytes(func(buf []byte) {
			for _, b := range buf {
				if b != 0 {
					t.Errorf("credential %d was not scrubbed", index)

					return
				}
			}
		})
	}
}

func testAttempt(c *scriptedConv) *Attempt {
	return &Attempt{GUID: "test", Conv: c}
}

func passwdIdentity(hash string) *identity.Identity {
	return &identity.Identity{Username: "alice", UID: 1000, Password: hash}
}
