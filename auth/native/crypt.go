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

package native

import (
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/util"
)

// CryptAuthority is the in-process reference mechanism. It validates
// responses against the encrypted password field of the identity database
// and optionally issues a static challenge. Real BSD auth or PAM style
// mechanisms plug in behind the same Opener interface.
type CryptAuthority struct {
	source    identity.Source
	challenge string
}

// NewCryptAuthority returns an Opener backed by the given identity source.
// A non-empty challenge is presented to the user before the credential
// prompt.
func NewCryptAuthority(source identity.Source, challenge string) *CryptAuthority {
	return &CryptAuthority{source: source, challenge: challenge}
}

// Open implements the Opener interface.
func (c *CryptAuthority) Open(_ string, username string) (Session, error) {
	ident, err := c.source.Lookup(username)
	if err != nil {
		return nil, err
	}

	return &cryptSession{hash: ident.Password, challenge: c.challenge, values: make(map[string]string)}, nil
}

type cryptSession struct {
	hash      string
	challenge string
	values    map[string]string
	closed    bool
}

func (s *cryptSession) Challenge() (string, error) {
	if s.closed {
		return "", errors.ErrSessionClosed
	}

	return s.challenge, nil
}

func (s *cryptSession) Respond(response string) (Status, error) {
	if s.closed {
		return StatusFault, errors.ErrSessionClosed
	}

	if s.hash == "" {
		return StatusNoUser, nil
	}

	ok, err := util.ComparePasswords(s.hash, response)
	if err != nil {
		// An undecodable hash means the mechanism is misconfigured for this
		// user, not that the credential was wrong.
		s.values["errormsg"] = err.Error()

		return StatusFault, nil
	}

	if !ok {
		return StatusDenied, nil
	}

	return StatusOK, nil
}

func (s *cryptSession) Value(key string) string {
	return s.values[key]
}

func (s *cryptSession) Close() error {
	if s.closed {
		return errors.ErrSessionClosed
	}

	s.closed = true

	return nil
}

// StaticClassResolver resolves login classes from a fixed table of class
// names to supported authentication styles.
type StaticClassResolver struct {
	classes map[string][]string
}

// NewStaticClassResolver returns a ClassResolver over the given table.
func NewStaticClassResolver(classes map[string][]string) *StaticClassResolver {
	return &StaticClassResolver{classes: classes}
}

// Get implements the ClassResolver interface.
func (r *StaticClassResolver) Get(name string) (Class, error) {
	styles, ok := r.classes[name]
	if !ok {
		return nil, errors.ErrClassUnresolved
	}

	return &staticClass{name: name, styles: styles}, nil
}

type staticClass struct {
	name   string
	styles []string
	closed bool
}

func (c *staticClass) Name() string {
	return c.name
}

func (c *staticClass) Style(requested string, fallback string) string {
	supports := func(style string) bool {
		for _, s := range c.styles {
			if s == style {
				return true
			}
		}

		return false
	}

	if requested != "" && supports(requested) {
		return requested
	}

	if supports(fallback) {
		return fallback
	}

	return ""
}

func (c *staticClass) Close() error {
	if c.closed {
		return errors.ErrSessionClosed
	}

	c.closed = true

	return nil
}
