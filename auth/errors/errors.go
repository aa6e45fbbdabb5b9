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

package errors

import (
	"errors"
)

// DetailedError carries an additional free-form detail string next to the
// wire-safe error message. WithGUID and WithDetail return copies, so the
// package-level sentinels stay untouched and remain usable with errors.Is.
type DetailedError struct {
	err     error
	guid    string
	details string
}

func (d *DetailedError) Error() string {
	return d.err.Error()
}

func (d *DetailedError) Unwrap() error {
	return d.err
}

// Is matches two DetailedError values by their wire-safe inner error, so a
// copy carrying attempt context still compares equal to its sentinel.
func (d *DetailedError) Is(target error) bool {
	other, ok := target.(*DetailedError)
	if !ok {
		return false
	}

	return errors.Is(d.err, other.err)
}

func (d *DetailedError) WithGUID(guid string) *DetailedError {
	if d == nil {
		return nil
	}

	clone := *d
	clone.guid = guid

	return &clone
}

func (d *DetailedError) WithDetail(detail string) *DetailedError {
	if d == nil {
		return nil
	}

	clone := *d
	clone.details = detail

	return &clone
}

func (d *DetailedError) GetGUID() string {
	return d.guid
}

func (d *DetailedError) GetDetails() string {
	return d.details
}

func NewDetailedError(err string) *DetailedError {
	return &DetailedError{err: errors.New(err)}
}

// dispatch.

var (
	ErrNoBackends     = errors.New("no authentication backends configured")
	ErrNotInitialized = errors.New("backend was not initialized")
)

// backend.

var (
	ErrUnknownBackend    = errors.New("unknown auth backend: <%s>")
	ErrNoLoginClass      = NewDetailedError("login_class_lookup_failed")
	ErrInvalidLoginStyle = NewDetailedError("invalid_login_style")
	ErrSessionOpen       = NewDetailedError("session_open_failed")
	ErrSessionSetup      = NewDetailedError("session_setup_failed")
)

// native.

var (
	ErrSessionClosed   = errors.New("native session already closed")
	ErrClassUnresolved = errors.New("login class could not be resolved")
)

// conv.

var (
	ErrPromptInterrupted = errors.New("credential input interrupted")
	ErrPromptTimeout     = errors.New("credential input timed out")
	ErrNoTerminal        = errors.New("no terminal available for prompting")
)

// identity.

var (
	ErrNoSuchUser      = errors.New("user not found")
	ErrMalformedRecord = errors.New("malformed identity record")
)

// env.

var (
	ErrWrongVerboseLevel = errors.New("wrong verbose level: <%s>")
	ErrWrongBackend      = errors.New("wrong auth backend: <%s>")
	ErrWrongC2Transform  = errors.New("wrong c2 transform: <%s>")
	ErrWrongDebugModule  = errors.New("wrong debug module: <%s>")
)

// util.

var (
	ErrUnsupportedAlgorithm      = errors.New("unsupported hash algorithm")
	ErrUnsupportedPasswordOption = errors.New("unsupported password option")
)
