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

// Package native declares the narrow interfaces behind which the OS level
// authentication mechanisms live. The dispatcher core treats everything in
// here as a black box; raw status codes are translated into outcomes by the
// backend package.
package native

// Status is the raw result vocabulary of a native mechanism.
type Status int

const (
	// StatusOK means the response was accepted.
	StatusOK Status = iota

	// StatusDenied means the response did not match.
	StatusDenied

	// StatusNoUser means the mechanism has no record for the user.
	StatusNoUser

	// StatusExpired means the credential is no longer valid.
	StatusExpired

	// StatusFault means the mechanism itself is broken or misconfigured.
	StatusFault
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDenied:
		return "denied"
	case StatusNoUser:
		return "no_user"
	case StatusExpired:
		return "expired"
	case StatusFault:
		return "fault"
	default:
		return "unknown"
	}
}

// Session is one open native authentication session. A session belongs to
// exactly one backend instance and must not be used after Close.
type Session interface {
	// Challenge returns the mechanism issued challenge text, or an empty
	// string when the mechanism does not use challenges.
	Challenge() (string, error)

	// Respond validates a user response and returns the raw mechanism status.
	Respond(response string) (Status, error)

	// Value returns a mechanism specific string for the given key, for
	// example "errormsg". Returns an empty string when the key is unset.
	Value(key string) string

	// Close releases the session. Calling Close twice is an error.
	Close() error
}

// Opener creates native sessions for a user and authentication style.
type Opener interface {
	Open(style string, username string) (Session, error)
}

// Class is an open handle on an OS login class.
type Class interface {
	// Name returns the class name the handle was resolved from.
	Name() string

	// Style picks the authentication style for this class. The requested
	// style wins when the class supports it, then the fallback, otherwise an
	// empty string is returned.
	Style(requested string, fallback string) string

	// Close releases the class handle.
	Close() error
}

// ClassResolver looks up login classes by name.
type ClassResolver interface {
	Get(name string) (Class, error)
}
