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

package definitions

// Backend is a numeric identifier for a credential backend.
type Backend uint8

func (b Backend) String() string {
	switch b {
	case BackendPasswd:
		return BackendPasswdName
	case BackendC2:
		return BackendC2Name
	case BackendChallenge:
		return BackendChallengeName
	case BackendSession:
		return BackendSessionName
	default:
		return BackendUnknownName
	}
}

// Outcome is the result of a single backend operation (init, verify or
// cleanup). Fatal and Intr abort the dispatch pass, Failure moves on to the
// next backend and Success ends it.
type Outcome uint8

func (o Outcome) String() string {
	switch o {
	case AuthSuccess:
		return "success"
	case AuthFailure:
		return "failure"
	case AuthIntr:
		return "intr"
	case AuthFatal:
		return "fatal"
	default:
		return BackendUnknownName
	}
}

// AuthResult is the numeric result of a whole dispatch pass.
type AuthResult uint8

func (a AuthResult) String() string {
	switch a {
	case AuthResultOK:
		return "accepted"
	case AuthResultFail:
		return "denied"
	case AuthResultAbort:
		return "aborted"
	case AuthResultTempFail:
		return "errored"
	default:
		return "unset"
	}
}

// DbgModule represents a debug module identifier.
type DbgModule uint8

// EchoMode selects whether the conversation collaborator echoes input.
type EchoMode uint8

func (e EchoMode) String() string {
	if e == EchoOn {
		return "on"
	}

	return "off"
}
