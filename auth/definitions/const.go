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

// InstanceName is the default instance identifier used in log lines.
const InstanceName = "elevate"

// Log level.
const (
	LogLevelNone = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Log keys.
const (
	LogKeyGUID         = "session"
	LogKeyMsg          = "msg"
	LogKeyError        = "error"
	LogKeyErrno        = "errno"
	LogKeyWarning      = "warn"
	LogKeyInstance     = "instance"
	LogKeyUsername     = "username"
	LogKeyUID          = "uid"
	LogKeyLoginClass   = "login_class"
	LogKeyLoginStyle   = "login_style"
	LogKeyBackend      = "backend"
	LogKeyOperation    = "operation"
	LogKeyOutcome      = "outcome"
	LogKeyAuthResult   = "auth_result"
	LogKeyMailSuppress = "mail_suppressed"
	LogKeyDetails      = "details"
)

// NotAvailable is used when a value is missing or not returned by a mechanism.
const NotAvailable = "N/A"

// Login class fallbacks when the identity record carries no class of its own.
const (
	DefaultLoginClass     = "default"
	DefaultRootLoginClass = "daemon"
)

// DefaultLoginStyle is the authentication style requested from a login class
// when no style was configured for the attempt.
const DefaultLoginStyle = "auth-elevate"

// EchoOnSuffix is appended to the last challenge line when the credential
// prompt is repeated with terminal echo turned on.
const EchoOnSuffix = " [echo on]: "

// DefaultPasswordTimeout is the credential prompt timeout in minutes. A value
// of zero disables the timeout.
const DefaultPasswordTimeout = 5

// DefaultPasswdFile is the identity database consulted by the file source.
const DefaultPasswdFile = "/etc/passwd"

// Backend names.
const (
	BackendPasswdName    = "passwd"
	BackendC2Name        = "c2"
	BackendChallengeName = "challenge"
	BackendSessionName   = "session"
	BackendUnknownName   = "unknown"
)

// Backends.
const (
	BackendUnknown Backend = iota
	BackendPasswd
	BackendC2
	BackendChallenge
	BackendSession
)

// Backend operations as used in logs and metrics.
const (
	AuthOpInit    = "init"
	AuthOpVerify  = "verify"
	AuthOpCleanup = "cleanup"
)

// Outcomes of a single backend operation.
const (
	AuthSuccess Outcome = iota
	AuthFailure
	AuthIntr
	AuthFatal
)

// Results of a whole dispatch pass.
const (
	AuthResultUnset AuthResult = iota

	// AuthResultOK is the only result that grants access.
	AuthResultOK

	// AuthResultFail means every backend rejected the credential.
	AuthResultFail

	// AuthResultAbort means the user gave up while being prompted.
	AuthResultAbort

	// AuthResultTempFail means a mechanism broke; access is refused, but the
	// denial is distinguishable from a plain credential mismatch in the logs.
	AuthResultTempFail
)

// C2 transform selection. Which of the two vendor one-way transforms is in
// effect is decided when the registry is built, never per verify call.
const (
	C2TransformDispatch  = "dispatch"
	C2TransformSegmented = "segmented"
)

// Debug modules.
const (
	DbgNone DbgModule = iota
	DbgAll
	DbgAuth
	DbgDispatch
	DbgConv
)

// Debug module names.
const (
	DbgNoneName     = "none"
	DbgAllName      = "all"
	DbgAuthName     = "auth"
	DbgDispatchName = "dispatch"
	DbgConvName     = "conv"
)

// Echo modes for the conversation collaborator.
const (
	EchoOff EchoMode = iota
	EchoOn
)
