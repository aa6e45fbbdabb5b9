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

package conv

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/croessner/elevate/auth/secret"
)

// ChildSignal is the child-process-exit signal that native session mechanisms
// depend on while a credential prompt is pending.
var ChildSignal os.Signal = syscall.SIGCHLD

// WithDefaultDisposition runs fn while sig has its default disposition, so a
// native mechanism's child processes are reaped by the OS instead of being
// delivered to this process's handlers. The previously registered
// notification channels are re-armed on every exit path.
func WithDefaultDisposition(sig os.Signal, rearm []chan<- os.Signal, fn func() (secret.Value, error)) (secret.Value, error) {
	signal.Reset(sig)

	defer func() {
		for _, ch := range rearm {
			signal.Notify(ch, sig)
		}
	}()

	return fn()
}
