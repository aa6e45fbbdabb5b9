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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/secret"
	"golang.org/x/term"
)

type promptResult struct {
	value secret.Value
	err   error
}

// Terminal is the reference Conversation bound to a controlling terminal.
type Terminal struct {
	in  *os.File
	out *os.File
}

// NewTerminal returns a Conversation reading from in and writing prompt text
// to out.
func NewTerminal(in *os.File, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// Prompt implements the Conversation interface.
func (t *Terminal) Prompt(text string, echo definitions.EchoMode, timeout time.Duration) (secret.Value, error) {
	if !term.IsTerminal(int(t.in.Fd())) {
		return secret.Value{}, errors.ErrNoTerminal
	}

	fmt.Fprint(t.out, text)

	resultChan := make(chan promptResult, 1)

	go func() {
		resultChan <- t.read(echo)
	}()

	value, err := awaitPrompt(resultChan, timeout)
	if err == errors.ErrPromptTimeout {
		fmt.Fprintln(t.out)
	}

	return value, err
}

// awaitPrompt waits for the reader goroutine, honoring the timeout. On a
// timeout the reader stays blocked on the terminal until input arrives; the
// drain goroutine scrubs whatever the user types in afterwards so no
// plaintext credential outlives the abandoned prompt. The reader also keeps
// terminal echo disabled until that late input unblocks it.
func awaitPrompt(resultChan chan promptResult, timeout time.Duration) (secret.Value, error) {
	if timeout == 0 {
		result := <-resultChan

		return result.value, result.err
	}

	select {
	case result := <-resultChan:
		return result.value, result.err
	case <-time.After(timeout):
		go func() {
			result := <-resultChan
			result.value.Destroy()
		}()

		return secret.Value{}, errors.ErrPromptTimeout
	}
}

func (t *Terminal) read(echo definitions.EchoMode) promptResult {
	if echo == definitions.EchoOff {
		line, err := term.ReadPassword(int(t.in.Fd()))

		defer clear(line)

		fmt.Fprintln(t.out)

		if err != nil {
			return promptResult{err: errors.ErrPromptInterrupted}
		}

		return promptResult{value: secret.FromBytes(line)}
	}

	line, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return promptResult{err: errors.ErrPromptInterrupted}
	}

	if err == io.EOF && line == "" {
		return promptResult{err: errors.ErrPromptInterrupted}
	}

	return promptResult{value: secret.New(strings.TrimSuffix(line, "\n"))}
}
