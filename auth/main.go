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

package main

import (
	"fmt"
	"os"

	"github.com/croessner/elevate/auth/backend"
	"github.com/croessner/elevate/auth/config"
	"github.com/croessner/elevate/auth/conv"
	"github.com/croessner/elevate/auth/core"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/identity"
	"github.com/croessner/elevate/auth/log"
	"github.com/croessner/elevate/auth/native"
	"github.com/croessner/elevate/auth/stats"
	"github.com/segmentio/ksuid"
	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		username    string
		promptFmt   string
		challenge   string
		catalogs    []string
		showMetrics bool
	)

	pflag.StringVarP(&username, "user", "u", "root", "target user to authenticate as")
	pflag.StringVarP(&promptFmt, "prompt", "p", "Password for %s: ", "credential prompt, %s expands to the user name")
	pflag.StringVar(&challenge, "challenge", "", "static challenge text issued by the reference mechanism")
	pflag.StringSliceVar(&catalogs, "messages", nil, "message catalog files for localized audit warnings")
	pflag.BoolVar(&showMetrics, "metrics", false, "write the collected counters to stderr before exiting")
	pflag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return 2
	}

	config.EnvConfig = cfg

	log.SetupLogging(cfg.Verbosity.Level(), cfg.LogFormatJSON, cfg.LogColor, cfg.InstanceName)

	if len(catalogs) > 0 {
		if err = log.SetupMessages([]string{os.Getenv("LANG")}, catalogs...); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)

			return 2
		}
	}

	source := identity.NewFileSource(cfg.PasswdFile)

	ident, err := source.Lookup(username)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return 2
	}

	registry, err := backend.NewRegistry(cfg, backend.Mechanisms{
		Opener:  native.NewCryptAuthority(source, challenge),
		Classes: defaultClasses(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return 2
	}

	attempt := &backend.Attempt{
		GUID:          ksuid.New().String(),
		Conv:          conv.NewTerminal(os.Stdin, os.Stderr),
		PromptTimeout: cfg.PromptTimeout(),
		LoginStyle:    cfg.LoginStyle,
	}

	result := core.NewDispatcher(registry).Authenticate(attempt, ident, fmt.Sprintf(promptFmt, ident.Username))

	if showMetrics {
		if err = stats.Dump(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	// Anything but an accept refuses the privileged action.
	if result != definitions.AuthResultOK {
		fmt.Fprintln(os.Stderr, "Sorry, try again later.")

		return 1
	}

	return 0
}

// defaultClasses is the login class table of the reference mechanism. Real
// deployments resolve classes from the OS instead.
func defaultClasses() native.ClassResolver {
	styles := []string{definitions.DefaultLoginStyle, "passwd"}

	return native.NewStaticClassResolver(map[string][]string{
		definitions.DefaultLoginClass:     styles,
		definitions.DefaultRootLoginClass: styles,
	})
}
