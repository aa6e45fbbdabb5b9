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

package config

import (
	"time"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/spf13/viper"
)

// EnvConfig represents the environment configuration for the application.
var EnvConfig *Config //nolint:gochecknoglobals // System wide configuration

// Verbosity is a type that represents the verbosity details.
type Verbosity struct {
	// verboseLevel holds the level of detail for logging
	verboseLevel int

	// name is the name of the verbosity level
	name string
}

func (v *Verbosity) String() string {
	return v.name
}

// Set updates the verbosity level and name based on the provided value.
// Valid values are "none", "error", "warn", "info" and "debug".
func (v *Verbosity) Set(value string) error {
	switch value {
	case "none", "":
		v.verboseLevel = definitions.LogLevelNone
	case "error":
		v.verboseLevel = definitions.LogLevelError
	case "warn":
		v.verboseLevel = definitions.LogLevelWarn
	case "info":
		v.verboseLevel = definitions.LogLevelInfo
	case "debug":
		v.verboseLevel = definitions.LogLevelDebug
	default:
		return errors.ErrWrongVerboseLevel
	}

	v.name = value

	return nil
}

// Type returns the type of the Verbosity struct.
func (v *Verbosity) Type() string {
	return "Verbosity"
}

// Level returns the verbosity level of the Verbosity instance.
func (v *Verbosity) Level() int {
	return v.verboseLevel
}

// Get returns the name of the log level as string.
func (v *Verbosity) Get() string {
	return v.name
}

// AuthBackend is a credential backend tag taken from the ordered
// "auth_backends" list.
type AuthBackend struct {
	backend definitions.Backend
}

func (a *AuthBackend) String() string {
	return a.backend.String()
}

// Set sets the numeric backend identifier by its string representation.
func (a *AuthBackend) Set(value string) error {
	switch value {
	case definitions.BackendPasswdName:
		a.backend = definitions.BackendPasswd
	case definitions.BackendC2Name:
		a.backend = definitions.BackendC2
	case definitions.BackendChallengeName:
		a.backend = definitions.BackendChallenge
	case definitions.BackendSessionName:
		a.backend = definitions.BackendSession
	default:
		return errors.ErrWrongBackend
	}

	return nil
}

// Type returns the name of the AuthBackend type.
func (a *AuthBackend) Type() string {
	return "AuthBackend"
}

// Get returns the numeric backend identifier.
func (a *AuthBackend) Get() definitions.Backend {
	return a.backend
}

// C2Transform selects which of the two vendor one-way transforms the C2
// backend applies.
type C2Transform struct {
	name string
}

func (c *C2Transform) String() string {
	return c.name
}

// Set validates and stores the transform name.
func (c *C2Transform) Set(value string) error {
	switch value {
	case definitions.C2TransformDispatch, definitions.C2TransformSegmented:
		c.name = value
	default:
		return errors.ErrWrongC2Transform
	}

	return nil
}

// Type returns the name of the C2Transform type.
func (c *C2Transform) Type() string {
	return "C2Transform"
}

// Get returns the transform name.
func (c *C2Transform) Get() string {
	return c.name
}

// DbgModule is one entry of the "log_debug_modules" list.
type DbgModule struct {
	name   string
	module definitions.DbgModule
}

func (d *DbgModule) String() string {
	return d.name
}

// Set sets the debug module by its string representation.
func (d *DbgModule) Set(value string) error {
	switch value {
	case definitions.DbgNoneName, "":
		d.module = definitions.DbgNone
	case definitions.DbgAllName:
		d.module = definitions.DbgAll
	case definitions.DbgAuthName:
		d.module = definitions.DbgAuth
	case definitions.DbgDispatchName:
		d.module = definitions.DbgDispatch
	case definitions.DbgConvName:
		d.module = definitions.DbgConv
	default:
		return errors.ErrWrongDebugModule
	}

	d.name = value

	return nil
}

// Type returns the name of the DbgModule type.
func (d *DbgModule) Type() string {
	return "DbgModule"
}

// GetModule returns the numeric debug module identifier.
func (d *DbgModule) GetModule() definitions.DbgModule {
	return d.module
}

// Config holds the environment configuration of one process invocation. The
// backend list is ordered; the registry is built from it exactly once.
type Config struct {
	InstanceName  string
	LogFormatJSON bool
	LogColor      bool

	Verbosity    *Verbosity
	DebugModules []*DbgModule

	AuthBackends []*AuthBackend

	// PasswordTimeout is the credential prompt timeout in minutes, zero
	// disables it.
	PasswordTimeout uint

	// LoginStyle is the requested authentication style for session backends.
	LoginStyle string

	C2Transform *C2Transform

	PasswdFile string
}

// setDefaultEnvVars registers the default values for all settings.
func setDefaultEnvVars() {
	viper.SetDefault("instance_name", definitions.InstanceName)
	viper.SetDefault("log_format_json", false)
	viper.SetDefault("log_color", false)
	viper.SetDefault("verbose_level", "info")
	viper.SetDefault("log_debug_modules", []string{definitions.DbgAuthName})
	viper.SetDefault("auth_backends", []string{definitions.BackendPasswdName})
	viper.SetDefault("password_timeout", uint(definitions.DefaultPasswordTimeout))
	viper.SetDefault("login_style", "")
	viper.SetDefault("c2_transform", definitions.C2TransformDispatch)
	viper.SetDefault("passwd_file", definitions.DefaultPasswdFile)

	viper.SetEnvPrefix("elevate")
	viper.AutomaticEnv()
}

// NewConfig reads the process environment and returns the assembled Config.
func NewConfig() (*Config, error) {
	setDefaultEnvVars()

	cfg := &Config{
		InstanceName:    viper.GetString("instance_name"),
		LogFormatJSON:   viper.GetBool("log_format_json"),
		LogColor:        viper.GetBool("log_color"),
		Verbosity:       &Verbosity{},
		C2Transform:     &C2Transform{},
		PasswordTimeout: viper.GetUint("password_timeout"),
		LoginStyle:      viper.GetString("login_style"),
		PasswdFile:      viper.GetString("passwd_file"),
	}

	if err := cfg.Verbosity.Set(viper.GetString("verbose_level")); err != nil {
		return nil, err
	}

	if err := cfg.C2Transform.Set(viper.GetString("c2_transform")); err != nil {
		return nil, err
	}

	for _, value := range viper.GetStringSlice("log_debug_modules") {
		module := &DbgModule{}
		if err := module.Set(value); err != nil {
			return nil, err
		}

		cfg.DebugModules = append(cfg.DebugModules, module)
	}

	for _, value := range viper.GetStringSlice("auth_backends") {
		backend := &AuthBackend{}
		if err := backend.Set(value); err != nil {
			return nil, err
		}

		cfg.AuthBackends = append(cfg.AuthBackends, backend)
	}

	return cfg, nil
}

// PromptTimeout converts the configured timeout from whole minutes into the
// conversation collaborator's native unit.
func (c *Config) PromptTimeout() time.Duration {
	return time.Duration(c.PasswordTimeout) * time.Minute
}

// HasDebugModule checks whether the given debug module is enabled.
func (c *Config) HasDebugModule(module definitions.DbgModule) bool {
	if c == nil {
		return false
	}

	for index := range c.DebugModules {
		if c.DebugModules[index].GetModule() == definitions.DbgAll || c.DebugModules[index].GetModule() == module {
			return true
		}
	}

	return false
}
