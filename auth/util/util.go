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

package util

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"regexp"
	"runtime"
	"strings"

	"github.com/croessner/elevate/auth/config"
	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/croessner/elevate/auth/log"
	"github.com/go-kit/log/level"
	"github.com/simia-tech/crypt"
	"golang.org/x/crypto/bcrypt"
)

// Salted hash prefix: {SSHA256.B64}payload or {SSHA512.HEX}payload; the
// option and dot are optional, default is B64.
var saltedHashPattern = regexp.MustCompile(`^\{SSHA(256|512)(?:\.(HEX|B64))?}(.+)$`)

// saltedHash is a decoded {SSHA256}/{SSHA512} password field.
type saltedHash struct {
	digest []byte
	salt   []byte
	newFn  func() hash.Hash
}

func decodeSaltedHash(value string) (*saltedHash, error) {
	subs := saltedHashPattern.FindStringSubmatch(value)
	if len(subs) != 4 {
		return nil, errors.ErrUnsupportedAlgorithm
	}

	var (
		payload []byte
		err     error
	)

	switch subs[2] {
	case "HEX":
		payload, err = hex.DecodeString(subs[3])
	case "B64", "":
		payload, err = base64.StdEncoding.DecodeString(subs[3])
	default:
		return nil, errors.ErrUnsupportedPasswordOption
	}

	if err != nil {
		return nil, err
	}

	sh := &saltedHash{}

	switch subs[1] {
	case "256":
		sh.newFn = sha256.New

		if len(payload) < sha256.Size+1 {
			return nil, errors.ErrUnsupportedAlgorithm
		}

		sh.digest, sh.salt = payload[:sha256.Size], payload[sha256.Size:]
	case "512":
		sh.newFn = sha512.New

		if len(payload) < sha512.Size+1 {
			return nil, errors.ErrUnsupportedAlgorithm
		}

		sh.digest, sh.salt = payload[:sha512.Size], payload[sha512.Size:]
	}

	return sh, nil
}

func (s *saltedHash) matches(plainPassword string) bool {
	hashValue := s.newFn()
	hashValue.Write([]byte(plainPassword))
	hashValue.Write(s.salt)

	return subtle.ConstantTimeCompare(s.digest, hashValue.Sum(nil)) == 1
}

// ComparePasswords applies the one-way transform named by the stored hash to
// the plain password and compares the results in constant time. Supported
// stored forms: crypt(3) settings strings (MD5, SHA-256, SHA-512, Argon2),
// bcrypt and the salted {SSHA256}/{SSHA512} encodings.
func ComparePasswords(hashPassword string, plainPassword string) (bool, error) {
	switch {
	case strings.HasPrefix(hashPassword, "{SSHA"):
		sh, err := decodeSaltedHash(hashPassword)
		if err != nil {
			return false, err
		}

		return sh.matches(plainPassword), nil
	case strings.HasPrefix(hashPassword, "$2"):
		err := bcrypt.CompareHashAndPassword([]byte(hashPassword), []byte(plainPassword))
		if err != nil {
			if err == bcrypt.ErrMismatchedHashAndPassword {
				return false, nil
			}

			return false, err
		}

		return true, nil
	default:
		encoded, err := CryptTransform(plainPassword, hashPassword)
		if err != nil {
			return false, err
		}

		return subtle.ConstantTimeCompare([]byte(encoded), []byte(hashPassword)) == 1, nil
	}
}

// CryptTransform runs the crypt(3) style one-way transform, seeded with the
// settings (algorithm, salt, parameters) taken from the stored value.
func CryptTransform(plainPassword string, storedValue string) (string, error) {
	_, _, _, pwhash, err := crypt.DecodeSettings(storedValue)
	if err != nil {
		return "", err
	}

	settings, _, found := strings.Cut(storedValue, pwhash)
	if !found {
		return "", errors.ErrUnsupportedAlgorithm
	}

	return crypt.Crypt(plainPassword, settings)
}

// DebugModule emits a debug log line when the given debug module is enabled.
func DebugModule(module definitions.DbgModule, keyvals ...any) {
	cfg := config.EnvConfig
	if cfg == nil || cfg.Verbosity.Level() < definitions.LogLevelDebug {
		return
	}

	if !cfg.HasDebugModule(module) {
		return
	}

	var moduleName string

	switch module {
	case definitions.DbgAll:
		moduleName = definitions.DbgAllName
	case definitions.DbgAuth:
		moduleName = definitions.DbgAuthName
	case definitions.DbgDispatch:
		moduleName = definitions.DbgDispatchName
	case definitions.DbgConv:
		moduleName = definitions.DbgConvName
	default:
		return
	}

	keyvals = append(keyvals, "debug_module", moduleName)

	if counter, _, _, ok := runtime.Caller(1); ok {
		keyvals = append(keyvals, "function", runtime.FuncForPC(counter).Name())
	}

	level.Debug(log.Logger).Log(keyvals...)
}

// WithNotAvailable returns a default "not available" string if the given
// value is an empty string.
func WithNotAvailable(value string) string {
	if value == "" {
		return definitions.NotAvailable
	}

	return value
}
