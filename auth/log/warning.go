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

package log

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/croessner/elevate/auth/definitions"
	"github.com/croessner/elevate/auth/errors"
	"github.com/go-kit/log/level"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Flags modify how an audit warning is emitted.
type Flags uint8

const (
	// UseErrno attaches the underlying OS error to the log line.
	UseErrno Flags = 1 << iota

	// NoMail marks the line so that downstream mail notification is skipped.
	NoMail
)

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
)

// SetupMessages loads optional message catalogs for audit warnings. Files use
// the go-i18n JSON format. Missing catalogs are not an error; the format
// string then doubles as the message.
func SetupMessages(languages []string, files ...string) error {
	mu.Lock()

	defer mu.Unlock()

	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return err
		}
	}

	localizer = i18n.NewLocalizer(bundle, languages...)

	return nil
}

// localize resolves a format string through the loaded catalogs. The English
// format acts as its own message ID, matching the N_() convention.
func localize(format string) string {
	mu.Lock()
	l := localizer
	mu.Unlock()

	if l == nil {
		return format
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: format, Other: format},
	})
	if err != nil {
		return format
	}

	return msg
}

// Warning emits a structured audit message for a warning-worthy backend
// outcome. The format string is localized before the arguments are applied.
// The underlying error is attached when the UseErrno flag is set; the NoMail
// flag is passed through for the notification pipeline to honor. A
// DetailedError additionally contributes its attempt GUID and detail string.
func Warning(err error, flags Flags, format string, args ...any) {
	keyvals := []any{
		definitions.LogKeyMsg, fmt.Sprintf(localize(format), args...),
		definitions.LogKeyMailSuppress, flags&NoMail != 0,
	}

	if flags&UseErrno != 0 && err != nil {
		keyvals = append(keyvals, definitions.LogKeyErrno, err.Error())
	}

	var detailed *errors.DetailedError

	if stderrors.As(err, &detailed) {
		if guid := detailed.GetGUID(); guid != "" {
			keyvals = append(keyvals, definitions.LogKeyGUID, guid)
		}

		if details := detailed.GetDetails(); details != "" {
			keyvals = append(keyvals, definitions.LogKeyDetails, details)
		}
	}

	level.Warn(Logger).Log(keyvals...)
}
