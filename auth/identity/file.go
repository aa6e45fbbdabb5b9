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

package identity

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/croessner/elevate/auth/errors"
)

// FileSource reads identity records from a passwd-style database. Both the
// seven-field passwd layout and the ten-field master.passwd layout (which
// carries a login class in the fifth field) are accepted.
type FileSource struct {
	path string
}

// NewFileSource returns a Source backed by the given passwd-style file.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Lookup implements the Source interface.
func (f *FileSource) Lookup(username string) (*Identity, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, err
	}

	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Keep trailing empty fields.
		fields := strings.Split(line, ":")
		if fields[0] != username {
			continue
		}

		return parseRecord(fields)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return nil, errors.ErrNoSuchUser
}

func parseRecord(fields []string) (*Identity, error) {
	if len(fields) != 7 && len(fields) != 10 {
		return nil, errors.ErrMalformedRecord
	}

	uid, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return nil, errors.ErrMalformedRecord
	}

	ident := &Identity{
		Username: fields[0],
		Password: fields[1],
		UID:      uint32(uid),
	}

	if len(fields) == 10 {
		ident.LoginClass = fields[4]
	}

	return ident, nil
}
