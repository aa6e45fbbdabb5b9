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

// Identity is the target user record of one authentication attempt. It is
// created by the caller before the dispatch starts and read-only throughout;
// backends borrow it, they never own it.
type Identity struct {
	// Username is the login name of the target user.
	Username string

	// UID is the numeric user id.
	UID uint32

	// LoginClass is the OS login class name; may be empty, in which case the
	// session backends fall back to a uid-dependent default.
	LoginClass string

	// Password is the encrypted password field as stored in the identity
	// database. The format is backend specific and treated as an opaque blob.
	Password string
}

// Source supplies Identity records. The dispatcher core only reads the
// returned fields, it never resolves credentials itself.
type Source interface {
	// Lookup returns the Identity for the given login name or ErrNoSuchUser.
	Lookup(username string) (*Identity, error)
}
