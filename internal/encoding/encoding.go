// Package encoding bridges Unicode strings and the two byte encodings
// the IRBIS64 wire protocol mixes (C1): the legacy single-byte
// Windows-1251 code page used for commands, filenames, workstation
// codes, menu/INI text, and usernames/passwords; and UTF-8 used for
// bibliographic record bodies, search expressions, and term text.
//
// The two directions are deliberately distinct functions rather than one
// "line with an encoding flag" primitive: callers pick
// ToAnsi/FromAnsi or ToUtf/FromUtf per the per-command contract
// documented on the session methods that use them.
package encoding

import (
	"golang.org/x/text/encoding/charmap"
)

// ToAnsi encodes a Unicode string into the legacy Windows-1251 byte
// encoding. Characters with no Windows-1251 representation are replaced
// per charmap's encoder behavior (best-effort; the protocol's legacy
// surface is command/file names, not general text).
func ToAnsi(s string) []byte {
	encoded, _ := charmap.Windows1251.NewEncoder().Bytes([]byte(s))
	return encoded
}

// FromAnsi decodes legacy Windows-1251 bytes into a Unicode string.
func FromAnsi(data []byte) string {
	decoded, err := charmap.Windows1251.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// ToUtf encodes a Unicode string as UTF-8 bytes. Go strings are already
// UTF-8, so this is a plain conversion; it exists as the symmetric
// counterpart to ToAnsi so call sites name the encoding explicitly.
func ToUtf(s string) []byte {
	return []byte(s)
}

// FromUtf decodes UTF-8 bytes into a Unicode string.
func FromUtf(data []byte) string {
	return string(data)
}
