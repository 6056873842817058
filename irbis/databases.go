package irbis

import (
	"strings"

	"github.com/amironov73/irbis-go/internal/resources"
)

// ListDatabases reads the named database menu from the server (command
// "L" on a ".mnu" specification, conventionally "1..dbnam2.mnu") and
// returns one DatabaseInfo per entry. A menu code starting with '-'
// marks the database read-only; the dash is stripped from the name.
func (c *Connection) ListDatabases(specification string) []resources.DatabaseInfo {
	if !c.connected {
		return nil
	}
	if specification == "" {
		specification = "1..dbnam2.mnu"
	}

	menu := c.ReadMenu(specification)
	var out []resources.DatabaseInfo
	for _, entry := range menu.Entries {
		name := entry.Code
		readOnly := false
		if strings.HasPrefix(name, "-") {
			name = name[1:]
			readOnly = true
		}
		if name == "" {
			continue
		}
		out = append(out, resources.DatabaseInfo{
			Name:        name,
			Description: entry.Comment,
			ReadOnly:    readOnly,
		})
	}
	return out
}

// ReadMenu fetches and parses a server-side MNU file. Missing or empty
// files yield an empty menu.
func (c *Connection) ReadMenu(specification string) resources.MenuFile {
	text := c.ReadTextFile(specification)
	if text == "" {
		return resources.MenuFile{}
	}
	return resources.ParseMenu(splitTextLines(text))
}

// ReadIni fetches and parses a server-side INI file.
func (c *Connection) ReadIni(specification string) resources.IniFile {
	text := c.ReadTextFile(specification)
	if text == "" {
		return resources.IniFile{}
	}
	return resources.ParseIni(splitTextLines(text))
}

// ReadTree fetches and parses a server-side TRE file. A malformed
// indent jump in the file surfaces as resources.ErrBadIndent.
func (c *Connection) ReadTree(specification string) ([]resources.TreeNode, error) {
	text := c.ReadTextFile(specification)
	if text == "" {
		return nil, nil
	}
	return resources.ParseTree(splitTextLines(text))
}

// splitTextLines splits server text on either CRLF or bare LF line
// endings.
func splitTextLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
