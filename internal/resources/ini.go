package resources

import "strings"

// IniLine is a single key=value pair within an IniSection.
type IniLine struct {
	Key   string
	Value string
}

// IniSection is a named group of IniLine entries.
type IniSection struct {
	Name  string
	Lines []IniLine
}

// Get returns the value for key (case-insensitive), or "" if absent.
func (s IniSection) Get(key string) (string, bool) {
	for _, l := range s.Lines {
		if strings.EqualFold(l.Key, key) {
			return l.Value, true
		}
	}
	return "", false
}

// IniFile is an ordered sequence of IniSection.
type IniFile struct {
	Sections []IniSection
}

// Section returns the section with the given name (case-insensitive),
// or false if none exists.
func (f IniFile) Section(name string) (IniSection, bool) {
	for _, s := range f.Sections {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return IniSection{}, false
}

// ParseIni parses an INI file from its lines. "[name]" starts a new
// section; "key=value" lines attach to the current section; lines with
// no "=" or that appear before any section are silently dropped:
// malformed lines are tolerated, not an error.
func ParseIni(lines []string) IniFile {
	var f IniFile
	var current *IniSection

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			f.Sections = append(f.Sections, IniSection{Name: trimmed[1 : len(trimmed)-1]})
			current = &f.Sections[len(f.Sections)-1]
			continue
		}

		if current == nil {
			continue
		}

		idx := strings.IndexByte(trimmed, '=')
		if idx < 0 {
			continue
		}

		current.Lines = append(current.Lines, IniLine{
			Key:   strings.TrimSpace(trimmed[:idx]),
			Value: strings.TrimSpace(trimmed[idx+1:]),
		})
	}

	return f
}
