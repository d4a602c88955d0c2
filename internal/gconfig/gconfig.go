// Package gconfig is a small TOML-backed settings layer for the
// pretty-printer's process-wide knobs, grounded on the teacher's
// modules/zeta/config decode/encode split (that package manages
// repository-wide settings; this one manages only what spec.md §5 calls
// out as process-wide: the default output encoding, default date style,
// abbreviation length, and the save_commit_buffer switch).
package gconfig

import (
	"os"

	"github.com/BurntSushi/toml"
)

// DateStyleName mirrors commitgraph.DateStyle by name, so the TOML file
// doesn't need to know the numeric encoding.
type DateStyleName string

const (
	DateStyleNormal   DateStyleName = "normal"
	DateStyleRFC2822  DateStyleName = "rfc2822"
	DateStyleRelative DateStyleName = "relative"
	DateStyleISO8601  DateStyleName = "iso8601"
)

// Settings is the decoded form of the config file.
type Settings struct {
	OutputEncoding   string        `toml:"output_encoding"`
	DateStyle        DateStyleName `toml:"date_style"`
	AbbrevLength     int           `toml:"abbrev_length"`
	SaveCommitBuffer bool          `toml:"save_commit_buffer"`
}

// Default returns the settings used when no config file is present.
func Default() Settings {
	return Settings{
		OutputEncoding:   "utf-8",
		DateStyle:        DateStyleNormal,
		AbbrevLength:     7,
		SaveCommitBuffer: false,
	}
}

// Load decodes path into Settings, starting from Default() so a partial
// file only overrides the fields it mentions.
func Load(path string) (Settings, error) {
	s := Default()
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Save encodes s to path as TOML.
func Save(path string, s Settings) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(s)
}
