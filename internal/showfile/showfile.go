// Package showfile reads show descriptions (a name and its songs with their
// dancers) from YAML or TOML files, for planning without a store.
package showfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/setlist/sequence"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the decoder.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

var (
	// ErrUnknownFormat indicates a file extension or format name we cannot decode.
	ErrUnknownFormat = errors.New("showfile: unknown format")

	// ErrInvalidSong indicates a song without a title or with a blank dancer.
	ErrInvalidSong = errors.New("showfile: invalid song")

	// ErrDuplicateSong indicates two songs with the same title.
	ErrDuplicateSong = errors.New("showfile: duplicate song title")
)

// Song is one entry of a show file.
type Song struct {
	Title   string   `yaml:"title" toml:"title"`
	Dancers []string `yaml:"dancers" toml:"dancers"`
}

// File is a decoded show description.
type File struct {
	Name  string `yaml:"name" toml:"name"`
	Songs []Song `yaml:"songs" toml:"songs"`
}

// Load reads and validates the show file at path. The format follows the
// extension: .yaml/.yml or .toml.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open show file '%s': %w", path, err)
	}
	defer f.Close()

	sf, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sf.Name == "" {
		sf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return sf, nil
}

// FormatOf maps a file name to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Decode parses a show description from r and validates it.
func Decode(r io.Reader, format Format) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var sf File
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case TOML:
		if err := toml.Unmarshal(data, &sf); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err := sf.normalize(); err != nil {
		return nil, err
	}

	return &sf, nil
}

// normalize trims titles and dancers and rejects blanks and repeated titles.
func (sf *File) normalize() error {
	seen := make(map[string]struct{}, len(sf.Songs))
	for i := range sf.Songs {
		s := &sf.Songs[i]
		s.Title = strings.TrimSpace(s.Title)
		if s.Title == "" {
			return fmt.Errorf("%w: song #%d has no title", ErrInvalidSong, i+1)
		}
		if _, dup := seen[s.Title]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateSong, s.Title)
		}
		seen[s.Title] = struct{}{}

		for j, d := range s.Dancers {
			d = strings.TrimSpace(d)
			if d == "" {
				return fmt.Errorf("%w: %q has a blank dancer", ErrInvalidSong, s.Title)
			}
			s.Dancers[j] = d
		}
	}

	return nil
}

// Items converts the songs into sequencing items in file order.
func (sf *File) Items() []sequence.Item {
	items := make([]sequence.Item, len(sf.Songs))
	for i, s := range sf.Songs {
		items[i] = sequence.Item{ID: s.Title, Tags: s.Dancers}
	}

	return items
}
