package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoLevels is returned when a tuning file lists no levels
var ErrNoLevels = errors.New("no levels configured")

// GameConfig holds all loaded configurations
type GameConfig struct {
	Tuning *Tuning
	Levels []*LevelConfig
}

// Loader loads game configuration from YAML and TMX files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadTuning loads tuning.yaml on top of the defaults
func (l *Loader) LoadTuning() (*Tuning, error) {
	data, err := fs.ReadFile(l.fsys, "tuning.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning.yaml: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning.yaml: %w", err)
	}

	return cfg, nil
}

// LoadLevel loads levels/<name>.yaml, or levels/<name>.tmx when no YAML exists
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	yamlPath := path.Join("levels", name+".yaml")
	data, err := fs.ReadFile(l.fsys, yamlPath)
	if errors.Is(err, fs.ErrNotExist) {
		tmxPath := path.Join("levels", name+".tmx")
		if _, statErr := fs.Stat(l.fsys, tmxPath); statErr == nil {
			return LoadTMXLevel(l.fsys, tmxPath)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", name, err)
	}

	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	return &cfg, nil
}

// LoadLevels loads the named levels in order
func (l *Loader) LoadLevels(names []string) ([]*LevelConfig, error) {
	levels := make([]*LevelConfig, 0, len(names))
	for _, name := range names {
		lvl, err := l.LoadLevel(name)
		if err != nil {
			return nil, err
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}

// ListLevels returns the names of every level file, sorted
func (l *Loader) ListLevels() ([]string, error) {
	seen := make(map[string]bool)
	for _, pattern := range []string{"levels/*.yaml", "levels/*.tmx"} {
		matches, err := fs.Glob(l.fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			name := strings.TrimSuffix(path.Base(m), path.Ext(m))
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// LoadAll loads the tuning and every level it lists
func (l *Loader) LoadAll() (*GameConfig, error) {
	tuning, err := l.LoadTuning()
	if err != nil {
		return nil, err
	}
	if len(tuning.Levels) == 0 {
		return nil, ErrNoLevels
	}

	levels, err := l.LoadLevels(tuning.Levels)
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Tuning: tuning,
		Levels: levels,
	}, nil
}
