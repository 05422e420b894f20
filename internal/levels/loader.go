package levels

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// Default returns the embedded level set.
func Default() ([]Level, error) {
	return Parse(defaultLevelsYAML)
}

// Load reads the level set.
// Search order: customPath -> ~/.mystery-keyboard/levels.yaml -> ./configs/levels.yaml -> embedded default
//
// customPath may be a single file or a directory of level files. Errors in
// customPath are returned; the other locations are skipped when unreadable.
func Load(customPath string) ([]Level, error) {
	if customPath != "" {
		info, err := os.Stat(customPath)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", customPath, err)
		}
		if info.IsDir() {
			return NewLoader(customPath).LoadAll()
		}
		return LoadFile(customPath)
	}

	if p := userLevelsPath(); p != "" {
		if lvls, err := LoadFile(p); err == nil {
			return lvls, nil
		}
	}

	if lvls, err := LoadFile(filepath.Join("configs", "levels.yaml")); err == nil {
		return lvls, nil
	}

	return Default()
}

// LoadFile loads a single level file.
func LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", path, err)
	}
	lvls, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
	}
	for i := range lvls {
		lvls[i].FilePath = path
	}
	return lvls, nil
}

// Loader collects levels from every level file in a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{Root: dir}
}

// LoadAll walks Root and concatenates the levels of every .yaml/.yml file,
// in lexical file order. The combined set is validated as a whole.
func (l *Loader) LoadAll() ([]Level, error) {
	var files []string
	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}
	sort.Strings(files)

	var all []Level
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("levels: reading %s: %w", path, err)
		}
		lvls, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("levels: parsing %s: %w", path, err)
		}
		for i := range lvls {
			lvls[i].FilePath = path
		}
		all = append(all, lvls...)
	}

	if err := Validate(all); err != nil {
		return nil, fmt.Errorf("levels: loading %s: %w", l.Root, err)
	}
	return all, nil
}

// userLevelsPath returns the per-user level file, or empty if home is unavailable.
func userLevelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mystery-keyboard", "levels.yaml")
}
