package challenge

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	stdpath "path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/helixdojo/internal/log"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// File is the root of a challenge YAML file.
type File struct {
	Challenges []Def `yaml:"challenges"`
}

// Def is one challenge as written in YAML.
type Def struct {
	ID                string   `yaml:"id"`
	Name              string   `yaml:"name"`
	Description       string   `yaml:"description"`
	Difficulty        string   `yaml:"difficulty"`
	Category          string   `yaml:"category"`
	Initial           string   `yaml:"initial"`
	Target            string   `yaml:"target"`
	Hints             []string `yaml:"hints"`
	OptimalKeystrokes int      `yaml:"optimal_keystrokes"`
}

func (d Def) challenge(source Source) Challenge {
	return Challenge{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Difficulty:        Difficulty(d.Difficulty),
		Category:          Category(d.Category),
		Initial:           d.Initial,
		Target:            d.Target,
		Hints:             append([]string(nil), d.Hints...),
		OptimalKeystrokes: d.OptimalKeystrokes,
		Source:            source,
	}
}

// Parse decodes one YAML file and validates every entry. Ids must be
// unique within the file.
func Parse(data []byte, source Source) ([]Challenge, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode challenges: %w", err)
	}

	seen := make(map[string]bool, len(file.Challenges))
	out := make([]Challenge, 0, len(file.Challenges))
	for i, def := range file.Challenges {
		c := def.challenge(source)
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("entry %d: %w: %s", i+1, ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out, nil
}

// LoadFS parses every *.yaml and *.yml file under root in fsys, in lexical
// path order.
func LoadFS(fsys fs.FS, root string, source Source) ([]Challenge, error) {
	var paths []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch stdpath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)

	var all []Challenge
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		challenges, err := Parse(data, source)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		all = append(all, challenges...)
	}
	return all, nil
}

// LoadDir reads user packs from dir. A missing or empty dir setting is not
// an error and yields no challenges.
func LoadDir(dir string) ([]Challenge, error) {
	if dir == "" {
		return nil, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug(log.CatCatalog, "pack directory missing", "dir", dir)
			return nil, nil
		}
		return nil, fmt.Errorf("stat pack directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pack path %s is not a directory", dir)
	}

	challenges, err := LoadFS(os.DirFS(dir), ".", SourceUser)
	if err != nil {
		return nil, fmt.Errorf("load packs from %s: %w", dir, err)
	}
	log.Info(log.CatCatalog, "loaded user packs", "dir", dir, "count", len(challenges))
	return challenges, nil
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	challenges, err := LoadFS(builtinFS, "builtin", SourceBuiltin)
	if err != nil {
		return nil, err
	}
	return NewCatalog(challenges)
})

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	c, err := builtin()
	if err != nil {
		return nil, fmt.Errorf("builtin challenges: %w", err)
	}
	return c, nil
}

// Load returns the built-in catalog with the packs in dir merged over it.
func Load(dir string) (*Catalog, error) {
	base, err := Builtin()
	if err != nil {
		return nil, err
	}
	packs, err := LoadDir(dir)
	if err != nil {
		return nil, err
	}
	return base.Merge(packs), nil
}
