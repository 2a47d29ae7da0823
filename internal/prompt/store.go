package prompt

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"golang.org/x/mod/semver"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*.yaml
var packFS embed.FS

// packFile is the on-disk shape of a template pack.
type packFile struct {
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Templates   []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Variables   []string `yaml:"variables"`
		Body        string   `yaml:"body"`
	} `yaml:"templates"`
}

// Store serves templates from versioned packs. Packs load lazily on first
// access and are immutable afterwards; concurrent first access for the same
// version is collapsed to a single load.
type Store struct {
	fsys fs.FS

	mu    sync.RWMutex
	packs map[string]map[string]*Template

	group singleflight.Group
}

// NewStore returns a Store over the packs embedded in the binary.
func NewStore() *Store {
	sub, err := fs.Sub(packFS, "templates")
	if err != nil {
		// embed.FS with a literal subdir cannot fail at runtime.
		panic(err)
	}
	return NewStoreFS(sub)
}

// NewStoreFS returns a Store over an arbitrary filesystem of <version>.yaml
// packs. Used by tests.
func NewStoreFS(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		packs: make(map[string]map[string]*Template),
	}
}

// ListVersions returns all pack versions in ascending semver order.
func (s *Store) ListVersions() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, ".yaml"))
	}
	sort.Slice(versions, func(i, j int) bool {
		return semver.Compare(versions[i], versions[j]) < 0
	})
	return versions, nil
}

// Latest returns the highest version identifier.
func (s *Store) Latest() (string, error) {
	versions, err := s.ListVersions()
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", &ConfigurationError{Err: fmt.Errorf("no template packs found")}
	}
	return versions[len(versions)-1], nil
}

// GetTemplate returns the template with the given name from the given
// version's pack, loading the pack on first access.
func (s *Store) GetTemplate(version, name string) (*Template, error) {
	pack, err := s.pack(version)
	if err != nil {
		return nil, err
	}
	tmpl, ok := pack[name]
	if !ok {
		return nil, &NotFoundError{Version: version, Name: name}
	}
	return tmpl, nil
}

// Templates returns all templates in a version's pack, sorted by name.
func (s *Store) Templates(version string) ([]*Template, error) {
	pack, err := s.pack(version)
	if err != nil {
		return nil, err
	}
	out := make([]*Template, 0, len(pack))
	for _, t := range pack {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ClearCache drops all loaded packs. Test isolation only; packs are
// immutable in production so there is never a reason to reload.
func (s *Store) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.packs = make(map[string]map[string]*Template)
}

func (s *Store) pack(version string) (map[string]*Template, error) {
	s.mu.RLock()
	pack, ok := s.packs[version]
	s.mu.RUnlock()
	if ok {
		return pack, nil
	}

	v, err, _ := s.group.Do(version, func() (any, error) {
		// Re-check under the write path: a racing load may have finished
		// between the RUnlock above and the singleflight slot.
		s.mu.RLock()
		cached, ok := s.packs[version]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := s.load(version)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.packs[version] = loaded
		s.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*Template), nil
}

func (s *Store) load(version string) (map[string]*Template, error) {
	data, err := fs.ReadFile(s.fsys, path.Clean(version+".yaml"))
	if err != nil {
		return nil, &NotFoundError{Version: version}
	}

	var pf packFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, &ConfigurationError{Version: version, Err: err}
	}
	if pf.Version != version {
		return nil, &ConfigurationError{Version: version, Err: fmt.Errorf("pack declares version %q", pf.Version)}
	}

	pack := make(map[string]*Template, len(pf.Templates))
	for _, t := range pf.Templates {
		if t.Name == "" {
			return nil, &ConfigurationError{Version: version, Err: fmt.Errorf("template with empty name")}
		}
		if t.Body == "" {
			return nil, &ConfigurationError{Version: version, Err: fmt.Errorf("template %q has empty body", t.Name)}
		}
		if _, dup := pack[t.Name]; dup {
			return nil, &ConfigurationError{Version: version, Err: fmt.Errorf("duplicate template %q", t.Name)}
		}
		pack[t.Name] = &Template{
			Version:     version,
			Name:        t.Name,
			Description: t.Description,
			Variables:   t.Variables,
			Body:        t.Body,
		}
	}
	return pack, nil
}
