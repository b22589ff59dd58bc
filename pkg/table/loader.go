package table

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/visakit/visarepr/pkg/condition"
	"github.com/visakit/visarepr/pkg/repr"
)

// ProjectFileName is the conventional project-local table file name.
const ProjectFileName = "visa_repr.yaml"

// ProjectFileNameAlt is the alternate project-local table file name.
const ProjectFileNameAlt = "visa_repr.yml"

//go:embed default_table.yaml
var bundledTable []byte

// rawEntry mirrors the on-disk entry shape before validation.
type rawEntry struct {
	When  string            `koanf:"when"`
	Types map[string]string `koanf:"types"`
}

type rawTable struct {
	Platforms []rawEntry `koanf:"platforms"`
}

// LoadFile loads and validates a platform table file.
func LoadFile(path string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &NotFoundError{Path: path}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, &ParseFileError{Path: path, Err: err}
	}
	return buildTable(k, path)
}

// LoadExplicit loads the table at an explicitly configured path. The
// path must be absolute so that resolution does not silently depend on
// the tool's working directory.
func LoadExplicit(path string) (*Table, error) {
	if !filepath.IsAbs(path) {
		return nil, &PathNotAbsoluteError{Path: path}
	}
	return LoadFile(path)
}

// FindProjectFile returns the path of the project-local table file in
// dir, or "" when the project does not carry one.
func FindProjectFile(dir string) string {
	for _, name := range []string{ProjectFileName, ProjectFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// LoadProject loads the project-local table from dir if one exists.
// Returns nil, nil when the project does not carry a table file; a
// present table fully replaces the bundled default, it is never merged
// with it.
func LoadProject(dir string) (*Table, error) {
	path := FindProjectFile(dir)
	if path == "" {
		return nil, nil
	}
	return LoadFile(path)
}

// Bundled returns the default table shipped with the tool. The asset is
// parsed once per process; a corrupt asset is a build defect of the
// tool itself, hence the panic.
var Bundled = sync.OnceValue(func() *Table {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(bundledTable), yaml.Parser()); err != nil {
		panic(fmt.Sprintf("bundled platform table is corrupt: %v", err))
	}
	t, err := buildTable(k, "bundled")
	if err != nil {
		panic(fmt.Sprintf("bundled platform table is invalid: %v", err))
	}
	if err := t.Validate(repr.Required()); err != nil {
		panic(fmt.Sprintf("bundled platform table is incomplete: %v", err))
	}
	return t
})

// buildTable converts the raw koanf tree into a validated Table:
// every condition parses and every token is drawn from the closed sets.
func buildTable(k *koanf.Koanf, source string) (*Table, error) {
	var raw rawTable
	if err := k.Unmarshal("", &raw); err != nil {
		return nil, &ParseFileError{Path: source, Err: err}
	}
	if len(raw.Platforms) == 0 {
		return nil, &ParseFileError{Path: source, Err: fmt.Errorf("no platforms entries")}
	}

	t := &Table{Source: source, Entries: make([]Entry, 0, len(raw.Platforms))}
	for i, re := range raw.Platforms {
		if re.When == "" {
			return nil, &ParseFileError{Path: source, Err: fmt.Errorf("entry %d has no when condition", i+1)}
		}
		cond, err := condition.Parse(re.When)
		if err != nil {
			return nil, &ParseFileError{Path: source, Err: fmt.Errorf("entry %d: %w", i+1, err)}
		}

		types := make(map[repr.TypeName]repr.Representation, len(re.Types))
		for name, token := range re.Types {
			typ, err := repr.ParseTypeName(name)
			if err != nil {
				return nil, &ParseFileError{Path: source, Err: fmt.Errorf("entry %d: %w", i+1, err)}
			}
			rep, err := repr.ParseRepresentation(token)
			if err != nil {
				return nil, &ParseFileError{Path: source, Err: fmt.Errorf("entry %d, type %s: %w", i+1, typ, err)}
			}
			types[typ] = rep
		}

		t.Entries = append(t.Entries, Entry{When: re.When, Types: types, cond: cond})
	}
	return t, nil
}
