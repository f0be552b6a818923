package codegen

import (
	"cmp"
	"maps"
	"path"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// RuntimeImportPath is the import path of the package that generated code
// calls into.
const RuntimeImportPath = "go.pact.im/x/keyedgen/keyed"

// PackageImport represents an import statement in Go.
type PackageImport struct {
	// PackageName is an optional alias name used when importing.
	PackageName GoIdentifier `json:"name,omitempty" yaml:"name,omitempty"`
	// ImportPath is the import path of the Go package.
	ImportPath string `json:"path" yaml:"path"`
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// Name returns the identifier the package is referred to by in the
// generated file. Without an alias it is guessed from the import path the
// same way goimports does, e.g. "yaml" for "gopkg.in/yaml.v3" and "json"
// for "github.com/go-json-experiment/json/v2".
func (p PackageImport) Name() string {
	if p.PackageName != "" {
		return string(p.PackageName)
	}
	name := path.Base(p.ImportPath)
	if majorVersion.MatchString(name) {
		name = path.Base(path.Dir(p.ImportPath))
	}
	name = strings.TrimPrefix(name, "go-")
	if i := strings.IndexFunc(name, notIdentifier); i >= 0 {
		name = name[:i]
	}
	return name
}

func notIdentifier(r rune) bool {
	return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9' || r == '_' || r >= utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

// Header represents metadata for generating a Go source file.
type Header struct {
	// PackageName is the name of the generated Go package.
	PackageName GoIdentifier `json:"package" yaml:"package"`
	// ExtraImports contains additional packages to import, e.g. packages
	// referenced by default value expressions and helper coders. Unused
	// imports are removed from the generated file.
	ExtraImports []PackageImport `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// Imports returns a deduplicated and sorted list of package imports
// required by the generated file.
func (h *Header) Imports() []PackageImport {
	keyedPackage := PackageImport{ImportPath: RuntimeImportPath}
	jsontextPackage := PackageImport{
		ImportPath: "github.com/go-json-experiment/json/jsontext",
	}

	imports := map[PackageImport]struct{}{
		keyedPackage:    {},
		jsontextPackage: {},
	}
	for _, imp := range h.ExtraImports {
		imports[imp] = struct{}{}
	}

	return slices.SortedFunc(maps.Keys(imports), func(a, b PackageImport) int {
		return cmp.Or(
			cmp.Compare(a.ImportPath, b.ImportPath),
			cmp.Compare(a.PackageName, b.PackageName),
		)
	})
}

// PackageNames returns names of all packages imported by the generated
// file.
func (h *Header) PackageNames() []string {
	imports := h.Imports()
	names := make([]string, len(imports))
	for i, imp := range imports {
		names[i] = imp.Name()
	}
	return names
}
