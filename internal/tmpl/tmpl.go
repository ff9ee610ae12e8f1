// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package tmpl loads license templates and substitutes their ${name}
// placeholders.
package tmpl

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/simoncblyth/licensehd/unwrap"
)

//go:embed templates/*.tmpl
var builtin embed.FS

// DefaultName is the template used when none is configured.
const DefaultName = "under-apache-2"

var (
	// ErrUnknownTemplate is returned by Load when no template has the
	// requested name.
	ErrUnknownTemplate = errors.New("unknown template")
	// ErrUnsetVar is returned by Expand when a template references a
	// placeholder that has no value.
	ErrUnsetVar = errors.New("template placeholder not set")
)

// Vars holds placeholder values. The placeholders understood by the
// built-in templates are years, owner, projectname and projecturl.
type Vars map[string]string

// Builtin returns the names of the embedded templates, sorted.
func Builtin() []string {
	entries, err := fs.ReadDir(builtin, "templates")
	entries = unwrap.Value("embedded templates", entries, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".tmpl"))
	}
	return names
}

// Load returns the source of the template called name. Templates from extra
// (keyed by name) take precedence over embedded ones; a name containing a
// path separator or ending in .tmpl is read from the filesystem.
func Load(name string, extra map[string][]byte) ([]byte, error) {
	if src, ok := extra[name]; ok {
		return src, nil
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.Contains(name, "/") || strings.HasSuffix(name, ".tmpl") {
		src, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownTemplate, err)
		}
		return src, nil
	}
	src, err := builtin.ReadFile(path.Join("templates", name+".tmpl"))
	if err != nil {
		known := append(Builtin(), slices.Sorted(maps.Keys(extra))...)
		return nil, fmt.Errorf("%w %q (known: %s)", ErrUnknownTemplate, name, strings.Join(known, ", "))
	}
	return src, nil
}

// Expand substitutes ${name} and $name placeholders in src with vars and
// returns the result split into newline-terminated lines. "$$" yields a
// literal dollar sign. Referencing a placeholder without a non-empty value
// is an error.
func Expand(src []byte, vars Vars) ([]string, error) {
	var missing []string
	out := os.Expand(string(src), func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := vars[name]
		if !ok || v == "" {
			if !slices.Contains(missing, name) {
				missing = append(missing, name)
			}
			return ""
		}
		return v
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsetVar, strings.Join(missing, ", "))
	}
	return splitLines(out), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
