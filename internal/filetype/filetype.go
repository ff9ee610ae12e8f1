// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package filetype maps file extensions to their comment conventions.
//
// A [Registry] is built once at startup from [Builtin] and, optionally, from
// types defined in YAML, and is then shared read-only.
package filetype

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownExtension is returned by [Registry.Lookup] for a path whose
// extension has no registered [Syntax].
var ErrUnknownExtension = errors.New("no comment syntax registered for extension")

// Format holds the strings used to lay out a rendered header. An empty
// string means the element is absent.
type Format struct {
	StartLine  string
	EndLine    string
	LinePrefix string
	LineSuffix string
}

// Syntax describes the comment conventions of one file type.
type Syntax struct {
	Name       string
	Extensions []string

	// KeepFirst matches leading lines, such as a shebang or an encoding
	// declaration, that must stay on top of the file.
	KeepFirst *regexp.Regexp
	// BlockStart and BlockEnd match the first and last lines of a block
	// comment.
	BlockStart *regexp.Regexp
	BlockEnd   *regexp.Regexp
	// LineComment matches a line that is a line comment.
	LineComment *regexp.Regexp

	Format Format
}

// DetectsHeaders reports whether existing headers can be recognized for s.
func (s *Syntax) DetectsHeaders() bool {
	return s.BlockStart != nil || s.LineComment != nil
}

func (s *Syntax) validate() error {
	if s.Name == "" {
		return errors.New("file type without a name")
	}
	if len(s.Extensions) == 0 {
		return fmt.Errorf("file type %q has no extensions", s.Name)
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("file type %q: extension %q must start with a dot", s.Name, ext)
		}
	}
	if (s.BlockStart == nil) != (s.BlockEnd == nil) {
		return fmt.Errorf("file type %q: block comment start and end must be set together", s.Name)
	}
	return nil
}

// Registry is an immutable mapping from extension to [Syntax].
type Registry struct {
	types []*Syntax
	byExt map[string]*Syntax
}

// New builds a Registry from types. When two types claim the same
// extension, the later one wins, so user-defined types can override
// built-in ones.
func New(types ...*Syntax) (*Registry, error) {
	r := &Registry{byExt: make(map[string]*Syntax)}
	byName := make(map[string]int)
	for _, t := range types {
		if err := t.validate(); err != nil {
			return nil, err
		}
		if i, ok := byName[t.Name]; ok {
			for _, ext := range r.types[i].Extensions {
				if r.byExt[ext] == r.types[i] {
					delete(r.byExt, ext)
				}
			}
			r.types[i] = t
		} else {
			byName[t.Name] = len(r.types)
			r.types = append(r.types, t)
		}
		for _, ext := range t.Extensions {
			r.byExt[ext] = t
		}
	}
	return r, nil
}

// Lookup returns the [Syntax] for path's extension.
func (r *Registry) Lookup(path string) (*Syntax, error) {
	ext := filepath.Ext(path)
	if s, ok := r.byExt[ext]; ok {
		return s, nil
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnknownExtension, path)
	}
	return nil, fmt.Errorf("%w: %q (%s)", ErrUnknownExtension, ext, path)
}

// Types returns the registered types in registration order.
func (r *Registry) Types() []*Syntax { return slices.Clone(r.types) }

// Patterns returns a recursive glob pattern for every registered extension,
// sorted.
func (r *Registry) Patterns() []string {
	patterns := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		patterns = append(patterns, "**/*"+ext)
	}
	slices.Sort(patterns)
	return patterns
}

// yamlSyntax is the YAML form of a [Syntax].
type yamlSyntax struct {
	Name        string   `yaml:"name"`
	Extensions  []string `yaml:"extensions"`
	KeepFirst   string   `yaml:"keepFirst"`
	BlockStart  string   `yaml:"blockCommentStart"`
	BlockEnd    string   `yaml:"blockCommentEnd"`
	LineComment string   `yaml:"lineComment"`
	StartLine   string   `yaml:"headerStartLine"`
	EndLine     string   `yaml:"headerEndLine"`
	LinePrefix  string   `yaml:"headerLinePrefix"`
	LineSuffix  string   `yaml:"headerLineSuffix"`
}

// ParseYAML parses a list of file types. Patterns are regular expressions
// in [regexp/syntax] form; header start and end lines get a trailing newline
// if they lack one.
//
// Example:
//
//	- name: toml
//	  extensions: [.toml]
//	  lineComment: '^\s*#'
//	  headerLinePrefix: '# '
func ParseYAML(data []byte) ([]*Syntax, error) {
	var raw []yamlSyntax
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing file types: %w", err)
	}
	types := make([]*Syntax, 0, len(raw))
	for _, y := range raw {
		s := &Syntax{
			Name:       y.Name,
			Extensions: y.Extensions,
			Format: Format{
				StartLine:  withNewline(y.StartLine),
				EndLine:    withNewline(y.EndLine),
				LinePrefix: y.LinePrefix,
				LineSuffix: y.LineSuffix,
			},
		}
		for _, p := range []struct {
			dst  **regexp.Regexp
			expr string
		}{
			{&s.KeepFirst, y.KeepFirst},
			{&s.BlockStart, y.BlockStart},
			{&s.BlockEnd, y.BlockEnd},
			{&s.LineComment, y.LineComment},
		} {
			if p.expr == "" {
				continue
			}
			re, err := regexp.Compile(p.expr)
			if err != nil {
				return nil, fmt.Errorf("file type %q: %w", y.Name, err)
			}
			*p.dst = re
		}
		if err := s.validate(); err != nil {
			return nil, err
		}
		types = append(types, s)
	}
	return types, nil
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
