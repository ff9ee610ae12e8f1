// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config reads the project configuration archive.
//
// The archive is a txtar file, by default .licensehd.txtar in the project
// directory, holding any of:
//
//	config.json      defaults for command-line flags
//	exclusions.json  a list of doublestar patterns to leave alone
//	filetypes.yaml   additional or overriding file types
//	templates/*.tmpl project templates, by name
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/simoncblyth/licensehd/internal/filetype"
	"golang.org/x/tools/txtar"
)

// DefaultName is the archive looked up in the project directory.
const DefaultName = ".licensehd.txtar"

// ErrUnknownEntry is returned for an archive file that is not understood.
var ErrUnknownEntry = errors.New("unknown configuration entry")

// Config is the project configuration. Zero fields are unset.
type Config struct {
	Owner       string `json:"owner"`
	Years       string `json:"years"`
	ProjectName string `json:"projname"`
	ProjectURL  string `json:"projurl"`
	Template    string `json:"tmpl"`
	Encoding    string `json:"enc"`

	Exclusions []string           `json:"-"`
	FileTypes  []*filetype.Syntax `json:"-"`
	Templates  map[string][]byte  `json:"-"`
}

// Load reads the archive at path. If required is false, a missing archive
// yields an empty configuration.
func Load(path string, required bool) (*Config, error) {
	ar, err := txtar.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return new(Config), nil
	}
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(ar)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads a configuration from ar.
func Parse(ar *txtar.Archive) (*Config, error) {
	cfg := new(Config)
	for _, f := range ar.Files {
		switch name := f.Name; {
		case name == "config.json":
			if err := decodeJSON(f.Data, cfg); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		case name == "exclusions.json":
			if err := decodeJSON(f.Data, &cfg.Exclusions); err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
		case name == "filetypes.yaml":
			types, err := filetype.ParseYAML(f.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			cfg.FileTypes = append(cfg.FileTypes, types...)
		case path.Dir(name) == "templates" && path.Ext(name) == ".tmpl":
			if cfg.Templates == nil {
				cfg.Templates = make(map[string][]byte)
			}
			cfg.Templates[strings.TrimSuffix(path.Base(name), ".tmpl")] = f.Data
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownEntry, name)
		}
	}
	return cfg, nil
}

// Registry returns the built-in file types extended by the configured ones.
func (c *Config) Registry() (*filetype.Registry, error) {
	return filetype.New(append(filetype.Builtin(), c.FileTypes...)...)
}

func decodeJSON(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
