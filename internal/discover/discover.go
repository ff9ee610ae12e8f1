// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package discover finds the files of a project tree that should carry a
// header.
package discover

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// vcsDirs are never descended into.
var vcsDirs = []string{".git", ".hg", ".svn"}

// Walk returns the files under root whose slash-separated path relative to
// root matches one of include and none of exclude. A directory matching
// exclude is skipped as a whole. Paths are returned joined with root, in
// lexical order.
func Walk(ctx context.Context, root string, include, exclude []string) ([]string, error) {
	for _, pat := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("%w: %q", doublestar.ErrBadPattern, pat)
		}
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if slices.Contains(vcsDirs, d.Name()) || matchAny(exclude, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if matchAny(include, rel) && !matchAny(exclude, rel) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		// Patterns were validated by Walk.
		if ok, _ := doublestar.Match(pat, name); ok {
			return true
		}
	}
	return false
}
