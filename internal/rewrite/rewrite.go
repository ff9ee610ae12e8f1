// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package rewrite reads source files and replaces them with a planned
// content without ever losing lines.
//
// A rewrite is staged in <path>.tmp next to the original, validated by
// comparing line counts and only then moved over the original.
package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"github.com/simoncblyth/licensehd/internal/header"
	"github.com/simoncblyth/licensehd/logger"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// TempSuffix is appended to a path to name its staging file.
const TempSuffix = ".tmp"

// ErrValidation is wrapped by every [ValidationError].
var ErrValidation = errors.New("rewritten file failed validation")

// ValidationError reports a staged file whose line count breaks the rewrite
// invariant. The staging file is left in place for inspection.
type ValidationError struct {
	Path    string
	Before  int
	After   int
	Replace bool
}

func (e *ValidationError) Error() string {
	want := ">="
	if e.Replace {
		want = "=="
	}
	return fmt.Sprintf("%s: %v: %d lines after rewrite, want %s %d (staged in %s)",
		e.Path, ErrValidation, e.After, want, e.Before, e.Path+TempSuffix)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Encoding resolves an encoding name such as "utf-8", "latin1" or
// "windows-1252". UTF-8 is returned as [encoding.Nop] so that file bytes
// pass through unchanged.
func Encoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return encoding.Nop, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("encoding %q: %w", name, err)
	}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		return encoding.Nop, nil
	}
	return enc, nil
}

// File is a source file read into memory.
type File struct {
	Path  string
	Lines []string
	Info  fs.FileInfo
	Enc   encoding.Encoding
}

// Load reads and decodes the regular file at path. A nil enc means UTF-8.
func Load(path string, enc encoding.Encoding) (*File, error) {
	if enc == nil {
		enc = encoding.Nop
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: not a regular file", path)
	}
	lines, err := readLines(path, enc)
	if err != nil {
		return nil, err
	}
	return &File{Path: path, Lines: lines, Info: info, Enc: enc}, nil
}

// Write replaces the contents of f with the planned content.
//
// The original is left untouched if anything fails. On a validation failure
// the staging file is kept and a [*ValidationError] is returned.
func Write(ctx context.Context, f *File, p *header.Plan) error {
	tmp := f.Path + TempSuffix
	data, err := f.Enc.NewEncoder().String(p.String())
	if err != nil {
		return fmt.Errorf("%s: encoding: %w", f.Path, err)
	}
	if err := os.WriteFile(tmp, []byte(data), f.Info.Mode().Perm()); err != nil {
		return err
	}
	if err := copyMeta(tmp, f.Info); err != nil {
		return errors.Join(err, os.Remove(tmp))
	}
	logger.Debug(ctx, "staged", slog.String("path", tmp))

	if err := validate(f, tmp, p.Replace); err != nil {
		return err
	}

	if err := atomic.ReplaceFile(tmp, f.Path); err != nil {
		return fmt.Errorf("%s: replacing with %s: %w", f.Path, tmp, err)
	}
	if err := copyMeta(f.Path, f.Info); err != nil {
		return err
	}
	logger.Debug(ctx, "replaced", slog.String("path", f.Path), slog.Bool("replace", p.Replace))
	return nil
}

func validate(f *File, tmp string, replace bool) error {
	before, err := readLines(f.Path, f.Enc)
	if err != nil {
		return err
	}
	after, err := readLines(tmp, f.Enc)
	if err != nil {
		return err
	}
	ok := len(after) >= len(before)
	if replace {
		ok = len(after) == len(before)
	}
	if !ok {
		return &ValidationError{Path: f.Path, Before: len(before), After: len(after), Replace: replace}
	}
	return nil
}

func copyMeta(path string, info fs.FileInfo) error {
	if err := os.Chmod(path, info.Mode().Perm()); err != nil {
		return err
	}
	// A zero access time is left unchanged.
	return os.Chtimes(path, time.Time{}, info.ModTime())
}

func readLines(path string, enc encoding.Encoding) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return nil, fmt.Errorf("%s: decoding: %w", path, err)
	}
	return header.SplitLines(string(text)), nil
}
