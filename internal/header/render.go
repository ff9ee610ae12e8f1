// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header renders license headers, recognizes existing ones and plans
// the rewrite of a file's leading lines.
//
// Everything in this package is pure: it works on lines that the caller has
// already read and returns values without touching the filesystem.
package header

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/simoncblyth/licensehd/internal/filetype"
)

// MaxHeadLines is the number of leading lines examined by [Classify].
const MaxHeadLines = 30

// maxHeaderLines leaves room in the detection window for a two-line
// preamble such as a shebang followed by an encoding declaration.
const maxHeaderLines = MaxHeadLines - 2

// copyrightWord marks the line of a header that carries the copyright notice.
// Markers such as Erlang's %CopyrightBegin% do not count.
var copyrightWord = regexp.MustCompile(`\bCopyright\b`)

var (
	// ErrNoCopyright is returned by Render when no template line contains
	// the word "Copyright".
	ErrNoCopyright = errors.New("rendered header has no Copyright line")
	// ErrAmbiguousCopyright is returned by Render when more than one
	// template line contains the word "Copyright".
	ErrAmbiguousCopyright = errors.New("rendered header has more than one Copyright line")
	// ErrHeaderTooLong is returned by Render when the header would not fit
	// into the detection window, so a later run could not recognize it.
	ErrHeaderTooLong = errors.New("rendered header exceeds the detection window")
)

// Header is a rendered header ready to be spliced into a file.
type Header struct {
	// Lines are newline-terminated; the last one is blank.
	Lines     []string
	Copyright *Copyright
}

// Render lays out template lines with the comment format f.
func Render(template []string, f filetype.Format) (*Header, error) {
	var lines []string
	lines = append(lines, splitLines(f.StartLine)...)
	body0 := len(lines)
	for _, l := range template {
		body, eol := cutEOL(l)
		switch {
		case f.LinePrefix != "" && strings.TrimSpace(body) == "":
			body = strings.TrimRight(f.LinePrefix, " \t")
		default:
			body = f.LinePrefix + body
		}
		lines = append(lines, body+f.LineSuffix+eolOrLF(eol))
	}
	lines = append(lines, splitLines(f.EndLine)...)
	lines = append(lines, "\n")

	if len(lines) > maxHeaderLines {
		return nil, fmt.Errorf("%w: %d lines, limit is %d", ErrHeaderTooLong, len(lines), maxHeaderLines)
	}

	var found []string
	for _, l := range lines[body0 : body0+len(template)] {
		if copyrightWord.MatchString(l) {
			found = append(found, l)
		}
	}
	if len(found) == 0 {
		return nil, ErrNoCopyright
	}
	if len(found) > 1 {
		return nil, fmt.Errorf("%w: %q", ErrAmbiguousCopyright, found)
	}
	return &Header{Lines: lines, Copyright: newCopyright(found[0])}, nil
}

// Copyright recognizes the copyright line of a rendered header regardless
// of the years it names.
type Copyright struct {
	Prefix string
	Years  string
	Suffix string
	re     *regexp.Regexp
}

const yearsExpr = `[0-9]{4}(?:-[0-9]{1,4})?`

var yearsLine = regexp.MustCompile(`^(.*?)(` + yearsExpr + `)(.*?)\s*$`)

func newCopyright(line string) *Copyright {
	body, _ := cutEOL(line)
	m := yearsLine.FindStringSubmatch(body)
	if m == nil {
		body = strings.TrimRight(body, " \t")
		return &Copyright{
			Prefix: body,
			re:     regexp.MustCompile(`^` + regexp.QuoteMeta(body) + `\s*$`),
		}
	}
	return &Copyright{
		Prefix: m[1],
		Years:  m[2],
		Suffix: m[3],
		re:     regexp.MustCompile(`^` + regexp.QuoteMeta(m[1]) + yearsExpr + regexp.QuoteMeta(m[3]) + `\s*$`),
	}
}

// Match reports whether line is a copyright line of the same shape, with
// any year or year range.
func (c *Copyright) Match(line string) bool { return c.re.MatchString(line) }

// splitLines splits s into newline-terminated lines. A missing final
// newline is added.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		return lines[:len(lines)-1]
	}
	lines[len(lines)-1] += "\n"
	return lines
}

// cutEOL splits a line into its body and its terminator ("\n", "\r\n" or
// "").
func cutEOL(line string) (body, eol string) {
	if body, ok := strings.CutSuffix(line, "\r\n"); ok {
		return body, "\r\n"
	}
	if body, ok := strings.CutSuffix(line, "\n"); ok {
		return body, "\n"
	}
	return line, ""
}

func eolOrLF(eol string) string {
	if eol == "" {
		return "\n"
	}
	return eol
}
