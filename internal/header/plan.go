// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"slices"
	"strings"
)

// Plan is the new content of a file: Pre, then Header, then Post.
type Plan struct {
	Pre    []string
	Header []string
	Post   []string
	// Replace is true when an existing header is replaced rather than a
	// new one inserted.
	Replace bool
}

// NewPlan splices h into lines according to c. A file with our own
// license has its header replaced; any other file gets h inserted right
// after the preserved preamble.
//
// The header takes the line terminator of the file, and a preamble line
// lacking a terminator receives one.
func NewPlan(lines []string, c Classification, h *Header) *Plan {
	eol := detectEOL(lines)
	p := &Plan{Header: make([]string, len(h.Lines))}
	for i, l := range h.Lines {
		body, _ := cutEOL(l)
		p.Header[i] = body + eol
	}

	if c.HasLicense() {
		p.Replace = true
		p.Pre = slices.Clip(lines[:c.HeadStart])
		p.Post = lines[c.HeadEnd+1:]
	} else {
		p.Pre = slices.Clip(lines[:c.Skip])
		p.Post = lines[c.Skip:]
	}

	if n := len(p.Pre); n > 0 {
		if _, e := cutEOL(p.Pre[n-1]); e == "" {
			p.Pre = append(slices.Clone(p.Pre[:n-1]), p.Pre[n-1]+eol)
		}
	}
	return p
}

// Lines returns the planned lines in order.
func (p *Plan) Lines() []string {
	return slices.Concat(p.Pre, p.Header, p.Post)
}

// String returns the planned file content.
func (p *Plan) String() string {
	var sb strings.Builder
	for _, part := range [][]string{p.Pre, p.Header, p.Post} {
		for _, l := range part {
			sb.WriteString(l)
		}
	}
	return sb.String()
}

// SplitLines splits text into lines, keeping each line's terminator. The
// last line has no terminator if text does not end with a newline.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func detectEOL(lines []string) string {
	for _, l := range lines {
		if _, eol := cutEOL(l); eol != "" {
			return eol
		}
	}
	return "\n"
}
