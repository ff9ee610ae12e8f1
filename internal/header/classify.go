// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/simoncblyth/licensehd/internal/filetype"
)

// None marks an unset line index in a [Classification].
const None = -1

// Classification describes the leading lines of a file. Line indices are
// zero-based; [None] means the line was not found.
type Classification struct {
	// Skip is the number of leading lines that stay on top of the file
	// whatever happens, such as a shebang.
	Skip int
	// HeadStart and HeadEnd delimit the existing header, inclusive. HeadEnd
	// is None if a block comment does not close within the window.
	HeadStart int
	HeadEnd   int
	// CopyrightLine is the first header line matching the rendered
	// header's copyright line.
	CopyrightLine int
	// OtherCopyrightLine is the first header line that mentions Copyright
	// without matching the rendered header's copyright line.
	OtherCopyrightLine int
}

// HasHeader reports whether a complete header was found.
func (c Classification) HasHeader() bool {
	return c.HeadStart != None && c.HeadEnd != None
}

// HasLicense reports whether the header carries our own copyright line.
func (c Classification) HasLicense() bool {
	return c.HasHeader() && c.CopyrightLine != None
}

// HasOtherLicense reports whether the leading comment carries a foreign
// copyright notice. Unlike HasLicense it does not need the comment to be
// closed: a foreign notice must never be touched.
func (c Classification) HasOtherLicense() bool {
	return c.HeadStart != None && c.OtherCopyrightLine != None
}

func (c Classification) String() string {
	return fmt.Sprintf("skip:%d hs:%d he:%d cl:%d ol:%d", c.Skip, c.HeadStart, c.HeadEnd, c.CopyrightLine, c.OtherCopyrightLine)
}

// LogValue implements [slog.LogValuer].
func (c Classification) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("skip", c.Skip),
		slog.Int("head_start", c.HeadStart),
		slog.Int("head_end", c.HeadEnd),
		slog.Bool("license", c.HasLicense()),
		slog.Bool("other_license", c.HasOtherLicense()),
	)
}

// Classify examines the first [MaxHeadLines] of lines. cr recognizes the
// copyright line of the header that would be written; it may be nil, in
// which case every Copyright line is foreign.
func Classify(lines []string, syn *filetype.Syntax, cr *Copyright) Classification {
	c := Classification{
		HeadStart:          None,
		HeadEnd:            None,
		CopyrightLine:      None,
		OtherCopyrightLine: None,
	}
	w := lines[:min(len(lines), MaxHeadLines)]

	i := 0
	for syn.KeepFirst != nil && i < len(w) && syn.KeepFirst.MatchString(w[i]) {
		i++
	}
	c.Skip = i

	for i < len(w) && isBlank(w[i]) {
		i++
	}
	if i == len(w) {
		return c
	}

	switch {
	case syn.BlockStart != nil && syn.BlockStart.MatchString(w[i]):
		c.HeadStart = i
		c.scanBlock(w, syn, cr)
	case syn.LineComment != nil && syn.LineComment.MatchString(w[i]):
		c.HeadStart = i
		c.scanLineComments(w, syn, cr)
	}
	return c
}

// scanBlock finds the end of a block comment. The header ends at a blank
// line, or at the closing line plus one directly following blank line.
func (c *Classification) scanBlock(w []string, syn *filetype.Syntax, cr *Copyright) {
	for j := c.HeadStart; j < len(w); j++ {
		if isBlank(w[j]) {
			c.HeadEnd = j
			return
		}
		c.note(j, w[j], cr)
		if syn.BlockEnd.MatchString(w[j]) {
			c.HeadEnd = j
			if j+1 < len(w) && isBlank(w[j+1]) {
				c.HeadEnd = j + 1
			}
			return
		}
	}
}

// scanLineComments finds the end of a run of line comments. A blank line
// ending the run belongs to the header; any other line does not.
func (c *Classification) scanLineComments(w []string, syn *filetype.Syntax, cr *Copyright) {
	for j := c.HeadStart; j < len(w); j++ {
		if !syn.LineComment.MatchString(w[j]) {
			if isBlank(w[j]) {
				c.HeadEnd = j
			} else {
				c.HeadEnd = j - 1
			}
			return
		}
		c.note(j, w[j], cr)
	}
	// The window ends inside the run; treat its last line as the end.
	c.HeadEnd = len(w) - 1
}

func (c *Classification) note(j int, line string, cr *Copyright) {
	switch {
	case cr != nil && cr.Match(line):
		if c.CopyrightLine == None {
			c.CopyrightLine = j
		}
	case copyrightWord.MatchString(line):
		if c.OtherCopyrightLine == None {
			c.OtherCopyrightLine = j
		}
	}
}

func isBlank(line string) bool { return strings.TrimSpace(line) == "" }
