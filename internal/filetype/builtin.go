// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package filetype

import (
	"regexp"

	"github.com/simoncblyth/licensehd/unwrap"
)

var (
	cBlockStart = regexp.MustCompile(`^\s*/\*`)
	cBlockEnd   = regexp.MustCompile(`\*/\s*$`)
	slashes     = regexp.MustCompile(`^\s*//`)
	hash        = regexp.MustCompile(`^\s*#`)
	shebang     = regexp.MustCompile(`^#!|^# -\*-`)
)

var cFormat = Format{
	StartLine:  "/*\n",
	EndLine:    " */\n",
	LinePrefix: " * ",
}

var hashFormat = Format{
	StartLine:  "##\n",
	EndLine:    "##\n",
	LinePrefix: "## ",
}

// Builtin returns the built-in file types. Each call returns fresh values.
func Builtin() []*Syntax {
	return []*Syntax{
		{
			Name:        "java",
			Extensions:  []string{".java", ".scala", ".groovy", ".jape", ".js"},
			BlockStart:  cBlockStart,
			BlockEnd:    cBlockEnd,
			LineComment: slashes,
			Format:      cFormat,
		},
		{
			Name:        "script",
			Extensions:  []string{".sh", ".csh", ".bash"},
			KeepFirst:   shebang,
			LineComment: hash,
			Format:      hashFormat,
		},
		{
			Name:        "perl",
			Extensions:  []string{".pl"},
			KeepFirst:   shebang,
			LineComment: hash,
			Format:      hashFormat,
		},
		{
			Name:        "python",
			Extensions:  []string{".py"},
			KeepFirst:   regexp.MustCompile(`^#!|^# +pylint|^# +-\*-|^#-\*-|^# +coding|^# +encoding`),
			LineComment: hash,
			Format: Format{
				StartLine:  "#\n",
				EndLine:    "#\n",
				LinePrefix: "# ",
			},
		},
		{
			Name:       "xml",
			Extensions: []string{".xml"},
			KeepFirst:  regexp.MustCompile(`^\s*<\?xml.*\?>`),
			BlockStart: regexp.MustCompile(`^\s*<!--`),
			BlockEnd:   regexp.MustCompile(`-->\s*$`),
			Format: Format{
				StartLine:  "<!--\n",
				EndLine:    "  -->\n",
				LinePrefix: "  - ",
			},
		},
		{
			Name:        "sql",
			Extensions:  []string{".sql"},
			LineComment: regexp.MustCompile(`^\s*--`),
			Format: Format{
				StartLine:  "--\n",
				EndLine:    "--\n",
				LinePrefix: "-- ",
			},
		},
		{
			Name:        "c",
			Extensions:  []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hpp", ".hh", ".cu", ".cuh", ".m", ".mm"},
			BlockStart:  cBlockStart,
			BlockEnd:    cBlockEnd,
			LineComment: slashes,
			Format:      cFormat,
		},
		{
			Name:        "glsl",
			Extensions:  []string{".glsl"},
			KeepFirst:   regexp.MustCompile(`^#version`),
			BlockStart:  cBlockStart,
			BlockEnd:    cBlockEnd,
			LineComment: slashes,
			Format:      cFormat,
		},
		{
			Name:        "ruby",
			Extensions:  []string{".rb"},
			KeepFirst:   regexp.MustCompile(`^#!`),
			BlockStart:  regexp.MustCompile(`^=begin`),
			BlockEnd:    regexp.MustCompile(`^=end`),
			LineComment: hash,
			Format:      hashFormat,
		},
		{
			Name:        "csharp",
			Extensions:  []string{".cs"},
			LineComment: slashes,
			Format:      Format{LinePrefix: "// "},
		},
		{
			Name:        "vb",
			Extensions:  []string{".vb"},
			LineComment: regexp.MustCompile(`^\s*'`),
			Format:      Format{LinePrefix: "' "},
		},
		{
			Name:        "erlang",
			Extensions:  []string{".erl", ".src", ".config", ".schema"},
			LineComment: regexp.MustCompile(`^\s*%`),
			Format: Format{
				StartLine:  "%% -*- erlang -*-\n%% %CopyrightBegin%\n%%\n",
				EndLine:    "%%\n%% %CopyrightEnd%\n",
				LinePrefix: "%% ",
			},
		},
		{
			Name:        "go",
			Extensions:  []string{".go"},
			KeepFirst:   regexp.MustCompile(`^//usr/bin/env`),
			BlockStart:  cBlockStart,
			BlockEnd:    cBlockEnd,
			LineComment: slashes,
			Format:      Format{LinePrefix: "// "},
		},
	}
}

// Default returns a [Registry] holding the [Builtin] types.
func Default() *Registry {
	r, err := New(Builtin()...)
	return unwrap.Value("built-in file types", r, err)
}
