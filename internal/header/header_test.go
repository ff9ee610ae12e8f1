// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/simoncblyth/licensehd/internal/filetype"
	"github.com/simoncblyth/licensehd/testutil"
)

var testTemplate = []string{
	"Copyright (c) 2020 Acme. All Rights Reserved.\n",
	"\n",
	"Licensed under the Apache License.\n",
}

func syntaxFor(t *testing.T, path string) *filetype.Syntax {
	t.Helper()
	s, err := filetype.Default().Lookup(path)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func render(t *testing.T, path string, template []string) (*Header, *filetype.Syntax) {
	t.Helper()
	syn := syntaxFor(t, path)
	h, err := Render(template, syn.Format)
	if err != nil {
		t.Fatalf("Render(%s): %v", path, err)
	}
	return h, syn
}

func repeat(line string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = line
	}
	return lines
}

func cls(skip, hs, he, cl, ol int) Classification {
	return Classification{Skip: skip, HeadStart: hs, HeadEnd: he, CopyrightLine: cl, OtherCopyrightLine: ol}
}

func TestRender(t *testing.T) {
	cases := map[string]struct {
		path string
		want []string
	}{
		"python": {
			path: "a.py",
			want: []string{
				"#\n",
				"# Copyright (c) 2020 Acme. All Rights Reserved.\n",
				"#\n",
				"# Licensed under the Apache License.\n",
				"#\n",
				"\n",
			},
		},
		"c": {
			path: "a.c",
			want: []string{
				"/*\n",
				" * Copyright (c) 2020 Acme. All Rights Reserved.\n",
				" *\n",
				" * Licensed under the Apache License.\n",
				" */\n",
				"\n",
			},
		},
		"csharp without start and end lines": {
			path: "a.cs",
			want: []string{
				"// Copyright (c) 2020 Acme. All Rights Reserved.\n",
				"//\n",
				"// Licensed under the Apache License.\n",
				"\n",
			},
		},
		"erlang multi-line start and end": {
			path: "a.erl",
			want: []string{
				"%% -*- erlang -*-\n",
				"%% %CopyrightBegin%\n",
				"%%\n",
				"%% Copyright (c) 2020 Acme. All Rights Reserved.\n",
				"%%\n",
				"%% Licensed under the Apache License.\n",
				"%%\n",
				"%% %CopyrightEnd%\n",
				"\n",
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, _ := render(t, tc.path, testTemplate)
			testutil.AssertEqual(t, h.Lines, tc.want)
		})
	}
}

func TestRenderSuffix(t *testing.T) {
	f := filetype.Format{LinePrefix: "(* ", LineSuffix: " *)"}
	h, err := Render([]string{"Copyright 2020 X\n", "\n"}, f)
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, h.Lines, []string{"(* Copyright 2020 X *)\n", "(* *)\n", "\n"})
}

func TestRenderErrors(t *testing.T) {
	f := filetype.Format{LinePrefix: "# "}
	cases := map[string]struct {
		template []string
		want     error
	}{
		"no copyright":  {template: []string{"Licensed to you.\n"}, want: ErrNoCopyright},
		"lowercase":     {template: []string{"copyright 2020 X\n"}, want: ErrNoCopyright},
		"two copyright": {template: []string{"Copyright 2020 X\n", "Copyright 2021 Y\n"}, want: ErrAmbiguousCopyright},
		"too long":      {template: append([]string{"Copyright 2020 X\n"}, repeat("more\n", MaxHeadLines)...), want: ErrHeaderTooLong},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Render(tc.template, f); !errors.Is(err, tc.want) {
				t.Fatalf("Render() err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestCopyright(t *testing.T) {
	h, _ := render(t, "a.py", testTemplate)
	cr := h.Copyright
	testutil.AssertEqual(t, cr.Prefix, "# Copyright (c) ")
	testutil.AssertEqual(t, cr.Years, "2020")
	testutil.AssertEqual(t, cr.Suffix, " Acme. All Rights Reserved.")

	cases := map[string]struct {
		line string
		want bool
	}{
		"same":             {line: "# Copyright (c) 2020 Acme. All Rights Reserved.\n", want: true},
		"year range":       {line: "# Copyright (c) 1999-2024 Acme. All Rights Reserved.\n", want: true},
		"short range crlf": {line: "# Copyright (c) 2019-20 Acme. All Rights Reserved.\r\n", want: true},
		"trailing spaces":  {line: "# Copyright (c) 2021 Acme. All Rights Reserved.   \n", want: true},
		"other owner":      {line: "# Copyright (c) 2020 Other. All Rights Reserved.\n", want: false},
		"other prefix":     {line: "// Copyright (c) 2020 Acme. All Rights Reserved.\n", want: false},
		"no year":          {line: "# Copyright (c) Acme. All Rights Reserved.\n", want: false},
		"two-digit year":   {line: "# Copyright (c) 20 Acme. All Rights Reserved.\n", want: false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, cr.Match(tc.line), tc.want)
		})
	}
}

func TestCopyrightWithoutYear(t *testing.T) {
	h, err := Render([]string{"Copyright Acme\n"}, filetype.Format{LinePrefix: "# "})
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, h.Copyright.Years, "")
	testutil.AssertEqual(t, h.Copyright.Match("# Copyright Acme  \n"), true)
	testutil.AssertEqual(t, h.Copyright.Match("# Copyright Acme Inc\n"), false)
}

func TestClassify(t *testing.T) {
	py, _ := render(t, "a.py", testTemplate)
	c, _ := render(t, "a.c", testTemplate)

	ownPy := slices.Concat([]string{"#!/usr/bin/env python\n"}, py.Lines, []string{"import os\n"})
	oldYears := slices.Clone(ownPy)
	oldYears[2] = strings.Replace(oldYears[2], "2020", "2015-2019", 1)

	cases := map[string]struct {
		path  string
		lines []string
		want  Classification
	}{
		"empty file": {
			path: "a.py",
			want: cls(0, None, None, None, None),
		},
		"shebang without header": {
			path:  "a.py",
			lines: []string{"#!/usr/bin/env python\n", "import os\n"},
			want:  cls(1, None, None, None, None),
		},
		"shebang and coding": {
			path:  "a.py",
			lines: []string{"#!/usr/bin/env python\n", "# -*- coding: utf-8 -*-\n", "import os\n"},
			want:  cls(2, None, None, None, None),
		},
		"keep first only counts on top": {
			path:  "a.py",
			lines: []string{"\n", "#!/usr/bin/env python\n", "import os\n"},
			want:  cls(0, 1, 1, None, None),
		},
		"own header after shebang": {
			path:  "a.py",
			lines: ownPy,
			want:  cls(1, 1, 6, 2, None),
		},
		"own header with other years": {
			path:  "a.py",
			lines: oldYears,
			want:  cls(1, 1, 6, 2, None),
		},
		"foreign copyright": {
			path:  "a.py",
			lines: []string{"# Copyright 2015 OtherCorp\n", "\n", "x = 1\n"},
			want:  cls(0, 0, 1, None, 0),
		},
		"comment followed by code": {
			path:  "a.py",
			lines: []string{"# just a note\n", "import os\n"},
			want:  cls(0, 0, 0, None, None),
		},
		"blank lines before comment": {
			path:  "a.py",
			lines: []string{"\n", "\n", "# note\n", "\n", "x = 1\n"},
			want:  cls(0, 2, 3, None, None),
		},
		"line comments fill the window": {
			path:  "a.py",
			lines: repeat("# line\n", MaxHeadLines+10),
			want:  cls(0, 0, MaxHeadLines-1, None, None),
		},
		"code first": {
			path:  "a.py",
			lines: []string{"import os\n", "# Copyright 2015 X\n"},
			want:  cls(0, None, None, None, None),
		},
		"trailing comment is code": {
			path:  "a.py",
			lines: []string{"x = 1  # Copyright 2015 X\n"},
			want:  cls(0, None, None, None, None),
		},
		"c own header": {
			path:  "a.c",
			lines: append(slices.Clone(c.Lines), "int x;\n"),
			want:  cls(0, 0, 5, 1, None),
		},
		"c foreign block": {
			path:  "a.h",
			lines: []string{"/*\n", " * Copyright 2015 OtherCorp\n", " */\n", "#include <stdio.h>\n"},
			want:  cls(0, 0, 2, None, 1),
		},
		"c block end absorbs one blank": {
			path:  "a.c",
			lines: []string{"/*\n", " * note\n", " */\n", "\n", "\n", "int x;\n"},
			want:  cls(0, 0, 3, None, None),
		},
		"c blank inside block ends header": {
			path:  "a.c",
			lines: []string{"/*\n", " note\n", "\n", " */\n"},
			want:  cls(0, 0, 2, None, None),
		},
		"c unterminated block": {
			path:  "a.c",
			lines: append([]string{"/*\n"}, repeat(" * text\n", MaxHeadLines+5)...),
			want:  cls(0, 0, None, None, None),
		},
		"c unterminated block with foreign notice": {
			path:  "a.c",
			lines: append([]string{"/*\n", " * Copyright 1999 Other\n"}, repeat(" * text\n", MaxHeadLines+5)...),
			want:  cls(0, 0, None, None, 1),
		},
		"c one-line block": {
			path:  "a.c",
			lines: []string{"/* Copyright 2015 Other */\n", "int x;\n"},
			want:  cls(0, 0, 0, None, 0),
		},
		"c line comments": {
			path:  "a.cpp",
			lines: []string{"// Copyright 2015 Other\n", "// more\n", "\n", "int x;\n"},
			want:  cls(0, 0, 2, None, 0),
		},
		"erlang foreign notice": {
			path:  "a.erl",
			lines: []string{"%% Copyright 2015 X\n", "\n"},
			want:  cls(0, 0, 1, None, 0),
		},
		"erlang markers are not notices": {
			path:  "a.erl",
			lines: []string{"%% %CopyrightBegin%\n", "%% %CopyrightEnd%\n", "-module(a).\n"},
			want:  cls(0, 0, 1, None, None),
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			h, syn := render(t, tc.path, testTemplate)
			got := Classify(tc.lines, syn, h.Copyright)
			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestClassificationFlags(t *testing.T) {
	cases := map[string]struct {
		c                             Classification
		header, license, otherLicense bool
	}{
		"nothing":              {c: cls(0, None, None, None, None)},
		"header only":          {c: cls(0, 0, 3, None, None), header: true},
		"own license":          {c: cls(0, 0, 3, 1, None), header: true, license: true},
		"foreign":              {c: cls(0, 0, 3, None, 1), header: true, otherLicense: true},
		"unterminated":         {c: cls(0, 0, None, 1, None)},
		"unterminated foreign": {c: cls(0, 0, None, None, 1), otherLicense: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.c.HasHeader(), tc.header)
			testutil.AssertEqual(t, tc.c.HasLicense(), tc.license)
			testutil.AssertEqual(t, tc.c.HasOtherLicense(), tc.otherLicense)
		})
	}
}

func TestClassifyNilCopyright(t *testing.T) {
	syn := syntaxFor(t, "a.py")
	got := Classify([]string{"# Copyright (c) 2020 Acme\n", "\n"}, syn, nil)
	testutil.AssertEqual(t, got, cls(0, 0, 1, None, 0))
}
