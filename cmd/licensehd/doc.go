// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Licensehd adds or updates license headers in source files.

Usage:

	licensehd [flags] [paths...]

Without paths, every file under the project directory whose extension has a
known comment syntax is processed, except for version control directories
and the configured exclusions.

For each file, licensehd looks at the first 30 lines. Lines that must stay on
top, such as a shebang or an encoding declaration, are kept in place. If the
following comment already carries the copyright line of the configured
template, the file is left alone, unless -update is given, in which case the
header is replaced, typically to refresh the years. A comment carrying any
other copyright notice is never touched. Otherwise the header is inserted
right after the kept lines.

Files are rewritten through a temporary <path>.tmp file that is checked not
to have lost any lines before it replaces the original. Mode and
modification time of the original are preserved.

The header text comes from a template with ${years}, ${owner},
${projectname} and ${projecturl} placeholders; $$ stands for a dollar sign.
Built-in templates are under-apache-2 (the default), apache-2, mit and isc.
The -tmpl flag also accepts a path to a template file.

Defaults for -owner, -years, -projname, -projurl, -tmpl and -enc, together
with exclusions, extra file types and project templates, can be kept in a
.licensehd.txtar file in the project directory. It is a txtar archive that
can contain the following files:

  - config.json: a JSON object with any of the keys owner, years, projname,
    projurl, tmpl and enc.
  - exclusions.json: a JSON array of doublestar patterns, relative to the
    project directory, of files and directories to leave alone.
  - filetypes.yaml: a list of file types that add to or override the
    built-in ones, for example:

	- name: toml
	  extensions: [.toml]
	  lineComment: '^\s*#'
	  headerLinePrefix: '# '

  - templates/<name>.tmpl: templates selectable with -tmpl <name>.

Flags take precedence over config.json.

With -check nothing is written and the exit status is non-zero if any file
lacks its header, which suits continuous integration. -dry lists the files
that would be modified.
*/
package main

import (
	_ "embed"

	"github.com/simoncblyth/licensehd/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
