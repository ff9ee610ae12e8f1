// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/simoncblyth/licensehd/cli"
	"github.com/simoncblyth/licensehd/internal/config"
	"github.com/simoncblyth/licensehd/internal/discover"
	"github.com/simoncblyth/licensehd/internal/driver"
	"github.com/simoncblyth/licensehd/internal/filetype"
	"github.com/simoncblyth/licensehd/internal/header"
	"github.com/simoncblyth/licensehd/internal/rewrite"
	"github.com/simoncblyth/licensehd/internal/tmpl"
	"github.com/simoncblyth/licensehd/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	projdir  string
	config   string
	tmpl     string
	years    string
	owner    string
	projName string
	projURL  string
	enc      string
	update   bool
	dry      bool
	check    bool
	show     bool
	jobs     int

	// now is replaced in tests.
	now func() time.Time
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.projdir, "projdir", ".", "Project `directory` to walk when no paths are given.")
	fs.StringVar(&a.config, "config", "", "Configuration `archive` (default: .licensehd.txtar in the project directory, if present).")
	fs.StringVar(&a.tmpl, "tmpl", "", "Template `name` or path to a template file (default: "+tmpl.DefaultName+").")
	fs.StringVar(&a.years, "years", "", "Year or year range for the copyright line (default: the current year).")
	fs.StringVar(&a.owner, "owner", "", "Name of the copyright `owner`.")
	fs.StringVar(&a.projName, "projname", "", "Project `name`, for templates that mention it.")
	fs.StringVar(&a.projURL, "projurl", "", "Project `URL`, for templates that mention it.")
	fs.StringVar(&a.enc, "enc", "", "Text `encoding` of the source files (default: utf-8).")
	fs.BoolVar(&a.update, "update", false, "Replace headers that already carry the copyright line, e.g. to refresh the years.")
	fs.BoolVar(&a.dry, "dry", false, "Print the files that would be modified, without making changes.")
	fs.BoolVar(&a.check, "check", false, "Like -dry, but fail if any file would be modified.")
	fs.BoolVar(&a.show, "show", false, "Print the header rendered for every file type and exit.")
	fs.IntVar(&a.jobs, "jobs", 1, "Number of files to process at once.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	if a.jobs < 1 {
		return fmt.Errorf("%w: -jobs must be at least 1, got %d", cli.ErrInvalidArgs, a.jobs)
	}

	cfgPath, required := a.config, a.config != ""
	if !required {
		cfgPath = filepath.Join(a.projdir, config.DefaultName)
	}
	cfg, err := config.Load(cfgPath, required)
	if err != nil {
		return err
	}
	reg, err := cfg.Registry()
	if err != nil {
		return fmt.Errorf("%s: %w", cfgPath, err)
	}

	lines, err := a.template(cfg)
	if err != nil {
		return err
	}

	if a.show {
		return showHeaders(env, reg, lines)
	}

	enc, err := rewrite.Encoding(first(a.enc, cfg.Encoding))
	if err != nil {
		return fmt.Errorf("%w: %v", cli.ErrInvalidArgs, err)
	}

	paths := env.Args
	if len(paths) == 0 {
		paths, err = discover.Walk(ctx, a.projdir, reg.Patterns(), cfg.Exclusions)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "discovered files", slog.String("dir", a.projdir), slog.Int("count", len(paths)))
	}

	d := &driver.Driver{
		Registry: reg,
		Template: lines,
		Update:   a.update,
		Dry:      a.dry,
		Check:    a.check,
		Jobs:     a.jobs,
		Encoding: enc,
		Out:      env.Stdout,
	}
	_, err = d.Run(ctx, paths)
	return err
}

// template loads and expands the configured template. Flags win over the
// configuration archive, which wins over built-in defaults.
func (a *app) template(cfg *config.Config) ([]string, error) {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	owner := first(a.owner, cfg.Owner)
	if owner == "" {
		return nil, fmt.Errorf("%w: -owner is required", cli.ErrInvalidArgs)
	}

	src, err := tmpl.Load(first(a.tmpl, cfg.Template, tmpl.DefaultName), cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}
	lines, err := tmpl.Expand(src, tmpl.Vars{
		"years":       first(a.years, cfg.Years, strconv.Itoa(now().Year())),
		"owner":       owner,
		"projectname": first(a.projName, cfg.ProjectName),
		"projecturl":  first(a.projURL, cfg.ProjectURL),
	})
	if errors.Is(err, tmpl.ErrUnsetVar) {
		return nil, fmt.Errorf("%w: %w (set them with flags or in config.json)", cli.ErrInvalidArgs, err)
	}
	return lines, err
}

func showHeaders(env *cli.Env, reg *filetype.Registry, lines []string) error {
	for _, syn := range reg.Types() {
		h, err := header.Render(lines, syn.Format)
		if err != nil {
			return fmt.Errorf("rendering header for %s files: %w", syn.Name, err)
		}
		fmt.Fprintf(env.Stdout, "%s %v\n", syn.Name, syn.Extensions)
		for _, l := range h.Lines {
			fmt.Fprint(env.Stdout, l)
		}
	}
	return nil
}

func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
