// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/simoncblyth/licensehd/testutil"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, Options{Level: slog.LevelInfo})
	ctx := Put(context.Background(), l)

	Debug(ctx, "hidden")
	Info(ctx, "processed", slog.String("path", "a.py"))
	Error(ctx, "failed", Err(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message logged at info level: %q", out)
	}
	for _, want := range []string{"processed", "path=a.py", "failed", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output to a buffer must not be colored: %q", out)
	}

	buf.Reset()
	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug message not logged after level change: %q", buf.String())
	}
}

func TestGetDefault(t *testing.T) {
	l := Get(context.Background())
	testutil.AssertEqual(t, IsDefault(l), true)
	Info(context.Background(), "goes nowhere")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		"debug":         {in: "debug", want: slog.LevelDebug},
		"upper warn":    {in: "WARN", want: slog.LevelWarn},
		"error":         {in: "error", want: slog.LevelError},
		"unknown level": {in: "loud", wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseLevel(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if !tc.wantErr {
				testutil.AssertEqual(t, got, tc.want)
			}
		})
	}
}
