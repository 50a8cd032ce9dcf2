package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires a record file and an expected file", cli.ErrUsage)
	}
	m, s, err := loadManifest(cfg.Manifest)
	if err != nil {
		return err
	}
	recs, err := convertFile(m, s, args[0], cc.In, convertOpts(cfg.Encode))
	if err != nil {
		return err
	}
	if len(recs) != 1 {
		return fmt.Errorf("%s: expected exactly one record, got %d", args[0], len(recs))
	}
	expected, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}

	got := pairLines(recs[0], nil)
	want := normalizeLines(string(expected))
	if got == want {
		theLog.Debug("no differences", "record", args[0], "expected", args[1])
		return nil
	}
	if err := writeLineDiff(cc.Out, want, got, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}

// normalizeLines drops blank lines and ensures a trailing newline.
func normalizeLines(s string) string {
	var b strings.Builder
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

// writeLineDiff writes a unified-style line diff from want to got.
func writeLineDiff(w io.Writer, want, got string, colors *Colors) error {
	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		prefix, paint := " ", (func(string, ...any) string)(nil)
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
			if colors != nil {
				paint = colors.Delete
			}
		case diffpatch.DiffInsert:
			prefix = "+"
			if colors != nil {
				paint = colors.Insert
			}
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out := prefix + line
			if paint != nil {
				out = paint("%s", strings.TrimSuffix(out, "\n")) + "\n"
			}
			if _, err := io.WriteString(w, out); err != nil {
				return err
			}
		}
	}
	return nil
}
