package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/signadot/qparams/convert"
)

type Colors struct {
	Key    func(string, ...any) string
	Sep    func(string, ...any) string
	Value  func(string, ...any) string
	Insert func(string, ...any) string
	Delete func(string, ...any) string
}

func NewColors() *Colors {
	sprintf := func(c *color.Color) func(string, ...any) string {
		c.EnableColor()
		return c.SprintfFunc()
	}
	return &Colors{
		Key:    sprintf(color.RGB(196, 96, 16)),
		Sep:    sprintf(color.RGB(255, 0, 196)),
		Value:  sprintf(color.RGB(128, 216, 236)),
		Insert: sprintf(color.New(color.FgGreen)),
		Delete: sprintf(color.New(color.FgRed)),
	}
}

// Format names a record output format.
type Format string

const (
	PairsFormat Format = "pairs"
	QueryFormat Format = "query"
	JSONFormat  Format = "json"
	YAMLFormat  Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case PairsFormat, QueryFormat, JSONFormat, YAMLFormat:
		return f, nil
	case "p":
		return PairsFormat, nil
	case "q":
		return QueryFormat, nil
	case "j":
		return JSONFormat, nil
	case "y":
		return YAMLFormat, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", cli.ErrUsage, s)
}

// recordWriter writes converted records in one format.
type recordWriter struct {
	w      io.Writer
	format Format
	colors *Colors
	n      int
}

func (rw *recordWriter) write(ps convert.Params) error {
	defer func() { rw.n++ }()
	switch rw.format {
	case PairsFormat:
		if rw.n > 0 {
			if _, err := io.WriteString(rw.w, "\n"); err != nil {
				return err
			}
		}
		_, err := io.WriteString(rw.w, pairLines(ps, rw.colors))
		return err
	case QueryFormat:
		parts := make([]string, len(ps))
		for i, p := range ps {
			parts[i] = colorPair(p, rw.colors)
		}
		sep := "&"
		if rw.colors != nil {
			sep = rw.colors.Sep("&")
		}
		_, err := fmt.Fprintln(rw.w, strings.Join(parts, sep))
		return err
	case JSONFormat:
		pairs := make([][2]string, len(ps))
		for i, p := range ps {
			pairs[i] = [2]string{p.Key, p.Value}
		}
		return json.NewEncoder(rw.w).Encode(pairs)
	case YAMLFormat:
		doc := make(yaml.MapSlice, len(ps))
		for i, p := range ps {
			doc[i] = yaml.MapItem{Key: p.Key, Value: p.Value}
		}
		d, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		if rw.n > 0 {
			if _, err := io.WriteString(rw.w, "---\n"); err != nil {
				return err
			}
		}
		_, err = rw.w.Write(d)
		return err
	}
	return fmt.Errorf("unknown format %q", rw.format)
}

// pairLines renders one key=value line per pair.
func pairLines(ps convert.Params, colors *Colors) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(colorPair(p, colors))
		b.WriteByte('\n')
	}
	return b.String()
}

func colorPair(p convert.Pair, colors *Colors) string {
	if colors == nil {
		return p.String()
	}
	return colors.Key("%s", p.Key) + colors.Sep("=") + colors.Value("%s", p.Value)
}
