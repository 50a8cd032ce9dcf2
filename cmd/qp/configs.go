package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/qparams/convert"
	"github.com/signadot/qparams/manifest"
	"github.com/signadot/qparams/schema"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='colorize output (default: when writing to a terminal)'"`
	Verbose bool `cli:"name=v aliases=verbose desc='log debug messages'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// colors returns the output colors for w, or nil when output is plain.
func (cfg *MainConfig) colors(w io.Writer) *Colors {
	if cfg.Color {
		return NewColors()
	}
	colorSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorSet = opt.Value != nil
		break
	}
	if colorSet {
		return nil
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return NewColors()
	}
	return nil
}

type ConvertConfig struct {
	*MainConfig
	Manifest string `cli:"name=m aliases=manifest desc='manifest file declaring the fields'"`
	Encode   bool   `cli:"name=e aliases=encode desc='percent-encode values'"`
	Format   string `cli:"name=f aliases=format desc='output format: pairs, query, json or yaml'"`
	Jobs     int    `cli:"name=j aliases=jobs desc='number of files converted concurrently'"`

	Convert *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Validate *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Manifest string `cli:"name=m aliases=manifest desc='manifest file declaring the fields'"`
	Encode   bool   `cli:"name=e aliases=encode desc='percent-encode values'"`

	Diff *cli.Command
}

// loadManifest loads and compiles the manifest at path.
func loadManifest(path string) (*manifest.Manifest, *schema.Schema, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("%w: a manifest (-m) is required", cli.ErrUsage)
	}
	m, err := manifest.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := m.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	theLog.Debug("compiled manifest", "name", m.Name, "keys", s.Keys())
	return m, s, nil
}

func convertOpts(encode bool) []convert.Option {
	if encode {
		return []convert.Option{convert.EncodeValues()}
	}
	return nil
}
