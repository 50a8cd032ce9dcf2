package main

import (
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/qparams/convert"
	"github.com/signadot/qparams/manifest"
	"github.com/signadot/qparams/schema"
)

func convertMain(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("%w: -j must be at least 1", cli.ErrUsage)
	}
	m, s, err := loadManifest(cfg.Manifest)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	if err := checkStdin(args); err != nil {
		return err
	}

	// files convert concurrently against the shared schema; output keeps
	// argument order.
	results := make([][]convert.Params, len(args))
	g := new(errgroup.Group)
	g.SetLimit(cfg.Jobs)
	for i, arg := range args {
		g.Go(func() error {
			ps, err := convertFile(m, s, arg, cc.In, convertOpts(cfg.Encode))
			if err != nil {
				return err
			}
			results[i] = ps
			theLog.Debug("converted", "file", arg, "records", len(ps))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	rw := &recordWriter{w: cc.Out, format: format}
	if format == PairsFormat || format == QueryFormat {
		rw.colors = cfg.colors(cc.Out)
	}
	for _, recs := range results {
		for _, ps := range recs {
			if err := rw.write(ps); err != nil {
				return err
			}
		}
	}
	return nil
}

func convertFile(m *manifest.Manifest, s *schema.Schema, arg string, stdin io.Reader, opts []convert.Option) ([]convert.Params, error) {
	recs, err := readRecords(arg, stdin)
	if err != nil {
		return nil, err
	}
	res := make([]convert.Params, len(recs))
	for i, rec := range recs {
		if err := m.Check(rec); err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", arg, i+1, err)
		}
		res[i] = convert.Convert(s, rec, opts...)
	}
	return res, nil
}

func readRecords(arg string, stdin io.Reader) ([]map[string]any, error) {
	r := stdin
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	recs, err := manifest.DecodeRecords(r)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", arg, err)
	}
	return recs, nil
}

// checkStdin rejects reading stdin more than once.
func checkStdin(args []string) error {
	n := 0
	for _, arg := range args {
		if arg == "-" {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%w: stdin (-) given %d times", cli.ErrUsage, n)
	}
	return nil
}
