package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
)

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires at least one manifest", cli.ErrUsage)
	}
	colors := cfg.colors(cc.Out)
	var errs []error
	for _, arg := range args {
		m, s, err := loadManifest(arg)
		if err != nil {
			theLog.Error("invalid manifest", "file", arg, "error", err)
			errs = append(errs, err)
			continue
		}
		keys := s.Keys()
		if colors != nil {
			for i := range keys {
				keys[i] = colors.Key("%s", keys[i])
			}
		}
		fmt.Fprintf(cc.Out, "%s: %s\n", m.Name, strings.Join(keys, " "))
	}
	return errors.Join(errs...)
}
