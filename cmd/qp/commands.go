package main

import (
	"runtime"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "qp").
		WithSynopsis("qp [opts] command [opts]").
		WithDescription("qp converts records into query parameters.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return qpMain(cfg, cc, args)
		}).
		WithSubs(
			ConvertCommand(cfg),
			ValidateCommand(cfg),
			DiffCommand(cfg))
}

func ConvertCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConvertConfig{MainConfig: mainCfg, Format: "pairs", Jobs: runtime.GOMAXPROCS(0)}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Convert, "convert").
		WithAliases("c", "conv").
		WithSynopsis("convert -m manifest [-e] [-f format] [-j n] [files]").
		WithDescription("convert record documents to query parameters").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return convertMain(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate manifest [manifests...]").
		WithDescription("compile manifests and list their keys").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff -m manifest [-e] <record> <expected>").
		WithDescription("compare the key=value lines of a record with an expected file").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}
