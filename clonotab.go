package main

import (
	"log"
	"os"

	"github.com/nvnieuwk/clonotab/clonotab_api"
	cli "github.com/urfave/cli/v2"
)

// Flags shared by the print action and the check command
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    "Configuration file (YAML) describing the datasets, references and table options",
			Category: "Required",
		},
		&cli.BoolFlag{
			Name:     "allow-inconsistent",
			Usage:    "Don't stop when VDJ and GEX cell barcodes of a dataset disagree",
			Category: "Optional",
		},
		&cli.BoolFlag{
			Name:     "mute-warnings",
			Usage:    "Don't log warnings",
			Category: "Optional",
		},
		&cli.BoolFlag{
			Name:     "verbose",
			Aliases:  []string{"v"},
			Usage:    "Log the consistency check results and timings",
			Category: "Optional",
		},
	}
}

func main() {
	app := &cli.App{
		Name:            "clonotab",
		Usage:           "A tool to print clonotype tables and check VDJ/GEX consistency",
		HideHelpCommand: true,
		Version:         "0.1.0dev",
		Flags: append(commonFlags(),
			&cli.StringFlag{
				Name:     "clonotypes",
				Aliases:  []string{"i"},
				Usage:    "The clonotype groups (YAML) to print",
				Category: "Required",
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "The location of the output tables, defaults to stdout",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "sum",
				Usage:    "Add a sum row to every table",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "mean",
				Usage:    "Add a mean row to every table",
				Category: "Optional",
			},
			&cli.BoolFlag{
				Name:     "toy",
				Usage:    "Print pairwise ancestry inferences between exact subclonotypes",
				Category: "Optional",
			},
			&cli.StringFlag{
				Name:     "pout",
				Usage:    "Write parseable output to this file, or 'stdout'. A .csv suffix writes CSV, anything else TSV",
				Category: "Optional",
			},
			&cli.StringSliceFlag{
				Name:     "pcols",
				Usage:    "The parseable output fields, all fields by default",
				Category: "Optional",
			},
		),
		Action: func(Cctx *cli.Context) error {
			config := clonotab_api.ReadConfig(Cctx)
			return clonotab_api.Execute(Cctx, config)
		},
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Only check the VDJ/GEX consistency of the datasets",
				Flags: append(commonFlags(),
					&cli.StringFlag{
						Name:     "clonotypes",
						Aliases:  []string{"i"},
						Usage:    "The clonotype groups (YAML), used to sample one cell per exact subclonotype",
						Category: "Optional",
					},
				),
				Action: func(Cctx *cli.Context) error {
					config := clonotab_api.ReadConfig(Cctx)
					return clonotab_api.Check(Cctx, config)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
