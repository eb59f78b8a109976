package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"nxn_tictactoe/internal/logger"
	"nxn_tictactoe/internal/rules"
	"nxn_tictactoe/internal/rulesheet"
)

func main() {
	app := &cli.App{
		Name:  "rulesheet",
		Usage: "print the winning lines of the N×N board as a PDF",
		Flags: []cli.Flag{
			&cli.IntSliceFlag{
				Name:    "sizes",
				Aliases: []string{"s"},
				Usage:   "board side lengths to print",
				Value:   cli.NewIntSlice(3, 4, 5),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file",
				Value:   "rules.pdf",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "verbose logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logger.New(c.Bool("debug"))
	defer log.Sync()

	sizes := c.IntSlice("sizes")
	out := c.String("out")

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	if err = rulesheet.Render(f, rules.NewCatalog(), sizes); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}

	log.Infof("rule sheet for sizes %v written to %s", sizes, out)
	return nil
}
