package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func dumpCmd() *cli.Command {
	var outPath string

	return &cli.Command{
		Name:      "dump",
		Usage:     "Write the device payload, decompressed if needed",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output file (default: stdout)",
				Destination: &outPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			img, err := openImage(cmd, true)
			if err != nil {
				return err
			}
			defer img.Close()

			if outPath == "" {
				return img.Dump(cmd.Root().Writer)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := img.Dump(f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", outPath, err)
			}

			return nil
		},
	}
}
