package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

func infoCmd() *cli.Command {
	var decompress bool

	return &cli.Command{
		Name:      "info",
		Usage:     "Print the header, entries and property sets of a container",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "decompress", Usage: "decompress the payload before printing", Destination: &decompress},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			img, err := openImage(cmd, decompress)
			if err != nil {
				return err
			}
			defer img.Close()

			img.Print(cmd.Root().Writer)

			return nil
		},
	}
}
