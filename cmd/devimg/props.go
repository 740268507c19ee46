package main

import (
	"context"
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/devimg"
)

func propsCmd() *cli.Command {
	var output string

	return &cli.Command{
		Name:      "props",
		Usage:     "Print a machine-readable summary of a container",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "output",
				Usage:       "output format: json or yaml",
				Value:       "json",
				Destination: &output,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			img, err := openImage(cmd, false)
			if err != nil {
				return err
			}
			defer img.Close()

			return writeReport(cmd.Root().Writer, devimg.Inspect(img), output)
		},
	}
}

func writeReport(w io.Writer, r devimg.Report, output string) error {
	switch output {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)

		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}

		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", output)
	}
}
