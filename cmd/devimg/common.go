package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/arloliu/devimg"
	"github.com/arloliu/devimg/image"
)

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if !cmd.Bool("verbose") {
		return ctx, nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return ctx, fmt.Errorf("create logger: %w", err)
	}
	image.SetLogger(l)

	return ctx, nil
}

// openImage reads the container named by the first argument. With decompress
// set, compressed payloads are decompressed before returning.
func openImage(cmd *cli.Command, decompress bool) (*image.Image, error) {
	path := cmd.Args().First()
	if path == "" {
		return nil, errors.New("missing container path")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	img, err := devimg.Open(data, image.WithLogger(image.Logger().With(zap.String("file", path))))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if decompress && img.IsCompressed() {
		if err := img.Decompress(); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}

	return img, nil
}
