package image

import (
	"errors"

	"github.com/arloliu/devimg/compress"
	"github.com/arloliu/devimg/internal/options"
	"github.com/arloliu/devimg/progmeta"
	"github.com/arloliu/devimg/sniff"
	"go.uber.org/zap"
)

// config holds the collaborators of an image.
type config struct {
	sniffer      sniff.Sniffer
	decompressor compress.Decompressor
	mapper       progmeta.Mapper
	logger       *zap.Logger
}

// Option configures an Image at construction time.
type Option = options.Option[*config]

func newConfig(opts ...Option) (*config, error) {
	cfg := &config{
		sniffer: sniff.Default,
		mapper:  progmeta.Default,
	}

	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if cfg.logger == nil {
		cfg.logger = Logger()
	}

	return cfg, nil
}

// WithSniffer replaces the payload format detector.
func WithSniffer(s sniff.Sniffer) Option {
	return options.New(func(c *config) error {
		if s == nil {
			return errors.New("nil sniffer")
		}
		c.sniffer = s

		return nil
	})
}

// WithDecompressor sets the decompressor of a compressed image instead of
// resolving it from the descriptor's compression type. Other images ignore it.
func WithDecompressor(d compress.Decompressor) Option {
	return options.New(func(c *config) error {
		if d == nil {
			return errors.New("nil decompressor")
		}
		c.decompressor = d

		return nil
	})
}

// WithMapper replaces the program metadata mapper.
func WithMapper(m progmeta.Mapper) Option {
	return options.New(func(c *config) error {
		if m == nil {
			return errors.New("nil program metadata mapper")
		}
		c.mapper = m

		return nil
	})
}

// WithLogger sets the logger of one image. The package logger is used otherwise.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(c *config) {
		c.logger = l
	})
}
