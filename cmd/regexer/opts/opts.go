package opts

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/regexer/pkg/config"
	"github.com/walteh/regexer/pkg/log"
)

// DefaultConfigFile is read when present and --config is not given
const DefaultConfigFile = ".regexer.yaml"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile     string
	ConfigExplicit bool
	Debug          bool
	Trace          bool
	Engine         string
	CommentPrefix  string
	NoComments     bool

	UserLogger *log.UserLogger
}

// LoadConfig loads the config file, if any, and applies the shared flag overrides.
// A missing default config file is not an error.
func (o *RootOpts) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg := &config.Config{}

	path := o.ConfigFile
	if path == "" {
		path = DefaultConfigFile
	}

	if _, err := os.Stat(path); err == nil || o.ConfigExplicit {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using flags only")
	}

	if o.Engine != "" {
		cfg.Engine = o.Engine
	}
	if o.CommentPrefix != "" {
		cfg.CommentPrefix = o.CommentPrefix
	}
	if o.NoComments {
		cfg.CommentPrefixDisabled = true
	}

	return cfg, nil
}
