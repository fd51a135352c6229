package clicmds

import (
	"io/ioutil"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/workspace"
)

func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "db",
			Usage: "workspace store directory",
			Value: "workspace.db",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "config to use",
			Value: "",
		},
		&cli.BoolFlag{
			Name:  "callables",
			Usage: "allow callables to be saved and loaded",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "debug logging",
			Value: false,
		},
	}
	return append(flags, extra...)
}

// loadConfig from --config, with flags filling whatever the file left empty
func loadConfig(ctx *cli.Context) (*workspace.Config, error) {
	cfg := &workspace.Config{}

	if ctx.String("config") == "" {
		cfg = &workspace.Config{
			DataPath:       ctx.String("db"),
			AllowCallables: ctx.Bool("callables"),
			Verbose:        ctx.Bool("verbose"),
		}
	} else {
		data, err := ioutil.ReadFile(ctx.String("config"))
		if err != nil {
			return nil, err
		}

		if err := toml.NewDecoder(strings.NewReader(string(data))).Decode(cfg); err != nil {
			return nil, errors.Wrap(err, "decoding config")
		}

		if cfg.DataPath == "" && ctx.String("db") != "" {
			cfg.DataPath = ctx.String("db")
		}
		if ctx.Bool("callables") {
			cfg.AllowCallables = true
		}
		if ctx.Bool("verbose") {
			cfg.Verbose = true
		}
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Debug().Str("db", cfg.DataPath).Bool("callables", cfg.AllowCallables).Msg("config loaded")
	return cfg, nil
}
