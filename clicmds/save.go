package clicmds

import (
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/saver"
	"gitlab.com/wsaver/workspace"
)

func SaveFlags() []cli.Flag {
	return commonFlags(
		&cli.StringFlag{
			Name:  "from",
			Usage: "TOML file of variables to save",
			Value: "",
		},
	)
}

// Save the variables of a TOML file as a workspace, replacing the store contents
func Save(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if ctx.String("from") == "" {
		return errors.New("--from is required")
	}

	tree, err := toml.LoadFile(ctx.String("from"))
	if err != nil {
		return errors.Wrap(err, "reading variables")
	}

	ns := make(workspace.Namespace)
	s := saver.New(cfg.DataPath, ns).AllowCallables(cfg.AllowCallables)
	return s.Scope(func() error {
		ns.Update(workspace.NamespaceOf(tree.ToMap()))
		log.Info().Int("variables", len(ns)).Str("db", cfg.DataPath).Msg("saving workspace")
		return nil
	})
}
