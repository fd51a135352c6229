package clicmds

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/store"
	"gitlab.com/wsaver/workspace"
)

var defaultStoreMaker workspace.StoreMaker = store.Maker

// storeMaker opens the store cleared by Clear
var storeMaker = defaultStoreMaker

func ClearFlags() []cli.Flag {
	return commonFlags()
}

// Clear removes every saved variable
func Clear(ctx *cli.Context) (err error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db := storeMaker(cfg.DataPath, workspace.AccessWrite)
	if err := db.Init(); err != nil {
		log.Error().Err(err).Msg("failed to init database for clearing")
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			if err != nil {
				log.Error().Err(closeErr).Msg("failed to close database after clear error")
				return
			}
			err = errors.Wrap(closeErr, "closing workspace store")
		}
	}()

	if err := db.Clear(); err != nil {
		return err
	}
	log.Info().Str("db", cfg.DataPath).Msg("workspace cleared")
	return nil
}
