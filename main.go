package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/clicmds"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	app := cli.NewApp()
	app.Name = "wsaver"
	app.Version = "0.1"
	app.Usage = "save and restore workspace variables"
	app.Commands = []*cli.Command{
		{
			Name:    "save",
			Aliases: []string{"s"},
			Usage:   "save variables from a TOML file",
			Action:  clicmds.Save,
			Flags:   clicmds.SaveFlags(),
		},
		{
			Name:    "view",
			Aliases: []string{"v"},
			Usage:   "print saved variables",
			Action:  clicmds.View,
			Flags:   clicmds.ViewFlags(),
		},
		{
			Name:    "export",
			Aliases: []string{"e"},
			Usage:   "print the workspace as TOML",
			Action:  clicmds.Export,
			Flags:   clicmds.ExportFlags(),
		},
		{
			Name:   "clear",
			Usage:  "remove every saved variable",
			Action: clicmds.Clear,
			Flags:  clicmds.ClearFlags(),
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Msg("wsaver failed")
	}
}
