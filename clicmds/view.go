package clicmds

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/saver"
	"gitlab.com/wsaver/workspace"
)

func ViewFlags() []cli.Flag {
	return commonFlags(
		&cli.BoolFlag{
			Name:  "dump",
			Usage: "dumps values with spew",
			Value: false,
		},
	)
}

// View prints the saved variables, or only the ones named as arguments
func View(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	ns, err := saver.Load(cfg.DataPath, cfg.AllowCallables)
	if err != nil {
		return err
	}

	names := ns.Names()
	if ctx.Args().Present() {
		names = ctx.Args().Slice()
	}

	out := ctx.App.Writer
	for _, name := range names {
		v, ok := ns[name]
		if !ok {
			return errors.Errorf("%s is not in the workspace", name)
		}
		if ctx.Bool("dump") {
			fmt.Fprintf(out, "%s = %s", name, spew.Sdump(v.Interface()))
			continue
		}
		fmt.Fprintf(out, "%s (%s) = %s\n", name, v.Kind, printValue(v))
	}
	return nil
}

func printValue(v workspace.Value) string {
	if v.Kind == workspace.KindCallable && v.Fn == nil {
		return v.String() + " [unresolved]"
	}
	return v.String()
}
