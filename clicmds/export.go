package clicmds

import (
	"fmt"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/wsaver/saver"
	"gitlab.com/wsaver/workspace"
)

func ExportFlags() []cli.Flag {
	return commonFlags()
}

// Export prints the saved workspace as TOML
func Export(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	ns, err := saver.Load(cfg.DataPath, cfg.AllowCallables)
	if err != nil {
		return err
	}

	m := make(map[string]interface{}, len(ns))
	for name, v := range ns {
		if tv, ok := tomlValue(v); ok {
			m[name] = tv
		}
	}

	tree, err := toml.TreeFromMap(m)
	if err != nil {
		return errors.Wrap(err, "building toml")
	}
	doc, err := tree.ToTomlString()
	if err != nil {
		return errors.Wrap(err, "writing toml")
	}
	fmt.Fprint(ctx.App.Writer, doc)
	return nil
}

// tomlValue converts v into something go-toml can write. TOML has no null so
// nils are dropped, bytes become strings and callables their names.
func tomlValue(v workspace.Value) (interface{}, bool) {
	switch v.Kind {
	case workspace.KindNil, workspace.KindInvalid:
		return nil, false
	case workspace.KindBytes:
		return string(v.Bytes), true
	case workspace.KindCallable:
		return v.Name, true
	case workspace.KindList:
		list := make([]interface{}, 0, len(v.List))
		for _, e := range v.List {
			if te, ok := tomlValue(e); ok {
				list = append(list, te)
			}
		}
		return list, true
	case workspace.KindMap:
		m := make(map[string]interface{}, len(v.Map))
		for k, e := range v.Map {
			if te, ok := tomlValue(e); ok {
				m[k] = te
			}
		}
		return m, true
	}
	return v.Interface(), true
}
