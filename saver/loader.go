package saver

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/wsaver/store"
	"gitlab.com/wsaver/workspace"
)

// Loader reads a saved workspace. Only load stores you created: object values
// are decoded as whatever the store holds.
type Loader struct {
	path           string
	allowCallables bool
	makeStore      workspace.StoreMaker
}

// NewLoader for the store at path
func NewLoader(path string) *Loader {
	return &Loader{path: path, makeStore: store.Maker}
}

// AllowCallables controls whether functions and types are loaded
func (l *Loader) AllowCallables(allow bool) *Loader {
	l.allowCallables = allow
	return l
}

// SetStoreMaker overrides the default badger store
func (l *Loader) SetStoreMaker(maker workspace.StoreMaker) *Loader {
	l.makeStore = maker
	return l
}

// Load the workspace into a new namespace
func (l *Loader) Load() (ns workspace.Namespace, err error) {
	db := l.makeStore(l.path, workspace.AccessRead)
	if err := db.Init(); err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "closing workspace store")
		}
	}()

	ns = make(workspace.Namespace)
	err = db.Each(func(name string, v workspace.Value) error {
		if !l.allowCallables && v.IsCallable() {
			log.Debug().Str("name", name).Msg("skipping callable")
			return nil
		}
		ns[name] = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("path", l.path).Int("loaded", len(ns)).Msg("workspace loaded")
	return ns, nil
}

// LoadInto updates ns in place with the saved workspace, overwriting
// variables of the same name. ns is left untouched if loading fails.
func (l *Loader) LoadInto(ns workspace.Namespace) error {
	loaded, err := l.Load()
	if err != nil {
		return err
	}
	ns.Update(loaded)
	return nil
}

// Load the workspace at path into a new namespace
func Load(path string, allowCallables bool) (workspace.Namespace, error) {
	return NewLoader(path).AllowCallables(allowCallables).Load()
}

// LoadInto updates ns with the workspace at path
func LoadInto(path string, ns workspace.Namespace, allowCallables bool) error {
	return NewLoader(path).AllowCallables(allowCallables).LoadInto(ns)
}
