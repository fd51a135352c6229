package saver

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/wsaver/store"
	"gitlab.com/wsaver/workspace"
)

// Saver saves every variable defined in a namespace after the Saver was
// created, so whatever the session set up beforehand is left out.
type Saver struct {
	path           string
	ns             workspace.Namespace
	ignore         map[string]struct{}
	allowCallables bool
	makeStore      workspace.StoreMaker
}

// New saver bound to the live namespace ns. path does not need to exist yet.
func New(path string, ns workspace.Namespace) *Saver {
	ignore := make(map[string]struct{}, len(ns)+1)
	for name := range ns {
		ignore[name] = struct{}{}
	}
	ignore[workspace.ReservedName] = struct{}{}

	return &Saver{
		path:      path,
		ns:        ns,
		ignore:    ignore,
		makeStore: store.Maker,
	}
}

// AllowCallables controls whether functions and types are saved
func (s *Saver) AllowCallables(allow bool) *Saver {
	s.allowCallables = allow
	return s
}

// SetStoreMaker overrides the default badger store
func (s *Saver) SetStoreMaker(maker workspace.StoreMaker) *Saver {
	s.makeStore = maker
	return s
}

// Ignored names, sorted
func (s *Saver) Ignored() []string {
	names := make([]string, 0, len(s.ignore))
	for name := range s.ignore {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Path of the store
func (s *Saver) Path() string {
	return s.path
}

// Save replaces the store contents with the namespace variables defined since
// the saver was created. Every variable is encoded before the store is
// touched, so a value that cannot be saved leaves the previous snapshot intact.
func (s *Saver) Save() (err error) {
	snapshot := s.ns.Clone()

	names := make([]string, 0, len(snapshot))
	for _, name := range snapshot.Names() {
		value := snapshot[name]
		if !s.eligible(name, value) {
			log.Debug().Str("name", name).Str("kind", value.Kind.String()).Msg("skipping variable")
			continue
		}
		if _, err := store.EncodeValue(value); err != nil {
			return errors.Wrapf(err, "encoding %s", name)
		}
		names = append(names, name)
	}

	db := s.makeStore(s.path, workspace.AccessWrite)
	if err := db.Init(); err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil && err == nil {
			err = errors.Wrap(closeErr, "closing workspace store")
		}
	}()

	if err := db.Clear(); err != nil {
		return err
	}

	for _, name := range names {
		if err := db.Set(name, snapshot[name]); err != nil {
			return err
		}
	}
	log.Debug().Str("path", s.path).Int("saved", len(names)).Msg("workspace saved")
	return nil
}

func (s *Saver) eligible(name string, value workspace.Value) bool {
	if _, ok := s.ignore[name]; ok {
		return false
	}
	if s.isSelf(value) {
		return false
	}
	if !s.allowCallables && value.IsCallable() {
		return false
	}
	return true
}

func (s *Saver) isSelf(value workspace.Value) bool {
	if value.Kind != workspace.KindObject {
		return false
	}
	self, ok := value.Object.(*Saver)
	return ok && self == s
}

// Close saves the workspace, for use with defer
func (s *Saver) Close() error {
	return s.Save()
}

// Scope runs fn and then saves exactly once, whether fn returned normally,
// returned an error or panicked. A panic is re-raised after the save. When fn
// fails its error is returned and a failed save is only logged.
func (s *Saver) Scope(fn func() error) (err error) {
	defer func() {
		r := recover()
		saveErr := s.Save()

		switch {
		case r != nil:
			if saveErr != nil {
				log.Error().Err(saveErr).Str("path", s.path).Msg("failed to save workspace after panic")
			}
			panic(r)
		case err != nil:
			if saveErr != nil {
				log.Error().Err(saveErr).Str("path", s.path).Msg("failed to save workspace after error")
			}
		default:
			err = saveErr
		}
	}()

	return fn()
}
