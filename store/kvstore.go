package store

import (
	"os"

	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gitlab.com/wsaver/workspace"
)

// ErrNotFound is returned by Get for names the store does not hold
var ErrNotFound = errors.New("variable not found")

// KVStore persists workspace variables in a badger database directory
type KVStore struct {
	Store    *badger.DB
	filepath string
	access   workspace.Access
}

// New workspace store at filepath
func New(filepath string, access workspace.Access) *KVStore {
	return &KVStore{filepath: filepath, access: access}
}

// Maker is the default workspace.StoreMaker
func Maker(filepath string, access workspace.Access) workspace.Storer {
	return New(filepath, access)
}

// Init opens the database. Read access fails if filepath does not exist.
func (s *KVStore) Init() error {
	var err error

	if s.access == workspace.AccessRead {
		if _, err = os.Stat(s.filepath); err != nil {
			return errors.Wrap(err, "workspace store")
		}
	} else if err = os.MkdirAll(s.filepath, 0700); err != nil {
		return errors.Wrap(err, "creating workspace store")
	}

	opts := badger.DefaultOptions(s.filepath).WithLogger(newBadgerLogger(s.filepath))
	s.Store, err = badger.Open(opts)

	if errors.Is(err, badger.ErrTruncateNeeded) {
		log.Warn().Str("path", s.filepath).Msg("there was a failure re-opening database, trying to recover")
		opts.Truncate = true
		s.Store, err = badger.Open(opts)
	}

	if err != nil {
		return errors.Wrapf(err, "opening workspace store %s", s.filepath)
	}
	return nil
}

// Clear every variable from the store
func (s *KVStore) Clear() error {
	return errors.Wrap(s.Store.DropPrefix([]byte(VarPredicate+":")), "clearing workspace store")
}

// Set a variable, replacing any previous value
func (s *KVStore) Set(name string, v workspace.Value) error {
	bytez, err := EncodeValue(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", name)
	}

	return s.Store.Update(func(txn *badger.Txn) error {
		// key = var:<name>, value = msgpack'd record
		return txn.Set(MakeKey(name, VarPredicate), bytez)
	})
}

// Get a variable by name
func (s *KVStore) Get(name string) (workspace.Value, error) {
	var v workspace.Value
	err := s.Store.View(func(txn *badger.Txn) error {
		item, err := txn.Get(MakeKey(name, VarPredicate))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errors.Wrap(ErrNotFound, name)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			v, err = DecodeValue(val)
			return err
		})
	})
	return v, err
}

// Each calls fn for every stored variable in key order, stopping at the first error
func (s *KVStore) Each(fn func(name string, v workspace.Value) error) error {
	return s.Store.View(func(txn *badger.Txn) error {
		return VarIterator(txn, fn)
	})
}

// Close the workspace store
func (s *KVStore) Close() error {
	if s.Store == nil {
		return nil
	}
	err := s.Store.Close()
	s.Store = nil
	return err
}
