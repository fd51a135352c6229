package store

import (
	badger "github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"
	"gitlab.com/wsaver/workspace"
)

// VarIterator decodes every var: entry visible to txn and hands it to fn
func VarIterator(txn *badger.Txn, fn func(name string, v workspace.Value) error) error {
	it := txn.NewIterator(badger.IteratorOptions{Prefix: []byte(VarPredicate + ":")})
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}

		name := string(GetID(item.KeyCopy(nil)))
		v, err := DecodeValue(val)
		if err != nil {
			return errors.Wrap(err, name)
		}

		if err := fn(name, v); err != nil {
			return err
		}
	}
	return nil
}
