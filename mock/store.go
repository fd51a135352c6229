package mock

import (
	"sort"

	"github.com/pkg/errors"
	"gitlab.com/wsaver/workspace"
)

// Store mocks a workspace store
type Store struct {
	InitFn     func() error
	InitCalled int

	ClearFn     func() error
	ClearCalled int

	SetFn     func(name string, v workspace.Value) error
	SetCalled int

	GetFn     func(name string) (workspace.Value, error)
	GetCalled int

	EachFn     func(fn func(name string, v workspace.Value) error) error
	EachCalled int

	CloseFn     func() error
	CloseCalled int

	// Access the store was last made with
	Access workspace.Access
	// Data backs the default Fns
	Data workspace.Namespace
}

// Init the store
func (s *Store) Init() error {
	s.InitCalled++
	return s.InitFn()
}

// Clear the store
func (s *Store) Clear() error {
	s.ClearCalled++
	return s.ClearFn()
}

// Set a variable
func (s *Store) Set(name string, v workspace.Value) error {
	s.SetCalled++
	return s.SetFn(name, v)
}

// Get a variable
func (s *Store) Get(name string) (workspace.Value, error) {
	s.GetCalled++
	return s.GetFn(name)
}

// Each variable
func (s *Store) Each(fn func(name string, v workspace.Value) error) error {
	s.EachCalled++
	return s.EachFn(fn)
}

// Close the store
func (s *Store) Close() error {
	s.CloseCalled++
	return s.CloseFn()
}

// Maker hands out s for every path
func (s *Store) Maker() workspace.StoreMaker {
	return func(path string, access workspace.Access) workspace.Storer {
		s.Access = access
		return s
	}
}

// MakeMockStore returns a store backed by an in memory namespace that survives
// Close, so it can be saved to and loaded from repeatedly.
func MakeMockStore() *Store {
	s := &Store{Data: make(workspace.Namespace)}
	s.InitFn = func() error {
		return nil
	}
	s.ClearFn = func() error {
		s.Data = make(workspace.Namespace)
		return nil
	}
	s.SetFn = func(name string, v workspace.Value) error {
		s.Data[name] = v
		return nil
	}
	s.GetFn = func(name string) (workspace.Value, error) {
		v, ok := s.Data[name]
		if !ok {
			return workspace.Value{}, errors.Errorf("%s not found", name)
		}
		return v, nil
	}
	s.EachFn = func(fn func(name string, v workspace.Value) error) error {
		names := make([]string, 0, len(s.Data))
		for name := range s.Data {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := fn(name, s.Data[name]); err != nil {
				return err
			}
		}
		return nil
	}
	s.CloseFn = func() error {
		return nil
	}
	return s
}
