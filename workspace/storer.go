package workspace

// Access mode a store is opened with
type Access int8

const (
	// AccessRead requires the store to already exist
	AccessRead Access = iota
	// AccessWrite creates the store if it is missing
	AccessWrite
)

func (a Access) String() string {
	if a == AccessWrite {
		return "write"
	}
	return "read"
}

// Storer is the persistent key-value store a workspace is saved to
type Storer interface {
	Init() error
	Clear() error
	Set(name string, v Value) error
	Get(name string) (Value, error)
	Each(fn func(name string, v Value) error) error
	Close() error
}

// StoreMaker returns an uninitialized store for path
type StoreMaker func(path string, access Access) Storer
