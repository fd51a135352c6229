package workspace

import (
	"reflect"
	"sync"
)

var types = struct {
	sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}{byName: make(map[string]reflect.Type), byType: make(map[reflect.Type]string)}

// RegisterType lets Object values of sample's concrete type load back as that
// type instead of generic maps and slices.
func RegisterType(name string, sample interface{}) {
	t := reflect.TypeOf(sample)
	types.Lock()
	defer types.Unlock()
	if old, ok := types.byName[name]; ok {
		delete(types.byType, old)
	}
	types.byName[name] = t
	types.byType[t] = name
}

// UnregisterType removes name from the type registry
func UnregisterType(name string) {
	types.Lock()
	defer types.Unlock()
	if t, ok := types.byName[name]; ok {
		delete(types.byType, t)
		delete(types.byName, name)
	}
}

// LookupType by registered name
func LookupType(name string) (reflect.Type, bool) {
	types.RLock()
	defer types.RUnlock()
	t, ok := types.byName[name]
	return t, ok
}

// TypeName returns the name obj's type was registered under
func TypeName(obj interface{}) (string, bool) {
	if obj == nil {
		return "", false
	}
	types.RLock()
	defer types.RUnlock()
	name, ok := types.byType[reflect.TypeOf(obj)]
	return name, ok
}
