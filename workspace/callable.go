package workspace

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrUnresolvedCallable is returned when calling a callable that was loaded
	// under a name nothing registered
	ErrUnresolvedCallable = errors.New("callable is not registered")
	// ErrNotCallable is returned when calling a data value
	ErrNotCallable = errors.New("value is not callable")
)

// Invoker values are callable host objects
type Invoker interface {
	Invoke(args ...Value) (Value, error)
}

var registry = struct {
	sync.RWMutex
	fns map[string]interface{}
}{fns: make(map[string]interface{})}

// RegisterCallable makes fn resolvable by name when a workspace is loaded.
// Registering a Func value's Name and Fn lets it survive a save/load cycle.
func RegisterCallable(name string, fn interface{}) {
	registry.Lock()
	defer registry.Unlock()
	registry.fns[name] = fn
}

// UnregisterCallable removes name from the registry
func UnregisterCallable(name string) {
	registry.Lock()
	defer registry.Unlock()
	delete(registry.fns, name)
}

// LookupCallable by name
func LookupCallable(name string) (interface{}, bool) {
	registry.RLock()
	defer registry.RUnlock()
	fn, ok := registry.fns[name]
	return fn, ok
}

// Resolve returns a copy of a callable value with Fn set from the registry,
// other values are returned as is.
func (v Value) Resolve() Value {
	if v.Kind != KindCallable || v.Fn != nil {
		return v
	}
	if fn, ok := LookupCallable(v.Name); ok {
		v.Fn = fn
	}
	return v
}

// Call invokes a callable value. Funcs are called through reflection with the
// plain Go form of args, types construct a new zero value.
func (v Value) Call(args ...Value) (Value, error) {
	var target interface{}
	switch {
	case v.Kind == KindCallable:
		if v.Fn == nil {
			return Value{}, errors.Wrap(ErrUnresolvedCallable, v.Name)
		}
		target = v.Fn
	case v.IsCallable():
		target = v.Object
	default:
		return Value{}, errors.Wrap(ErrNotCallable, v.Kind.String())
	}

	switch t := target.(type) {
	case Invoker:
		return t.Invoke(args...)
	case reflect.Type:
		return ValueOf(reflect.New(t).Elem().Interface()), nil
	}
	return callFunc(reflect.ValueOf(target), args)
}

func callFunc(fn reflect.Value, args []Value) (out Value, err error) {
	ft := fn.Type()
	if !ft.IsVariadic() && ft.NumIn() != len(args) {
		return Value{}, errors.Errorf("callable takes %d arguments, got %d", ft.NumIn(), len(args))
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("call panicked: %v", r)
		}
	}()

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var argType reflect.Type
		if ft.IsVariadic() && i >= ft.NumIn()-1 {
			argType = ft.In(ft.NumIn() - 1).Elem()
		} else {
			argType = ft.In(i)
		}
		in[i] = convertArg(arg, argType)
	}

	results := fn.Call(in)
	if len(results) == 0 {
		return Nil(), nil
	}

	last := results[len(results)-1]
	if last.Type() == reflect.TypeOf((*error)(nil)).Elem() {
		if !last.IsNil() {
			return Value{}, last.Interface().(error)
		}
		results = results[:len(results)-1]
	}

	switch len(results) {
	case 0:
		return Nil(), nil
	case 1:
		return ValueOf(results[0].Interface()), nil
	}
	list := make([]Value, len(results))
	for i, r := range results {
		list[i] = ValueOf(r.Interface())
	}
	return List(list...), nil
}

func convertArg(arg Value, to reflect.Type) reflect.Value {
	if to == reflect.TypeOf(Value{}) {
		return reflect.ValueOf(arg)
	}
	plain := arg.Interface()
	if plain == nil {
		return reflect.Zero(to)
	}
	rv := reflect.ValueOf(plain)
	if rv.Type().ConvertibleTo(to) {
		return rv.Convert(to)
	}
	return rv
}
