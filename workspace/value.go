package workspace

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"runtime"
	"sort"
)

// Kind of a workspace value
type Kind int8

const (
	// KindInvalid is the zero Value
	KindInvalid Kind = iota
	KindNil
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	// KindCallable functions and types, persisted by name only
	KindCallable
	// KindObject any other host value, persisted as a generic msgpack value
	KindObject
)

// KindTypeMap of kinds to their printable names
var KindTypeMap = map[Kind]string{
	KindInvalid:  "invalid",
	KindNil:      "nil",
	KindBool:     "bool",
	KindInt:      "int",
	KindFloat:    "float",
	KindString:   "string",
	KindBytes:    "bytes",
	KindList:     "list",
	KindMap:      "map",
	KindCallable: "callable",
	KindObject:   "object",
}

func (k Kind) String() string {
	if s, ok := KindTypeMap[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int8(k))
}

// Value is a single workspace variable. Only the field matching Kind is set.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	Str    string
	Bytes  []byte
	List   []Value
	Map    map[string]Value
	Name   string      // callable symbol name
	Fn     interface{} // resolved callable, nil if unresolved
	Object interface{}
}

// Nil value
func Nil() Value { return Value{Kind: KindNil} }

// Bool value
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Int value
func Int(i int64) Value { return Value{Kind: KindInt, Int: i} }

// Float value
func Float(f float64) Value { return Value{Kind: KindFloat, Float: f} }

// String value
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bytes value
func Bytes(b []byte) Value { return Value{Kind: KindBytes, Bytes: b} }

// List value
func List(vals ...Value) Value { return Value{Kind: KindList, List: vals} }

// Map value
func Map(m map[string]Value) Value { return Value{Kind: KindMap, Map: m} }

// Object wraps an opaque host value without conversion
func Object(obj interface{}) Value { return Value{Kind: KindObject, Object: obj} }

// Func creates a named callable. fn is usually a func or a reflect.Type.
func Func(name string, fn interface{}) Value {
	return Value{Kind: KindCallable, Name: name, Fn: fn}
}

// ValueOf converts a Go value into a workspace Value
func ValueOf(v interface{}) Value {
	switch t := v.(type) {
	case nil:
		return Nil()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case []byte:
		return Bytes(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case reflect.Type:
		return Func(t.String(), t)
	case []Value:
		return List(t...)
	case map[string]Value:
		return Map(t)
	case Invoker:
		return Object(t)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		// msgpack keeps uint64 as is, int64 would wrap
		if rv.Uint() > math.MaxInt64 {
			return Object(rv.Uint())
		}
		return Int(int64(rv.Uint()))
	case reflect.Float32:
		return Float(rv.Float())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.String:
		return String(rv.String())
	case reflect.Func:
		if rv.IsNil() {
			return Nil()
		}
		return Func(funcName(rv), v)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Nil()
		}
		list := make([]Value, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			list[i] = ValueOf(rv.Index(i).Interface())
		}
		return List(list...)
	case reflect.Map:
		if rv.IsNil() {
			return Nil()
		}
		if rv.Type().Key().Kind() != reflect.String {
			return pairsOf(rv)
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = ValueOf(iter.Value().Interface())
		}
		return Map(m)
	case reflect.Struct:
		if m, ok := fieldsOf(rv); ok {
			return Map(m)
		}
	case reflect.Ptr:
		if rv.IsNil() {
			return Nil()
		}
		if rv.Elem().Kind() == reflect.Struct {
			if m, ok := fieldsOf(rv.Elem()); ok {
				return Map(m)
			}
		}
	}
	return Object(v)
}

// fieldsOf maps the exported fields of a struct by name. Structs without
// exported fields, like time.Time, are not converted.
func fieldsOf(rv reflect.Value) (map[string]Value, bool) {
	rt := rv.Type()
	m := make(map[string]Value, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		m[f.Name] = ValueOf(rv.Field(i).Interface())
	}
	return m, len(m) > 0
}

// pairsOf turns a map without string keys into a list of [key, value] lists
// sorted by the printed key
func pairsOf(rv reflect.Value) Value {
	pairs := make([]Value, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		pairs = append(pairs, List(ValueOf(iter.Key().Interface()), ValueOf(iter.Value().Interface())))
	}
	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].List[0].String() < pairs[j].List[0].String()
	})
	return List(pairs...)
}

func funcName(rv reflect.Value) string {
	if f := runtime.FuncForPC(rv.Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

// IsCallable reports whether the value can be invoked
func (v Value) IsCallable() bool {
	switch v.Kind {
	case KindCallable:
		return true
	case KindObject:
		return isCallableObject(v.Object)
	}
	return false
}

func isCallableObject(obj interface{}) bool {
	if obj == nil {
		return false
	}
	switch obj.(type) {
	case Invoker, reflect.Type:
		return true
	}
	return reflect.TypeOf(obj).Kind() == reflect.Func
}

// Interface returns the plain Go representation of the value. Callables return
// their resolved Fn.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	case KindString:
		return v.Str
	case KindBytes:
		return v.Bytes
	case KindList:
		list := make([]interface{}, len(v.List))
		for i, e := range v.List {
			list[i] = e.Interface()
		}
		return list
	case KindMap:
		m := make(map[string]interface{}, len(v.Map))
		for k, e := range v.Map {
			m[k] = e.Interface()
		}
		return m
	case KindCallable:
		return v.Fn
	case KindObject:
		return v.Object
	}
	return nil
}

// Equal compares two values. Callables compare by name.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindInvalid, KindNil:
		return true
	case KindBool:
		return v.Bool == o.Bool
	case KindInt:
		return v.Int == o.Int
	case KindFloat:
		return v.Float == o.Float
	case KindString:
		return v.Str == o.Str
	case KindBytes:
		return bytes.Equal(v.Bytes, o.Bytes)
	case KindList:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(o.List[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.Map) != len(o.Map) {
			return false
		}
		for k, e := range v.Map {
			oe, ok := o.Map[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	case KindCallable:
		return v.Name == o.Name
	case KindObject:
		return reflect.DeepEqual(v.Object, o.Object)
	}
	return false
}

func (v Value) String() string {
	switch v.Kind {
	case KindInvalid, KindNil:
		return v.Kind.String()
	case KindString:
		return fmt.Sprintf("%q", v.Str)
	case KindCallable:
		return "<callable " + v.Name + ">"
	case KindMap:
		keys := make([]string, 0, len(v.Map))
		for k := range v.Map {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf := &bytes.Buffer{}
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(buf, "%s: %s", k, v.Map[k])
		}
		buf.WriteByte('}')
		return buf.String()
	case KindList:
		buf := &bytes.Buffer{}
		buf.WriteByte('[')
		for i, e := range v.List {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(e.String())
		}
		buf.WriteByte(']')
		return buf.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}
