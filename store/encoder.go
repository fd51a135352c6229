package store

import (
	"bytes"
	"reflect"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v4"
	"gitlab.com/wsaver/workspace"
)

// VarPredicate prefixes every workspace variable key
const VarPredicate = "var"

// record is the on-disk form of a workspace.Value
type record struct {
	Kind   workspace.Kind     `msgpack:"k"`
	Bool   bool               `msgpack:"b,omitempty"`
	Int    int64              `msgpack:"i,omitempty"`
	Float  float64            `msgpack:"f,omitempty"`
	Str    string             `msgpack:"s,omitempty"`
	Bytes  []byte             `msgpack:"y,omitempty"`
	List   []*record          `msgpack:"l,omitempty"`
	Map    map[string]*record `msgpack:"m,omitempty"`
	Name   string             `msgpack:"n,omitempty"`
	Type   string             `msgpack:"t,omitempty"`
	Object []byte             `msgpack:"o,omitempty"`
}

// MakeKey of a predicate and variable name
func MakeKey(name string, predicate string) []byte {
	key := []byte(predicate)
	key = append(key, byte(':'))
	key = append(key, name...)
	return key
}

// GetID of key from a pred:name
func GetID(key []byte) []byte {
	split := bytes.SplitN(key, []byte(":"), 2)
	if len(split) == 1 {
		return []byte{}
	}
	return split[1]
}

// EncodeValue into msgpack bytes. Callables only keep their name.
func EncodeValue(v workspace.Value) ([]byte, error) {
	rec, err := toRecord(v)
	if err != nil {
		return nil, err
	}
	return msgpack.Marshal(rec)
}

// DecodeValue from msgpack bytes, resolving callables through the registry
func DecodeValue(val []byte) (workspace.Value, error) {
	rec := &record{}
	dec := msgpack.NewDecoder(bytes.NewReader(val))
	dec.UseDecodeInterfaceLoose(true)
	if err := dec.Decode(rec); err != nil {
		return workspace.Value{}, errors.Wrap(err, "decoding value")
	}
	return fromRecord(rec)
}

func toRecord(v workspace.Value) (*record, error) {
	rec := &record{Kind: v.Kind}
	switch v.Kind {
	case workspace.KindInvalid:
		return nil, errors.New("cannot encode invalid value")
	case workspace.KindBool:
		rec.Bool = v.Bool
	case workspace.KindInt:
		rec.Int = v.Int
	case workspace.KindFloat:
		rec.Float = v.Float
	case workspace.KindString:
		rec.Str = v.Str
	case workspace.KindBytes:
		rec.Bytes = v.Bytes
	case workspace.KindList:
		rec.List = make([]*record, len(v.List))
		for i, e := range v.List {
			r, err := toRecord(e)
			if err != nil {
				return nil, err
			}
			rec.List[i] = r
		}
	case workspace.KindMap:
		rec.Map = make(map[string]*record, len(v.Map))
		for k, e := range v.Map {
			r, err := toRecord(e)
			if err != nil {
				return nil, errors.Wrap(err, k)
			}
			rec.Map[k] = r
		}
	case workspace.KindCallable:
		if v.Name == "" {
			return nil, errors.New("cannot encode anonymous callable")
		}
		rec.Name = v.Name
	case workspace.KindObject:
		raw, err := msgpack.Marshal(v.Object)
		if err != nil {
			return nil, err
		}
		rec.Object = raw
		rec.Type, _ = workspace.TypeName(v.Object)
	}
	return rec, nil
}

func fromRecord(rec *record) (workspace.Value, error) {
	if rec == nil {
		return workspace.Nil(), nil
	}
	switch rec.Kind {
	case workspace.KindNil:
		return workspace.Nil(), nil
	case workspace.KindBool:
		return workspace.Bool(rec.Bool), nil
	case workspace.KindInt:
		return workspace.Int(rec.Int), nil
	case workspace.KindFloat:
		return workspace.Float(rec.Float), nil
	case workspace.KindString:
		return workspace.String(rec.Str), nil
	case workspace.KindBytes:
		return workspace.Bytes(rec.Bytes), nil
	case workspace.KindList:
		list := make([]workspace.Value, len(rec.List))
		for i, r := range rec.List {
			v, err := fromRecord(r)
			if err != nil {
				return workspace.Value{}, err
			}
			list[i] = v
		}
		return workspace.List(list...), nil
	case workspace.KindMap:
		m := make(map[string]workspace.Value, len(rec.Map))
		for k, r := range rec.Map {
			v, err := fromRecord(r)
			if err != nil {
				return workspace.Value{}, err
			}
			m[k] = v
		}
		return workspace.Map(m), nil
	case workspace.KindCallable:
		return workspace.Func(rec.Name, nil).Resolve(), nil
	case workspace.KindObject:
		obj, err := decodeObject(rec.Object, rec.Type)
		if err != nil {
			return workspace.Value{}, err
		}
		return workspace.Object(obj), nil
	}
	return workspace.Value{}, errors.Errorf("unknown value kind %d", rec.Kind)
}

// decodeObject into its registered type, or into generic msgpack values when
// typeName is empty or no longer registered
func decodeObject(raw []byte, typeName string) (interface{}, error) {
	if typeName != "" {
		if t, ok := workspace.LookupType(typeName); ok {
			ptr := reflect.New(t)
			if err := msgpack.Unmarshal(raw, ptr.Interface()); err != nil {
				return nil, errors.Wrapf(err, "decoding %s", typeName)
			}
			return ptr.Elem().Interface(), nil
		}
	}

	var obj interface{}
	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.UseDecodeInterfaceLoose(true)
	if err := dec.Decode(&obj); err != nil {
		return nil, errors.Wrap(err, "decoding object")
	}
	return obj, nil
}
