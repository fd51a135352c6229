package store_test

import (
	"math"
	"testing"

	"gitlab.com/wsaver/store"
	"gitlab.com/wsaver/workspace"
)

func triple(x int64) int64 {
	return x * 3
}

func TestKeys(t *testing.T) {
	key := store.MakeKey("my:var", store.VarPredicate)
	if string(key) != "var:my:var" {
		t.Fatalf("unexpected key %s\n", key)
	}
	if string(store.GetID(key)) != "my:var" {
		t.Fatalf("expected name my:var got %s\n", store.GetID(key))
	}
}

func TestEncodeNested(t *testing.T) {
	v := workspace.Map(map[string]workspace.Value{
		"nums":  workspace.List(workspace.Int(-1), workspace.Int(1<<40), workspace.Float(0.25)),
		"raw":   workspace.Bytes([]byte{0, 1, 2}),
		"empty": workspace.Nil(),
		"inner": workspace.Map(map[string]workspace.Value{"ok": workspace.Bool(true)}),
	})

	bytez, err := store.EncodeValue(v)
	if err != nil {
		t.Fatalf("error encoding: %s\n", err)
	}
	out, err := store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	if !out.Equal(v) {
		t.Fatalf("expected %v got %v\n", v, out)
	}
}

func TestEncodeCallable(t *testing.T) {
	fn := workspace.ValueOf(triple)
	bytez, err := store.EncodeValue(fn)
	if err != nil {
		t.Fatalf("error encoding: %s\n", err)
	}

	out, err := store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	if out.Kind != workspace.KindCallable || out.Name != fn.Name {
		t.Fatalf("expected callable %s got %v\n", fn.Name, out)
	}
	if out.Fn != nil {
		t.Fatalf("unregistered callable should not resolve")
	}

	workspace.RegisterCallable(fn.Name, triple)
	defer workspace.UnregisterCallable(fn.Name)

	out, err = store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	res, err := out.Call(workspace.Int(2))
	if err != nil || res.Int != 6 {
		t.Fatalf("expected 6 got %v %v\n", res, err)
	}
}

func TestEncodeObject(t *testing.T) {
	bytez, err := store.EncodeValue(workspace.Object(map[string]interface{}{"name": "x"}))
	if err != nil {
		t.Fatalf("error encoding: %s\n", err)
	}
	out, err := store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	m, ok := out.Object.(map[string]interface{})
	if !ok || m["name"] != "x" {
		t.Fatalf("unexpected object %#v\n", out.Object)
	}
}

type location struct {
	Lat, Lon float64
	Label    string
}

func TestEncodeRegisteredObject(t *testing.T) {
	workspace.RegisterType("store_test.location", location{})
	defer workspace.UnregisterType("store_test.location")

	v := workspace.Object(location{Lat: 1.5, Lon: -2, Label: "home"})
	bytez, err := store.EncodeValue(v)
	if err != nil {
		t.Fatalf("error encoding: %s\n", err)
	}
	out, err := store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	if loc, ok := out.Object.(location); !ok || loc.Label != "home" || loc.Lat != 1.5 {
		t.Fatalf("expected location got %#v\n", out.Object)
	}
	if !out.Equal(v) {
		t.Fatalf("expected %v got %v\n", v, out)
	}
}

func TestEncodeBigUint(t *testing.T) {
	v := workspace.ValueOf(uint64(math.MaxUint64))
	bytez, err := store.EncodeValue(v)
	if err != nil {
		t.Fatalf("error encoding: %s\n", err)
	}
	out, err := store.DecodeValue(bytez)
	if err != nil {
		t.Fatalf("error decoding: %s\n", err)
	}
	if u, ok := out.Object.(uint64); !ok || u != math.MaxUint64 {
		t.Fatalf("expected max uint64 got %#v\n", out.Object)
	}
}

func TestEncodeUnsupportedObject(t *testing.T) {
	if _, err := store.EncodeValue(workspace.Object(make(chan int))); err == nil {
		t.Fatalf("expected error encoding a chan")
	}
}

func TestEncodeInvalid(t *testing.T) {
	if _, err := store.EncodeValue(workspace.Value{}); err == nil {
		t.Fatalf("expected error encoding the zero value")
	}
	if _, err := store.EncodeValue(workspace.Func("", nil)); err == nil {
		t.Fatalf("expected error encoding an anonymous callable")
	}
}
