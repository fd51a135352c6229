package workspace_test

import (
	"testing"

	"gitlab.com/wsaver/workspace"
)

func TestNamespaceClone(t *testing.T) {
	ns := workspace.NamespaceOf(map[string]interface{}{"x": 1, "y": "a"})
	c := ns.Clone()
	c.Set("z", true)

	if _, ok := ns["z"]; ok {
		t.Fatalf("clone should not share entries with the original")
	}
	if !ns.Equal(workspace.NamespaceOf(map[string]interface{}{"x": 1, "y": "a"})) {
		t.Fatalf("original changed: %v\n", ns)
	}
}

func TestNamespaceUpdate(t *testing.T) {
	ns := workspace.NamespaceOf(map[string]interface{}{"x": 1, "keep": 2})
	ns.Update(workspace.NamespaceOf(map[string]interface{}{"x": "new"}))

	if ns["x"].Str != "new" {
		t.Fatalf("expected x to be overwritten got %v\n", ns["x"])
	}
	if ns["keep"].Int != 2 {
		t.Fatalf("expected keep to survive got %v\n", ns["keep"])
	}

	names := ns.Names()
	if len(names) != 2 || names[0] != "keep" || names[1] != "x" {
		t.Fatalf("unexpected names %v\n", names)
	}
}
