package workspace

import "sort"

// ReservedName is never captured by a saver. Sessions conventionally bind their
// open store to it.
const ReservedName = "db"

// Namespace maps variable names to values. Callers own it, savers and loaders
// read and write it in place.
type Namespace map[string]Value

// Clone makes a shallow copy
func (ns Namespace) Clone() Namespace {
	c := make(Namespace, len(ns))
	for k, v := range ns {
		c[k] = v
	}
	return c
}

// Set converts v with ValueOf and binds it to name
func (ns Namespace) Set(name string, v interface{}) {
	ns[name] = ValueOf(v)
}

// Update overwrites entries in ns with the entries of other
func (ns Namespace) Update(other Namespace) {
	for k, v := range other {
		ns[k] = v
	}
}

// Names sorted
func (ns Namespace) Names() []string {
	names := make([]string, 0, len(ns))
	for k := range ns {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both namespaces hold the same names with equal values
func (ns Namespace) Equal(other Namespace) bool {
	if len(ns) != len(other) {
		return false
	}
	for k, v := range ns {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Interface returns the plain Go form of every entry
func (ns Namespace) Interface() map[string]interface{} {
	m := make(map[string]interface{}, len(ns))
	for k, v := range ns {
		m[k] = v.Interface()
	}
	return m
}

// NamespaceOf converts a plain Go map
func NamespaceOf(m map[string]interface{}) Namespace {
	ns := make(Namespace, len(m))
	for k, v := range m {
		ns.Set(k, v)
	}
	return ns
}
