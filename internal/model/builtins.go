package model

import (
	"maps"
	"slices"
)

// Builtins is an immutable snapshot of a builtin namespace.
type Builtins struct {
	values map[string]any
}

// SnapshotBuiltins copies the namespace. Later changes to ns are not seen by
// the snapshot.
func SnapshotBuiltins(ns map[string]any) Builtins {
	return Builtins{values: maps.Clone(ns)}
}

// Lookup returns the value bound to name.
func (b Builtins) Lookup(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Has reports whether name is a builtin.
func (b Builtins) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Names returns the builtin names in sorted order.
func (b Builtins) Names() []string {
	return slices.Sorted(maps.Keys(b.values))
}

// Len returns the number of builtins.
func (b Builtins) Len() int {
	return len(b.values)
}
