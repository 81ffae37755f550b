// Package flags extracts tier markers from a parsed module.
package flags

import (
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// Marker module names. Importing one at module level opts the module into
// the corresponding tier.
const (
	StrictMarker = "__strict__"
	StaticMarker = "__static__"
)

// Extract scans the module's top-level import statements for tier markers.
// `from __static__ import ...` imports helpers and does not set a flag.
func Extract(tree *syntax.Module) m.ModuleFlags {
	var flags m.ModuleFlags
	if tree == nil {
		return flags
	}

	for _, stmt := range tree.Body {
		imp, ok := stmt.(*syntax.Import)
		if !ok {
			continue
		}

		for _, alias := range imp.Names {
			switch alias.Name {
			case StrictMarker:
				flags.IsStrict = true
			case StaticMarker:
				flags.IsStatic = true
			}
		}
	}

	return flags
}

// IsMarker reports whether name is one of the tier marker modules.
func IsMarker(name string) bool {
	return name == StrictMarker || name == StaticMarker
}
