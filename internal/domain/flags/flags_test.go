package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want m.ModuleFlags
	}{
		{"plain", "import os\n", m.ModuleFlags{}},
		{"strict", "import __strict__\n", m.ModuleFlags{IsStrict: true}},
		{"static", "import __static__\n", m.ModuleFlags{IsStatic: true}},
		{"both in one statement", "import __strict__, __static__\n", m.ModuleFlags{IsStrict: true, IsStatic: true}},
		{"aliased marker", "import __static__ as s\n", m.ModuleFlags{IsStatic: true}},
		{"helper import only", "from __static__ import cast\n", m.ModuleFlags{}},
		{"nested import ignored", "if x:\n    import __strict__\n", m.ModuleFlags{}},
		{"function import ignored", "def f():\n    import __static__\n", m.ModuleFlags{}},
		{"marker after code", "x = 1\nimport __strict__\n", m.ModuleFlags{IsStrict: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := syntax.Parse("mod.py", []byte(tt.src))
			require.NoError(t, err)

			assert.Equal(t, tt.want, Extract(tree))
		})
	}
}

func TestExtract_NilTree(t *testing.T) {
	assert.Equal(t, m.ModuleFlags{}, Extract(nil))
}

func TestIsMarker(t *testing.T) {
	assert.True(t, IsMarker(StrictMarker))
	assert.True(t, IsMarker(StaticMarker))
	assert.False(t, IsMarker("__future__"))
}

func TestModuleFlags_MergeIsMonotonic(t *testing.T) {
	all := []m.ModuleFlags{{}, {IsStrict: true}, {IsStatic: true}, {IsStrict: true, IsStatic: true}}

	for _, scanned := range all {
		assert.Equal(t, scanned, scanned.Merge(nil))

		for _, override := range all {
			merged := scanned.Merge(&override)

			assert.Equal(t, scanned.IsStrict || override.IsStrict, merged.IsStrict)
			assert.Equal(t, scanned.IsStatic || override.IsStatic, merged.IsStatic)
		}
	}
}
