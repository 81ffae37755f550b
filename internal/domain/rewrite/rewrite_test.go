package rewrite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

const classes = `class A:
    class Inner:
        pass
def f():
    class Local:
        pass
if x:
    class Guarded:
        pass
`

func builders(tree *syntax.Module) map[string]string {
	out := make(map[string]string)

	syntax.Inspect(tree.Body, func(stmt syntax.Stmt) bool {
		if class, ok := stmt.(*syntax.ClassDef); ok {
			out[class.Name] = class.Builder
		}

		return true
	})

	return out
}

func TestRewriter_Rewrite(t *testing.T) {
	tests := []struct {
		name     string
		isStatic bool
		want     string
	}{
		{"strict", false, ClassBuilder},
		{"static", true, StaticClassBuilder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := syntax.Parse("mod.py", []byte(classes))
			require.NoError(t, err)

			out, err := New().Rewrite(context.Background(), tree, nil, "mod.py", "mod", 0, tt.isStatic, m.Builtins{})
			require.NoError(t, err)

			assert.Equal(t, map[string]string{
				"A":       tt.want,
				"Inner":   tt.want,
				"Local":   tt.want,
				"Guarded": tt.want,
			}, builders(out))

			for name, builder := range builders(tree) {
				assert.Empty(t, builder, "input class %s was modified", name)
			}
		})
	}
}

func TestRewriter_Errors(t *testing.T) {
	_, err := New().Rewrite(context.Background(), nil, nil, "mod.py", "mod", 0, false, m.Builtins{})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New().Rewrite(ctx, &syntax.Module{}, nil, "mod.py", "mod", 0, false, m.Builtins{})
	require.ErrorIs(t, err, context.Canceled)
}
