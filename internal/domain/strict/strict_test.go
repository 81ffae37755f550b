package strict

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strata.dev/pkg/strata/internal/adapter"
	m "strata.dev/pkg/strata/internal/model"
)

func newTestAnalyzer(t *testing.T, files map[string]string, mutate func(*m.AnalyzerConfig)) (*Analyzer, string) {
	t.Helper()

	root := t.TempDir()
	for rel, contents := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	}

	cfg := m.AnalyzerConfig{SearchRoots: []string{root}}
	if mutate != nil {
		mutate(&cfg)
	}

	a, err := New(cfg, adapter.NewLocalSourceFSAdapter(), adapter.NewLocalModuleParser())
	require.NoError(t, err)

	return a, root
}

func messages(v m.AnalysisVerdict) []string {
	out := make([]string, 0, len(v.Errors))
	for _, e := range v.Errors {
		out = append(out, e.Message)
	}

	return out
}

func TestCheckSource_ValidModule(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{
		"strict_dep.py": "import __strict__\n",
		"static_dep.py": "import __static__\n",
	}, nil)

	src := `"""Docstring."""
import __strict__
from __static__ import cast
import strict_dep
from static_dep import thing

X = 1

def f():
    print("runs later")

class C:
    y: int = 2

if __name__ == "__main__":
    f()
`

	verdict, err := a.CheckSource(context.Background(), []byte(src), "mod.py", "mod", nil)
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid(), "errors: %v", messages(verdict))
	assert.NotNil(t, verdict.Tree)
	assert.NotNil(t, verdict.Symbols)
}

func TestCheckSource_Violations(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{
		"plain.py": "x = 1\n",
	}, nil)

	src := `import __strict__
import plain
import missing
print("hello")
class C:
    register(C)
if DEBUG:
    log()
`

	verdict, err := a.CheckSource(context.Background(), []byte(src), "mod.py", "mod", nil)
	require.NoError(t, err)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, []string{
		"import of non-strict module plain",
		"import of non-strict module missing",
		`module-level side effect: print("hello")`,
		"module-level side effect: register(C)",
		"module-level side effect: log()",
	}, messages(verdict))

	first := verdict.Errors[0]
	assert.Equal(t, "mod.py", first.Filename)
	assert.Equal(t, 2, first.Line)

	nested := verdict.Errors[3]
	assert.Equal(t, 6, nested.Line)
	assert.Equal(t, 4, nested.Column)
}

func TestCheckSource_RelativeImports(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{
		filepath.Join("pkg", "__init__.py"): "import __strict__\n",
		filepath.Join("pkg", "sib.py"):      "import __static__\n",
		filepath.Join("pkg", "loose.py"):    "x = 1\n",
	}, nil)

	src := "import __strict__\nfrom . import sib\nfrom .sib import thing\nfrom .loose import y\n"

	verdict, err := a.CheckSource(context.Background(), []byte(src), filepath.Join("pkg", "mod.py"), "pkg.mod", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"import of non-strict module pkg.loose"}, messages(verdict))

	verdict, err = a.CheckSource(context.Background(), []byte("from .. import x\n"), "top.py", "top", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"relative import beyond top-level package"}, messages(verdict))
}

func TestCheckSource_PackageInitResolvesRelativeToItself(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{
		filepath.Join("pkg", "sib.py"): "import __strict__\n",
	}, nil)

	verdict, err := a.CheckSource(context.Background(), []byte("from .sib import x\n"), filepath.Join("pkg", "__init__.py"), "pkg", nil)
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid(), "errors: %v", messages(verdict))

	verdict, err = a.CheckSource(context.Background(), []byte("from .sib import x\n"), "pkg.py", "pkg", []string{"pkg"})
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid(), "errors: %v", messages(verdict))
}

func TestCheckSource_SyntaxError(t *testing.T) {
	a, _ := newTestAnalyzer(t, nil, nil)

	verdict, err := a.CheckSource(context.Background(), []byte("x = 1\ny =\n"), "bad.py", "bad", nil)
	require.NoError(t, err)
	assert.False(t, verdict.IsValid)
	require.Len(t, verdict.Errors, 1)
	assert.Equal(t, 2, verdict.Errors[0].Line)
	assert.Equal(t, "bad.py", verdict.Errors[0].Filename)
	assert.Nil(t, verdict.Tree)
}

func TestCheckSource_DisableAnalysis(t *testing.T) {
	a, _ := newTestAnalyzer(t, nil, func(cfg *m.AnalyzerConfig) {
		cfg.DisableAnalysis = true
	})

	verdict, err := a.CheckSource(context.Background(), []byte("import missing\nprint(1)\n"), "mod.py", "mod", nil)
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid())
}

func TestCheck_ResolvesOnSearchPath(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{
		"good.py": "import __strict__\nX = 1\n",
		"bad.py":  "import __strict__\nprint(1)\n",
	}, nil)

	verdict, err := a.Check(context.Background(), "good")
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid())

	verdict, err = a.Check(context.Background(), "bad")
	require.NoError(t, err)
	assert.Equal(t, []string{"module-level side effect: print(1)"}, messages(verdict))

	verdict, err = a.Check(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, verdict.IsValid)
	assert.Equal(t, []string{"could not find module absent"}, messages(verdict))
	assert.Equal(t, 1, verdict.Errors[0].Line)
}

func TestCheck_ContextCancelled(t *testing.T) {
	a, _ := newTestAnalyzer(t, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Check(ctx, "mod")
	require.ErrorIs(t, err, context.Canceled)
}

func TestAllowed(t *testing.T) {
	a, _ := newTestAnalyzer(t, nil, func(cfg *m.AnalyzerConfig) {
		cfg.AllowList = m.AllowList{
			Exact:  []string{"json"},
			Prefix: []string{"vendor"},
			Regex:  []string{`^gen_\d+$`},
		}
	})

	tests := []struct {
		name string
		want bool
	}{
		{"json", true},
		{"json.decoder", false},
		{"vendor", true},
		{"vendor.lib", true},
		{"vendored", false},
		{"gen_12", true},
		{"gen_x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Allowed(tt.name))
		})
	}

	verdict, err := a.CheckSource(context.Background(), []byte("import json, vendor.lib\n"), "mod.py", "mod", nil)
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid())
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(m.AnalyzerConfig{AllowList: m.AllowList{Regex: []string{"("}}}, adapter.NewLocalSourceFSAdapter(), adapter.NewLocalModuleParser())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid allow-list pattern")
}

func TestForceStrict(t *testing.T) {
	a, _ := newTestAnalyzer(t, map[string]string{"plain.py": "x = 1\n"}, nil)

	assert.False(t, a.IsForced("plain"))
	a.ForceStrict("plain")
	assert.True(t, a.IsForced("plain"))

	verdict, err := a.CheckSource(context.Background(), []byte("import plain\n"), "mod.py", "mod", nil)
	require.NoError(t, err)
	assert.True(t, verdict.StrictValid())
}

func TestStrictEligible_IsMemoized(t *testing.T) {
	a, root := newTestAnalyzer(t, map[string]string{"dep.py": "x = 1\n"}, nil)

	ok, err := a.strictEligible(context.Background(), "dep")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(root, "dep.py"), []byte("import __strict__\n"), 0o644))

	ok, err = a.strictEligible(context.Background(), "dep")
	require.NoError(t, err)
	assert.False(t, ok)
}
