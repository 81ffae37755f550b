package static

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"strata.dev/pkg/strata/internal/domain/codegen"
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

type fakeImporter struct {
	records map[string]*m.ModuleRecord
	err     error
	calls   []string
}

func (f *fakeImporter) ImportModule(_ context.Context, name string, _ int) (*m.ModuleRecord, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return nil, f.err
	}

	return f.records[name], nil
}

var testBuiltins = m.SnapshotBuiltins(map[string]any{
	"int":   "type",
	"float": "type",
	"str":   "type",
	"bool":  "type",
	"None":  "constant",
})

func parse(t *testing.T, src string) *syntax.Module {
	t.Helper()

	tree, err := syntax.Parse("mod.py", []byte(src))
	require.NoError(t, err)

	return tree
}

func TestDeclareModule_Exports(t *testing.T) {
	src := `import __static__
import os
from typing import List
X: int = 1
Y = "s"
def f(a: int) -> str:
    return "x"
class C:
    pass
if True:
    Z = 2.0
`
	importer := &fakeImporter{}

	record, err := New().DeclareModule(context.Background(), importer, "mod", "mod.py", parse(t, src), 0, testBuiltins)
	require.NoError(t, err)

	assert.Equal(t, "mod", record.Name)
	assert.Equal(t, "mod.py", record.Filename)
	assert.NotNil(t, record.Tree)
	assert.NotNil(t, record.Symbols)
	assert.Empty(t, record.Dependencies)
	assert.Equal(t, []string{"os", "typing"}, importer.calls)

	tests := []struct {
		name string
		want m.Declaration
	}{
		{"os", m.Declaration{Name: "os", Kind: m.DeclImport, Type: "os", Line: 2}},
		{"List", m.Declaration{Name: "List", Kind: m.DeclImport, Type: "typing.List", Line: 3}},
		{"X", m.Declaration{Name: "X", Kind: m.DeclValue, Type: "int", Line: 4}},
		{"Y", m.Declaration{Name: "Y", Kind: m.DeclValue, Type: "str", Line: 5}},
		{"f", m.Declaration{Name: "f", Kind: m.DeclFunction, Type: "str", Line: 6}},
		{"C", m.Declaration{Name: "C", Kind: m.DeclClass, Type: "C", Line: 8}},
		{"Z", m.Declaration{Name: "Z", Kind: m.DeclValue, Type: "float", Line: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := record.Export(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeclareModule_StaticDependency(t *testing.T) {
	dep := &m.ModuleRecord{
		Name: "dep",
		Exports: map[string]m.Declaration{
			"Thing": {Name: "Thing", Kind: m.DeclClass, Type: "Thing", Line: 3},
		},
	}
	importer := &fakeImporter{records: map[string]*m.ModuleRecord{"dep": dep}}

	record, err := New().DeclareModule(context.Background(), importer, "mod", "mod.py",
		parse(t, "from dep import Thing as T\nt: T\n"), 0, testBuiltins)
	require.NoError(t, err)

	assert.Equal(t, []string{"dep"}, record.Dependencies)

	decl, ok := record.Export("T")
	require.True(t, ok)
	assert.Equal(t, m.DeclClass, decl.Kind)
	assert.Equal(t, "Thing", decl.Type)
}

func TestDeclareModule_MissingName(t *testing.T) {
	importer := &fakeImporter{records: map[string]*m.ModuleRecord{
		"dep": {Name: "dep", Exports: map[string]m.Declaration{}},
	}}

	_, err := New().DeclareModule(context.Background(), importer, "mod", "mod.py",
		parse(t, "x = 1\nfrom dep import Missing\n"), 0, testBuiltins)

	var serr *m.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "cannot import name 'Missing' from 'dep'", serr.Message)
	assert.Equal(t, "mod.py", serr.Filename)
	assert.Equal(t, 2, serr.Line)
}

func TestDeclareModule_LiteralTypes(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"matching int", "x: int = 1\n", ""},
		{"bool fits int", "x: int = True\n", ""},
		{"int fits float", "x: float = 1\n", ""},
		{"None into int", "x: int = None\n", "type mismatch: None cannot be assigned to int"},
		{"str into int", "x: int = 'a'\n", "type mismatch: str cannot be assigned to int"},
		{"float into int", "x: int = 1.5\n", "type mismatch: float cannot be assigned to int"},
		{"expression is not checked", "x: int = compute()\n", ""},
		{"stub placeholder", "x: int = ...\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().DeclareModule(context.Background(), &fakeImporter{}, "mod", "mod.py", parse(t, tt.src), 0, testBuiltins)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			var serr *m.StructuredError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.wantErr, serr.Message)
			assert.Equal(t, 1, serr.Line)
		})
	}
}

func TestDeclareModule_UnknownAnnotation(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"module level", "x: Foo\n", "unknown type 'Foo' in annotation 'Foo'"},
		{"parameter", "def f(a: Bar) -> int:\n    return 1\n", "unknown type 'Bar' in annotation 'Bar'"},
		{"return", "def f() -> Baz:\n    pass\n", "unknown type 'Baz' in annotation 'Baz'"},
		{"nested in class", "class C:\n    y: Missing\n", "unknown type 'Missing' in annotation 'Missing'"},
		{"local class", "class Node:\n    pass\nn: Node\n", ""},
		{"imported name", "from typing import List\nxs: List[int]\n", ""},
		{"attribute", "import typing\nxs: typing.List[str]\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().DeclareModule(context.Background(), &fakeImporter{}, "mod", "mod.py", parse(t, tt.src), 0, testBuiltins)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			var serr *m.StructuredError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.wantErr, serr.Message)
		})
	}
}

func TestDeclareModule_RelativeImports(t *testing.T) {
	importer := &fakeImporter{}

	_, err := New().DeclareModule(context.Background(), importer, "pkg.mod", filepath.Join("pkg", "mod.py"),
		parse(t, "from . import sib\nfrom .other import x\n"), 0, testBuiltins)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg", "pkg.other"}, importer.calls)

	importer = &fakeImporter{}
	_, err = New().DeclareModule(context.Background(), importer, "pkg", filepath.Join("pkg", "__init__.py"),
		parse(t, "from .sib import x\n"), 0, testBuiltins)
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg.sib"}, importer.calls)

	_, err = New().DeclareModule(context.Background(), &fakeImporter{}, "top", "top.py",
		parse(t, "from . import x\n"), 0, testBuiltins)

	var serr *m.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "attempted relative import beyond top-level package", serr.Message)
}

func TestDeclareModule_SkipsMarkersAndSelf(t *testing.T) {
	importer := &fakeImporter{}

	_, err := New().DeclareModule(context.Background(), importer, "mod", "mod.py",
		parse(t, "import __static__, __strict__\nimport mod\nfrom __static__ import cast\n"), 0, testBuiltins)
	require.NoError(t, err)
	assert.Empty(t, importer.calls)
}

func TestDeclareModule_ImporterErrorPropagates(t *testing.T) {
	cycle := errors.New("circular static dependency: a -> b -> a")
	importer := &fakeImporter{err: cycle}

	_, err := New().DeclareModule(context.Background(), importer, "a", "a.py", parse(t, "import b\n"), 0, testBuiltins)
	require.ErrorIs(t, err, cycle)
}

func TestDeclareModule_Errors(t *testing.T) {
	_, err := New().DeclareModule(context.Background(), &fakeImporter{}, "mod", "mod.py", nil, 0, testBuiltins)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = New().DeclareModule(ctx, &fakeImporter{}, "mod", "mod.py", parse(t, "x = 1\n"), 0, testBuiltins)
	require.ErrorIs(t, err, context.Canceled)
}

func TestCompile(t *testing.T) {
	src := "import __static__\nx: int = 1\ndef f(a: int) -> int:\n    return a\n"

	artifact, err := New().Compile(context.Background(), &fakeImporter{}, "mod", "mod.py", parse(t, src), 0, true, testBuiltins)
	require.NoError(t, err)

	assert.Equal(t, m.TierStatic, artifact.Tier)
	assert.Equal(t, Backend, artifact.Backend)
	assert.True(t, artifact.Patchable)
	assert.Contains(t, artifact.Instructions, m.Instruction{Op: codegen.OpStoreTyped, Arg: "x: int", Line: 2})
	assert.Contains(t, artifact.Instructions, m.Instruction{Op: codegen.OpCheckArgs, Arg: "a: int", Line: 3})
	assert.Equal(t, codegen.Digest("mod", m.TierStatic, Backend, artifact.Instructions), artifact.Digest)

	artifact, err = New().Compile(context.Background(), &fakeImporter{}, "mod", "mod.py", parse(t, src), 0, false, testBuiltins)
	require.NoError(t, err)
	assert.False(t, artifact.Patchable)
}

func TestCompile_DeclarationFailure(t *testing.T) {
	artifact, err := New().Compile(context.Background(), &fakeImporter{}, "mod", "mod.py", parse(t, "x: int = 'a'\n"), 0, false, testBuiltins)
	require.Error(t, err)
	assert.Nil(t, artifact)
}
