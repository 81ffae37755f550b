package domain_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"strata.dev/pkg/strata/internal/adapter"
	adaptermocks "strata.dev/pkg/strata/internal/adapter/mocks"
	controllermocks "strata.dev/pkg/strata/internal/controller/mocks"
	"strata.dev/pkg/strata/internal/domain"
	"strata.dev/pkg/strata/internal/domain/rewrite"
	m "strata.dev/pkg/strata/internal/model"
)

func driverFactory(root string, mutate func(*domain.Options)) domain.DriverFactory {
	return func() (*domain.Driver, error) {
		opts := domain.Options{SearchRoots: []string{root}}
		if mutate != nil {
			mutate(&opts)
		}

		return domain.NewDriver(opts, realCollaborators())
	}
}

func newTestWorkflow(ui *controllermocks.MockUI, store adapter.ReportStore, root string, mutate func(*domain.Options)) domain.Workflow {
	fs := adapter.NewLocalSourceFSAdapter()
	if store == nil {
		store = adapter.NewReportStore(fs)
	}

	return domain.NewWorkflow(fs, store, ui, driverFactory(root, mutate))
}

func byModule(reports []m.ModuleReport) map[string]m.ModuleReport {
	out := make(map[string]m.ModuleReport, len(reports))
	for _, r := range reports {
		out[r.Module] = r
	}

	return out
}

func TestWorkflow_Import(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py":     "import __static__\n",
		"plain.py": "x = 1\n",
	})

	var got []m.ModuleReport

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayReports", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).([]m.ModuleReport) }).
		Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, nil)

	err := wf.Import(context.Background(), domain.ImportArgs{Modules: []string{"a", "plain", "missing"}})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, []string{"a", "plain", "missing"}, []string{got[0].Module, got[1].Module, got[2].Module})

	assert.Equal(t, "static", got[0].Verdict)
	assert.True(t, got[0].IsStatic)
	assert.Equal(t, m.TierStatic, got[0].Tier)
	assert.Equal(t, filepath.Join(root, "a.py"), got[0].Filename)

	assert.Equal(t, "not-static", got[1].Verdict)
	assert.False(t, got[1].IsStatic)
	assert.Empty(t, got[1].Tier)

	assert.Equal(t, "not-found", got[2].Verdict)
}

func TestWorkflow_Import_Fault(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py": "import __static__\nimport b\n",
		"b.py": "import __static__\nimport a\n",
	})

	ui := controllermocks.NewMockUI(t)
	wf := newTestWorkflow(ui, nil, root, nil)

	err := wf.Import(context.Background(), domain.ImportArgs{Modules: []string{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import a: circular static dependency: a -> b -> a")
	ui.AssertNotCalled(t, "DisplayReports", mock.Anything, mock.Anything)
}

func TestWorkflow_DriverFactoryError(t *testing.T) {
	ui := controllermocks.NewMockUI(t)
	fs := adapter.NewLocalSourceFSAdapter()
	factory := func() (*domain.Driver, error) { return nil, errors.New("no driver") }

	wf := domain.NewWorkflow(fs, adapter.NewReportStore(fs), ui, factory)

	err := wf.Import(context.Background(), domain.ImportArgs{Modules: []string{"a"}})
	require.EqualError(t, err, "create driver: no driver")
}

func TestWorkflow_Compile(t *testing.T) {
	root := writeFiles(t, map[string]string{"tool.py": "import __strict__\nX = 1\n"})
	file := m.Path(filepath.Join(root, "tool.py"))

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayArtifact", mock.Anything,
		mock.MatchedBy(func(r m.ModuleReport) bool {
			return r.Module == "tool" && r.Verdict == "compiled" && r.Tier == m.TierStrict && r.IsValidStrict && r.Digest != ""
		}),
		mock.MatchedBy(func(a *m.Artifact) bool { return a != nil && a.Name == "tool" }),
	).Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, nil)

	err := wf.Compile(context.Background(), domain.CompileArgs{File: file})
	require.NoError(t, err)
}

func TestWorkflow_Compile_SavesArtifact(t *testing.T) {
	root := writeFiles(t, map[string]string{"tool.py": "x: int = 1\n"})
	out := m.Path(t.TempDir())

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayArtifact", mock.Anything,
		mock.MatchedBy(func(r m.ModuleReport) bool { return r.Module == "pkg.tool" && r.Tier == m.TierStatic && r.IsStatic }),
		mock.Anything,
	).Return(nil).Once()

	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore(fs)
	wf := newTestWorkflow(ui, store, root, nil)

	err := wf.Compile(context.Background(), domain.CompileArgs{
		File:        m.Path(filepath.Join(root, "tool.py")),
		Module:      "pkg.tool",
		ForceStatic: true,
		Output:      out,
	})
	require.NoError(t, err)

	artifact, err := store.LoadArtifact(context.Background(), out, "pkg.tool")
	require.NoError(t, err)
	assert.Equal(t, m.TierStatic, artifact.Tier)
	assert.NotEmpty(t, artifact.Instructions)
}

func TestWorkflow_Compile_Failed(t *testing.T) {
	root := writeFiles(t, map[string]string{"broken.py": "import __static__\nx: int = 'a'\n"})
	out := t.TempDir()

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayArtifact", mock.Anything,
		mock.MatchedBy(func(r m.ModuleReport) bool { return r.Module == "broken" && r.Verdict == "failed" && r.IsStatic }),
		mock.MatchedBy(func(a *m.Artifact) bool { return a == nil }),
	).Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, nil)

	err := wf.Compile(context.Background(), domain.CompileArgs{
		File:   m.Path(filepath.Join(root, "broken.py")),
		Output: m.Path(out),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed compilation must not save an artifact")
}

func TestWorkflow_Compile_Errors(t *testing.T) {
	root := writeFiles(t, map[string]string{"broken.py": "import __static__\nx: int = 'a'\n"})

	ui := controllermocks.NewMockUI(t)

	wf := newTestWorkflow(ui, nil, root, nil)
	err := wf.Compile(context.Background(), domain.CompileArgs{File: m.Path(filepath.Join(root, "absent.py"))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read ")

	raising := newTestWorkflow(ui, nil, root, func(o *domain.Options) { o.RaiseOnError = true })
	err = raising.Compile(context.Background(), domain.CompileArgs{File: m.Path(filepath.Join(root, "broken.py"))})

	var serr *m.StructuredError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Line)

	ui.AssertNotCalled(t, "DisplayArtifact", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_Check(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py":                              "import __static__\nX: int = 1\n",
		"broken.py":                         "import __static__\nx: int = 'a'\n",
		"__init__.py":                       "",
		filepath.Join("pkg", "__init__.py"): "import __strict__\n",
		filepath.Join("pkg", "mod.py"):      "x = 1\n",
		filepath.Join("pkg", "notes.txt"):   "not a module\n",
	})
	reportsDir := m.Path(t.TempDir())

	var got []m.ModuleReport

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayCheckInfo", mock.Anything, 4, 2).Return().Once()
	ui.On("DisplayReports", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).([]m.ModuleReport) }).
		Return(nil).Once()

	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore(fs)
	wf := newTestWorkflow(ui, store, root, nil)

	err := wf.Check(context.Background(), domain.CheckArgs{Threads: 2, Reports: reportsDir})
	require.NoError(t, err)

	require.Len(t, got, 4)

	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.Module)
	}

	assert.Equal(t, []string{"a", "broken", "pkg", "pkg.mod"}, names)

	reports := byModule(got)
	assert.Equal(t, "static", reports["a"].Verdict)
	assert.Equal(t, m.TierStatic, reports["a"].Tier)
	assert.Equal(t, "static-failed", reports["broken"].Verdict)
	require.Len(t, reports["broken"].Errors, 1)
	assert.Equal(t, "type mismatch: str cannot be assigned to int", reports["broken"].Errors[0].Message)
	assert.Equal(t, "not-static", reports["pkg"].Verdict)
	assert.Equal(t, m.TierStrict, reports["pkg"].Tier)
	assert.True(t, reports["pkg"].IsValidStrict)
	assert.Equal(t, m.TierBasic, reports["pkg.mod"].Tier)

	saved, err := store.LoadReports(context.Background(), reportsDir)
	require.NoError(t, err)
	assert.Equal(t, got, saved)
}

func TestWorkflow_Check_ExplicitRoots(t *testing.T) {
	root := writeFiles(t, map[string]string{"lib.py": "x = 1\n"})
	other := writeFiles(t, map[string]string{"lib.py": "y = 2\n", "extra.py": "z = 3\n"})

	var got []m.ModuleReport

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayCheckInfo", mock.Anything, 2, 1).Return().Once()
	ui.On("DisplayReports", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).([]m.ModuleReport) }).
		Return(nil).Once()

	store := adaptermocks.NewMockReportStore(t)
	wf := newTestWorkflow(ui, store, root, nil)

	err := wf.Check(context.Background(), domain.CheckArgs{Roots: []m.Path{m.Path(root), m.Path(other)}})
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "extra", got[0].Module)
	assert.Equal(t, "lib", got[1].Module)
	assert.Equal(t, filepath.Join(root, "lib.py"), got[1].Filename, "the first root wins for a duplicate name")
}

func TestWorkflow_Check_Faults(t *testing.T) {
	root := writeFiles(t, map[string]string{
		"a.py":  "import __static__\nimport b\n",
		"b.py":  "import __static__\nimport a\n",
		"ok.py": "x = 1\n",
	})

	var got []m.ModuleReport

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayCheckInfo", mock.Anything, 3, 3).Return().Once()
	ui.On("DisplayReports", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).([]m.ModuleReport) }).
		Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, nil)

	err := wf.Check(context.Background(), domain.CheckArgs{Threads: 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "errors occurred during check")
	assert.Contains(t, err.Error(), "circular static dependency")

	reports := byModule(got)
	require.Len(t, reports, 3)
	assert.Equal(t, "error", reports["a"].Verdict)
	assert.Equal(t, "error", reports["b"].Verdict)
	assert.Equal(t, "not-static", reports["ok"].Verdict)
}

func TestWorkflow_Check_RaisedDiagnosticsAreReported(t *testing.T) {
	root := writeFiles(t, map[string]string{"broken.py": "import __static__\nx: int = 'a'\n"})

	var got []m.ModuleReport

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayCheckInfo", mock.Anything, 1, 1).Return().Once()
	ui.On("DisplayReports", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).([]m.ModuleReport) }).
		Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, func(o *domain.Options) { o.RaiseOnError = true })

	err := wf.Check(context.Background(), domain.CheckArgs{})
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "failed", got[0].Verdict)
	require.Len(t, got[0].Errors, 1)
	assert.Equal(t, 2, got[0].Errors[0].Line)
}

func TestWorkflow_Check_SaveError(t *testing.T) {
	root := writeFiles(t, map[string]string{"ok.py": "x = 1\n"})

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayCheckInfo", mock.Anything, 1, 1).Return().Once()

	store := adaptermocks.NewMockReportStore(t)
	store.On("SaveReports", mock.Anything, m.Path("out"), mock.Anything).Return(errors.New("read-only")).Once()

	wf := newTestWorkflow(ui, store, root, nil)

	err := wf.Check(context.Background(), domain.CheckArgs{Reports: "out"})
	require.EqualError(t, err, "save reports: read-only")
}

func TestWorkflow_View(t *testing.T) {
	fs := adapter.NewLocalSourceFSAdapter()
	store := adapter.NewReportStore(fs)
	dir := m.Path(t.TempDir())

	reports := []m.ModuleReport{{Module: "a", Verdict: "static", Tier: m.TierStatic, IsStatic: true}}
	require.NoError(t, store.SaveReports(context.Background(), dir, reports))

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayReports", mock.Anything, reports).Return(nil).Once()

	wf := newTestWorkflow(ui, store, t.TempDir(), nil)

	require.NoError(t, wf.View(context.Background(), domain.ViewArgs{Reports: dir}))

	err := wf.View(context.Background(), domain.ViewArgs{Reports: m.Path(t.TempDir())})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reports found")
}

func TestWorkflow_Diff(t *testing.T) {
	root := writeFiles(t, map[string]string{"shapes.py": "import __strict__\nclass Square:\n    pass\n"})
	file := filepath.Join(root, "shapes.py")

	ui := controllermocks.NewMockUI(t)
	ui.On("DisplayDiff", mock.Anything, file,
		mock.MatchedBy(func(before string) bool { return !strings.Contains(before, "built by") }),
		mock.MatchedBy(func(after string) bool { return strings.Contains(after, "# built by "+rewrite.ClassBuilder) }),
	).Return(nil).Once()

	wf := newTestWorkflow(ui, nil, root, nil)

	require.NoError(t, wf.Diff(context.Background(), domain.DiffArgs{File: m.Path(file)}))

	err := wf.Diff(context.Background(), domain.DiffArgs{File: m.Path(filepath.Join(root, "absent.py"))})
	require.Error(t, err)
}
