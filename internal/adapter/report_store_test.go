package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "strata.dev/pkg/strata/internal/model"
)

func TestReportStore_SaveAndLoadReports(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	dir := m.Path(filepath.Join(t.TempDir(), "reports"))

	reports := []m.ModuleReport{
		{Module: "pkg.a", Filename: "lib/pkg/a.py", Tier: m.TierStatic, Verdict: "static", IsValidStrict: true, IsStatic: true, Digest: "abc"},
		{
			Module:  "pkg.b",
			Verdict: "strict-invalid",
			Errors:  []m.StructuredError{{Message: "module-level side effect: print()", Filename: "lib/pkg/b.py", Line: 3}},
		},
	}

	require.NoError(t, store.SaveReports(ctx, dir, reports))

	loaded, err := store.LoadReports(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, reports, loaded)
}

func TestReportStore_LoadReports_Missing(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())

	_, err := store.LoadReports(context.Background(), m.Path(t.TempDir()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reports found")
}

func TestReportStore_LoadReports_VersionMismatch(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, reportsFileName), []byte("version: 7\nmodules: []\n"), 0o600))

	_, err := store.LoadReports(context.Background(), m.Path(dir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported reports version 7")
}

func TestReportStore_SaveAndLoadArtifact(t *testing.T) {
	store := NewReportStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	dir := m.Path(t.TempDir())

	artifact := &m.Artifact{
		Name:      "pkg.a",
		Filename:  "lib/pkg/a.py",
		Tier:      m.TierStatic,
		Backend:   "static",
		Patchable: true,
		Instructions: []m.Instruction{
			{Op: "EVAL", Arg: "1", Line: 2},
			{Op: "STORE_TYPED", Arg: "x: int", Line: 2},
		},
		Digest: "d1",
	}

	require.NoError(t, store.SaveArtifact(ctx, dir, artifact))

	loaded, err := store.LoadArtifact(ctx, dir, "pkg.a")
	require.NoError(t, err)
	assert.Equal(t, artifact, loaded)
}
