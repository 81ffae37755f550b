package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"strata.dev/pkg/strata/internal/adapter"
	"strata.dev/pkg/strata/internal/controller"
	"strata.dev/pkg/strata/internal/domain/resolve"
	m "strata.dev/pkg/strata/internal/model"
	"strata.dev/pkg/strata/internal/syntax"
)

// DriverFactory builds a fresh Driver. Batch workers each get their own.
type DriverFactory func() (*Driver, error)

// ImportArgs are the arguments of Workflow.Import.
type ImportArgs struct {
	Modules  []string
	Optimize int
}

// CompileArgs are the arguments of Workflow.Compile.
type CompileArgs struct {
	File m.Path
	// Module defaults to the file's base name without extension.
	Module      string
	Optimize    int
	ForceStrict bool
	ForceStatic bool
	// Output, when set, receives the artifact as YAML.
	Output m.Path
}

// CheckArgs are the arguments of Workflow.Check.
type CheckArgs struct {
	// Roots to discover modules in. Empty means the driver search roots.
	Roots    []m.Path
	Optimize int
	Threads  int
	Reports  m.Path
}

// ViewArgs are the arguments of Workflow.View.
type ViewArgs struct {
	Reports m.Path
}

// DiffArgs are the arguments of Workflow.Diff.
type DiffArgs struct {
	File   m.Path
	Module string
}

// Workflow is the command layer over the Driver.
type Workflow interface {
	Import(ctx context.Context, args ImportArgs) error
	Compile(ctx context.Context, args CompileArgs) error
	Check(ctx context.Context, args CheckArgs) error
	View(ctx context.Context, args ViewArgs) error
	Diff(ctx context.Context, args DiffArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	newDriver DriverFactory
}

// NewWorkflow creates a Workflow. Drivers are built on demand, so the
// factory sees configuration that is only final once flags are parsed.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	newDriver DriverFactory,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		newDriver:       newDriver,
	}
}

// Import runs the recursive entry point for each module on one Driver and
// shows the cached verdicts.
func (w *workflow) Import(ctx context.Context, args ImportArgs) error {
	driver, err := w.newDriver()
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	reports := make([]m.ModuleReport, 0, len(args.Modules))

	for _, name := range args.Modules {
		if _, err := driver.ImportModule(ctx, name, args.Optimize); err != nil {
			slog.Error("Failed to import module", "module", name, "error", err)
			return fmt.Errorf("import %s: %w", name, err)
		}

		reports = append(reports, importReport(driver, name))
	}

	return w.DisplayReports(ctx, reports)
}

func importReport(driver *Driver, name string) m.ModuleReport {
	report := m.ModuleReport{Module: name}

	verdict, ok := driver.Verdict(name)
	if !ok {
		return report
	}

	report.Verdict = verdict.Reason.String()
	report.Errors = verdict.Errors
	report.IsStatic = verdict.Reason == m.ReasonCached

	if verdict.Record != nil {
		report.Filename = verdict.Record.Filename
		report.Tier = m.TierStatic
	}

	return report
}

// Compile runs the direct entry point on one file.
func (w *workflow) Compile(ctx context.Context, args CompileArgs) error {
	source, err := w.ReadFile(ctx, args.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.File, err)
	}

	driver, err := w.newDriver()
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	req := SourceRequest{
		Source:   source,
		Filename: string(args.File),
		Name:     moduleNameOf(args.Module, args.File),
		Optimize: args.Optimize,
	}

	if args.ForceStrict || args.ForceStatic {
		req.OverrideFlags = &m.ModuleFlags{IsStrict: args.ForceStrict, IsStatic: args.ForceStatic}
	}

	outcome, err := driver.LoadCompiledModuleFromSource(ctx, req)
	if err != nil {
		return fmt.Errorf("compile %s: %w", args.File, err)
	}

	if args.Output != "" && outcome.Artifact != nil {
		if err := w.SaveArtifact(ctx, args.Output, outcome.Artifact); err != nil {
			return fmt.Errorf("save artifact: %w", err)
		}
	}

	return w.DisplayArtifact(ctx, outcomeReport(req.Name, req.Filename, outcome), outcome.Artifact)
}

func moduleNameOf(name string, file m.Path) string {
	if name != "" {
		return name
	}

	base := filepath.Base(string(file))

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func outcomeReport(name, filename string, outcome m.CompilationOutcome) m.ModuleReport {
	report := m.ModuleReport{
		Module:        name,
		Filename:      filename,
		IsValidStrict: outcome.IsValidStrict,
		IsStatic:      outcome.IsStatic,
		Verdict:       "compiled",
	}

	if outcome.Artifact == nil {
		report.Verdict = "failed"
		return report
	}

	report.Tier = outcome.Artifact.Tier
	report.Digest = outcome.Artifact.Digest

	return report
}

// Check compiles every module under the roots, spreading them over
// args.Threads workers, and saves one report per module.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	driver, err := w.newDriver()
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	units, err := w.discover(ctx, args.Roots, driver.SearchConfig())
	if err != nil {
		return fmt.Errorf("discover modules: %w", err)
	}

	threads := max(args.Threads, 1)
	w.DisplayCheckInfo(ctx, len(units), threads)

	reports, err := w.checkUnits(ctx, units, args.Optimize, threads)

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Module < reports[j].Module
	})

	if args.Reports != "" {
		if saveErr := w.SaveReports(ctx, args.Reports, reports); saveErr != nil {
			return fmt.Errorf("save reports: %w", saveErr)
		}
	}

	if displayErr := w.DisplayReports(ctx, reports); displayErr != nil {
		return displayErr
	}

	return err
}

type checkUnit struct {
	name string
	path m.Path
}

func (w *workflow) checkUnits(ctx context.Context, units []checkUnit, optimize, threads int) ([]m.ModuleReport, error) {
	var (
		reports []m.ModuleReport
		faults  []error
		mu      sync.Mutex
	)

	var group errgroup.Group

	group.SetLimit(threads)

	for worker := range threads {
		group.Go(func() error {
			driver, err := w.newDriver()
			if err != nil {
				return fmt.Errorf("create driver: %w", err)
			}

			for i := worker; i < len(units); i += threads {
				report, err := w.checkUnit(ctx, driver, units[i], optimize)

				mu.Lock()
				reports = append(reports, report)
				if err != nil {
					faults = append(faults, err)
				}
				mu.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return reports, err
	}

	if len(faults) > 0 {
		return reports, fmt.Errorf("errors occurred during check: %w", errors.Join(faults...))
	}

	return reports, nil
}

// checkUnit returns a report even on failure. Structured errors are part of
// the report; any other error is also returned.
func (w *workflow) checkUnit(ctx context.Context, driver *Driver, unit checkUnit, optimize int) (m.ModuleReport, error) {
	report := m.ModuleReport{Module: unit.name, Filename: string(unit.path)}

	fail := func(err error) (m.ModuleReport, error) {
		var serr *m.StructuredError
		if errors.As(err, &serr) {
			report.Verdict = "failed"
			report.Errors = append(report.Errors, *serr)

			return report, nil
		}

		report.Verdict = "error"
		report.Errors = append(report.Errors, m.StructuredError{Message: err.Error(), Filename: string(unit.path)})

		return report, fmt.Errorf("%s: %w", unit.name, err)
	}

	if _, err := driver.ImportModule(ctx, unit.name, optimize); err != nil {
		return fail(err)
	}

	source, err := w.ReadFile(ctx, unit.path)
	if err != nil {
		return fail(err)
	}

	outcome, err := driver.LoadCompiledModuleFromSource(ctx, SourceRequest{
		Source:   source,
		Filename: string(unit.path),
		Name:     unit.name,
		Optimize: optimize,
	})
	if err != nil {
		return fail(err)
	}

	report = outcomeReport(unit.name, string(unit.path), outcome)

	if verdict, ok := driver.Verdict(unit.name); ok {
		report.Verdict = verdict.Reason.String()
		report.Errors = verdict.Errors
	}

	return report, nil
}

// discover walks roots for module sources and names each by its path
// relative to the root it was found under. No roots means the search roots.
func (w *workflow) discover(ctx context.Context, roots []m.Path, cfg resolve.Config) ([]checkUnit, error) {
	if len(roots) == 0 {
		for _, root := range cfg.Roots {
			roots = append(roots, m.Path(root))
		}
	}

	seen := make(map[string]bool)

	var units []checkUnit

	for _, root := range roots {
		err := w.Walk(ctx, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() || filepath.Ext(path) != cfg.SourceExt {
				return nil
			}

			rel, err := w.RelPath(ctx, root, m.Path(path))
			if err != nil {
				return err
			}

			name := moduleNameFromPath(string(rel), cfg.SourceExt)
			if name == "" || seen[name] {
				return nil
			}

			seen[name] = true
			units = append(units, checkUnit{name: name, path: m.Path(path)})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(units, func(i, j int) bool {
		return units[i].name < units[j].name
	})

	return units, nil
}

func moduleNameFromPath(rel, ext string) string {
	rel = strings.TrimSuffix(filepath.ToSlash(rel), ext)
	rel = strings.TrimSuffix(rel, "/"+resolve.PackageInit)

	if rel == resolve.PackageInit {
		return ""
	}

	return strings.ReplaceAll(rel, "/", ".")
}

// View shows previously saved reports.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	reports, err := w.LoadReports(ctx, args.Reports)
	if err != nil {
		return fmt.Errorf("load reports: %w", err)
	}

	return w.DisplayReports(ctx, reports)
}

// Diff shows what the rewriter does to a file.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	source, err := w.ReadFile(ctx, args.File)
	if err != nil {
		return fmt.Errorf("read %s: %w", args.File, err)
	}

	driver, err := w.newDriver()
	if err != nil {
		return fmt.Errorf("create driver: %w", err)
	}

	before, after, err := driver.Rewritten(ctx, SourceRequest{
		Source:   source,
		Filename: string(args.File),
		Name:     moduleNameOf(args.Module, args.File),
	})
	if err != nil {
		return err
	}

	return w.DisplayDiff(ctx, string(args.File), syntax.Format(before), syntax.Format(after))
}
