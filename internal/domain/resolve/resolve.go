// Package resolve maps module names to source files on the search path.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"strata.dev/pkg/strata/internal/adapter"
)

// Default file extensions and the package initializer base name.
const (
	DefaultSourceExt = ".py"
	DefaultStubExt   = ".pyi"
	PackageInit      = "__init__"
)

// Config holds the search order.
type Config struct {
	Roots     []string
	StubRoot  string
	SourceExt string
	StubExt   string
}

// Source is a located module source.
type Source struct {
	Bytes    []byte
	Filename string
	Root     string
	IsStub   bool
}

// Resolver finds module sources. Concrete sources are searched across every
// root before any stub is considered, so a stub in an early root never
// shadows a source in a later one.
type Resolver struct {
	fs  adapter.SourceFSAdapter
	cfg Config
}

// New constructs a Resolver, filling in default extensions.
func New(fs adapter.SourceFSAdapter, cfg Config) *Resolver {
	if cfg.SourceExt == "" {
		cfg.SourceExt = DefaultSourceExt
	}

	if cfg.StubExt == "" {
		cfg.StubExt = DefaultStubExt
	}

	cfg.Roots = append([]string(nil), cfg.Roots...)

	return &Resolver{fs: fs, cfg: cfg}
}

// ModulePath converts a dotted module name to a relative path.
func ModulePath(name string) string {
	return strings.ReplaceAll(name, ".", string(os.PathSeparator))
}

// Resolve returns the module source. A missing module is (Source{}, false,
// nil); only an unreadable existing file is an error.
func (r *Resolver) Resolve(ctx context.Context, name string) (Source, bool, error) {
	if err := ctx.Err(); err != nil {
		return Source{}, false, err
	}

	modulePath := ModulePath(name)

	for _, root := range r.cfg.Roots {
		candidates := []string{
			modulePath + r.cfg.SourceExt,
			modulePath + string(os.PathSeparator) + PackageInit + r.cfg.SourceExt,
		}

		for _, rel := range candidates {
			src, ok, err := r.load(ctx, root, rel, false)
			if err != nil || ok {
				return src, ok, err
			}
		}
	}

	stubRoots := r.cfg.Roots
	if r.cfg.StubRoot != "" {
		stubRoots = append(append([]string(nil), r.cfg.Roots...), r.cfg.StubRoot)
	}

	for _, root := range stubRoots {
		src, ok, err := r.load(ctx, root, modulePath+r.cfg.StubExt, true)
		if err != nil || ok {
			return src, ok, err
		}
	}

	slog.Debug("module not found", "module", name)

	return Source{}, false, nil
}

// IsStubFilename reports whether filename has the stub extension.
func (r *Resolver) IsStubFilename(filename string) bool {
	return strings.HasSuffix(filename, r.cfg.StubExt)
}

// Config returns a copy of the resolver configuration.
func (r *Resolver) Config() Config {
	cfg := r.cfg
	cfg.Roots = append([]string(nil), r.cfg.Roots...)

	return cfg
}

func (r *Resolver) load(ctx context.Context, root, rel string, stub bool) (Source, bool, error) {
	path := r.fs.JoinPath(ctx, root, rel)

	info, err := r.fs.FileInfo(ctx, path)
	if err != nil {
		if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
			return Source{}, false, nil
		}

		return Source{}, false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return Source{}, false, nil
	}

	data, err := r.fs.ReadFile(ctx, path)
	if err != nil {
		slog.Error("Failed to read module source", "path", path, "error", err)
		return Source{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Source{Bytes: data, Filename: string(path), Root: root, IsStub: stub}, true, nil
}
