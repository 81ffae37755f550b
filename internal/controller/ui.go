// Package controller provides output adapters for displaying compilation
// results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "strata.dev/pkg/strata/internal/model"
)

// UI defines how workflow results are shown to the user.
type UI interface {
	DisplayCheckInfo(ctx context.Context, modules int, threads int)
	DisplayReports(ctx context.Context, reports []m.ModuleReport) error
	DisplayArtifact(ctx context.Context, report m.ModuleReport, artifact *m.Artifact) error
	DisplayDiff(ctx context.Context, filename, before, after string) error
}

// NewUI returns the UI for cmd's output. Styling is enabled only on a
// terminal.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return NewSimpleUI(cmd, tty)
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
