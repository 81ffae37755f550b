package controller

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	m "strata.dev/pkg/strata/internal/model"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd    *cobra.Command
	styled bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, styled bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, styled: styled}
}

// DisplayCheckInfo shows how a batch check will run.
func (s *SimpleUI) DisplayCheckInfo(ctx context.Context, modules int, threads int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Checking %d module(s) with %d worker(s)\n", modules, threads)
}

// DisplayReports prints one row per module and a summary footer.
func (s *SimpleUI) DisplayReports(ctx context.Context, reports []m.ModuleReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("\n%s", s.renderReportTable(reports))

	for _, report := range reports {
		for _, diag := range report.Errors {
			s.printf("%s %s\n", s.style(failStyle, report.Module+":"), diag.Error())
		}
	}

	return nil
}

func (s *SimpleUI) renderReportTable(reports []m.ModuleReport) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Module", "Verdict", "Tier", "Strict", "Static", "Errors"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoFormatHeaders(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_RIGHT,
	})

	static, failed := 0, 0

	for _, report := range reports {
		if report.IsStatic {
			static++
		}

		if len(report.Errors) > 0 {
			failed++
		}

		table.Append([]string{
			report.Module,
			s.verdictLabel(report.Verdict),
			string(report.Tier),
			yesNo(report.IsValidStrict),
			yesNo(report.IsStatic),
			strconv.Itoa(len(report.Errors)),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Modules %d", len(reports)),
		"", "", "",
		fmt.Sprintf("%d static", static),
		fmt.Sprintf("%d failing", failed),
	})

	table.Render()

	return buf.String()
}

func (s *SimpleUI) verdictLabel(verdict string) string {
	switch verdict {
	case "static", "compiled":
		return s.style(okStyle, verdict)
	case "not-static", "not-found":
		return s.style(dimStyle, verdict)
	case "strict-invalid":
		return s.style(warnStyle, verdict)
	case "static-failed", "failed", "error":
		return s.style(failStyle, verdict)
	}

	return verdict
}

// DisplayArtifact prints the compilation summary and the instruction
// listing.
func (s *SimpleUI) DisplayArtifact(ctx context.Context, report m.ModuleReport, artifact *m.Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if artifact == nil {
		s.printf("%s %s: no artifact (strict=%s static=%s)\n",
			s.style(failStyle, "failed"), report.Module, yesNo(report.IsValidStrict), yesNo(report.IsStatic))

		return nil
	}

	s.printf("%s %s [%s/%s] strict=%s static=%s patchable=%s\n",
		s.style(okStyle, "compiled"), report.Module, artifact.Tier, artifact.Backend,
		yesNo(report.IsValidStrict), yesNo(report.IsStatic), yesNo(artifact.Patchable))
	s.printf("%s %s\n", s.style(dimStyle, "digest"), artifact.Digest)

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Line", "Op", "Arg"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)

	for _, in := range artifact.Instructions {
		table.Append([]string{strconv.Itoa(in.Line), in.Op, in.Arg})
	}

	table.Render()
	s.printf("%s", buf.String())

	return nil
}

// DisplayDiff prints a unified diff between two renderings of a file.
func (s *SimpleUI) DisplayDiff(ctx context.Context, filename, before, after string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	text, err := UnifiedDiff(filename, before, after)
	if err != nil {
		return err
	}

	if text == "" {
		s.printf("%s\n", s.style(dimStyle, "no changes"))
		return nil
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			s.printf("%s", s.style(okStyle, line))
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			s.printf("%s", s.style(failStyle, line))
		default:
			s.printf("%s", line)
		}
	}

	return nil
}

// UnifiedDiff renders a unified diff with three lines of context.
func UnifiedDiff(filename, before, after string) (string, error) {
	diff := difflib.UnifiedDiff{
		A:        diffLines(before),
		B:        diffLines(after),
		FromFile: filename,
		ToFile:   filename + " (rewritten)",
		Context:  3,
	}

	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return "", fmt.Errorf("failed to diff %s: %w", filename, err)
	}

	return text, nil
}

// diffLines splits text into newline-terminated lines. A final newline does
// not start another line; a missing one is added.
func diffLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")

	last := len(lines) - 1
	if lines[last] == "" {
		return lines[:last]
	}

	lines[last] += "\n"

	return lines
}

func (s *SimpleUI) style(st lipgloss.Style, text string) string {
	if !s.styled {
		return text
	}

	// Styles must not swallow the newline of a diff line.
	trimmed := strings.TrimSuffix(text, "\n")

	return st.Render(trimmed) + text[len(trimmed):]
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}
