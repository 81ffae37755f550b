package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"strata.dev/pkg/strata/internal/domain"
	domainmocks "strata.dev/pkg/strata/internal/domain/mocks"
	m "strata.dev/pkg/strata/internal/model"
)

func TestCompileCmd_DefaultArgs(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCompileCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Compile", mock.Anything, mock.MatchedBy(func(args domain.CompileArgs) bool {
		return args.File == m.Path("lib/mod.py") &&
			args.Module == "" &&
			!args.ForceStrict &&
			!args.ForceStatic &&
			args.Output == ""
	})).Return(nil)

	cmd.SetArgs([]string{"compile", "lib/mod.py", "-O", "0"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestCompileCmd_ForceFlagsAndSave(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCompileCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	mockWorkflow.On("Compile", mock.Anything, mock.MatchedBy(func(args domain.CompileArgs) bool {
		return args.Module == "pkg.mod" &&
			args.ForceStrict &&
			args.ForceStatic &&
			args.Output == m.Path(defaultReportsDir)
	})).Return(nil)

	cmd.SetArgs([]string{"compile", "mod.py", "-m", "pkg.mod", "--strict", "--static", "--save"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestCompileCmd_RequiresExactlyOneFile(t *testing.T) {
	mockWorkflow := domainmocks.NewMockWorkflow(t)

	cmd := newRootCmd()
	cmd.AddCommand(newCompileCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	originalWorkflow := workflow
	workflow = mockWorkflow
	defer func() { workflow = originalWorkflow }()

	cmd.SetArgs([]string{"compile", "a.py", "b.py"})
	err := cmd.Execute()
	require.Error(t, err)
}
