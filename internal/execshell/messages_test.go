package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForCherryPickNamesTheCommit(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"cherry-pick", "0a1b2c3d"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Cherry-picking 0a1b2c3d in /workspace/repo", message)
}

func TestBuildStartedMessageForCherryPickAbortUsesAbortLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"cherry-pick", "--abort"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Aborting cherry-pick in /workspace/repo", message)
}

func TestBuildFailureMessageForAmendIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"commit", "--amend", "-m", "subject"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 128, StandardError: "bad revision"})

	require.Equal(t, "Failed to amend commit in /workspace/repo (exit code 128: bad revision)", message)
}

func TestBuildStartedMessageForGoModVendorDescribesVendoring(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGo,
		Details: CommandDetails{
			Arguments:        []string{"mod", "vendor"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Vendoring module dependencies in /workspace/repo", message)
}
