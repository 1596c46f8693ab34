package vendorrefresh

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kestrelworks/forksync/internal/execshell"
	"github.com/kestrelworks/forksync/internal/gitrepo"
	"github.com/kestrelworks/forksync/internal/ui"
)

const (
	commandUseConstant              = "vendor <source-path>"
	commandShortDescriptionConstant = "Refresh the vendored dependency tree"
	commandLongDescriptionConstant  = "vendor regenerates the vendored dependency tree, runs code generation for the provided source path, and commits the staged result when it differs from the current branch tip."
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ToolExecutor runs git and go commands for the refresh workflow.
type ToolExecutor interface {
	gitrepo.GitExecutor
	GoExecutor
}

// ServiceProvider constructs a refresh executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (RefreshExecutor, error)

// RefreshExecutor runs the vendor refresh workflow.
type RefreshExecutor interface {
	Execute(executionContext context.Context, options RefreshOptions) (RefreshResult, error)
}

// CommandBuilder assembles the vendor Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     ToolExecutor
	WorkingDirectory             string
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
}

// Build constructs the vendor command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          builder.runRefresh,
	}

	return command, nil
}

func (builder *CommandBuilder) runRefresh(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return managerError
	}

	repositoryPath := builder.WorkingDirectory
	if len(repositoryPath) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return workingDirectoryError
		}
		repositoryPath = currentDirectory
	}

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:     logger,
		Repository: repositoryManager,
		GoExecutor: executor,
		Output:     command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, executionError := service.Execute(command.Context(), RefreshOptions{
		RepositoryPath: repositoryPath,
		SourcePath:     arguments[0],
	})
	return executionError
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	var logger *zap.Logger
	if builder.LoggerProvider != nil {
		logger = builder.LoggerProvider()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (ToolExecutor, error) {
	if builder.Executor != nil {
		return builder.Executor, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	eventObservers := []execshell.CommandEventObserver{}
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		eventObservers = append(eventObservers, ui.NewConsoleCommandEventLogger(logger))
	}
	shellExecutor, creationError := execshell.NewShellExecutor(logger, commandRunner, eventObservers...)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (RefreshExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}
