package sync

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
	commandUseConstant               = "sync <downstream-org/repo/branch>"
	commandShortDescriptionConstant  = "Synchronize a downstream branch with upstream commits"
	commandLongDescriptionConstant   = "sync compares the downstream branch history against the upstream branch, writes the commit logs and missing sets to the workspace, and cherry-picks the upstream commits not yet reflected downstream, annotating each applied commit with its provenance."
	upstreamFlagNameConstant         = "upstream"
	upstreamFlagShorthandConstant    = "u"
	upstreamFlagUsageConstant        = "Upstream org/repo/branch triple (required)"
	noCherryPickFlagNameConstant     = "no-cherry-pick"
	noCherryPickFlagUsageConstant    = "List the missing commits without replaying them"
	interactiveFlagNameConstant      = "interactive"
	interactiveFlagShorthandConstant = "i"
	interactiveFlagUsageConstant     = "Prompt before every commit"
	forceFlagNameConstant            = "force"
	forceFlagShorthandConstant       = "f"
	forceFlagUsageConstant           = "Clear previously generated workspace files first"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ServiceProvider constructs a synchronization executor from dependencies.
type ServiceProvider func(dependencies ServiceDependencies) (SyncExecutor, error)

// SyncExecutor runs the synchronization workflow.
type SyncExecutor interface {
	Execute(executionContext context.Context, options SyncOptions) (SyncResult, error)
}

// CommandBuilder assembles the sync Cobra command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	Executor                     GitExecutor
	WorkingDirectory             string
	Prompter                     CommitPrompter
	ServiceProvider              ServiceProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// GitExecutor matches the execution dependency of the repository manager.
type GitExecutor = gitrepo.GitExecutor

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.ExactArgs(1),
		RunE:          builder.runSync,
	}

	command.Flags().StringP(upstreamFlagNameConstant, upstreamFlagShorthandConstant, "", upstreamFlagUsageConstant)
	command.Flags().Bool(noCherryPickFlagNameConstant, false, noCherryPickFlagUsageConstant)
	command.Flags().BoolP(interactiveFlagNameConstant, interactiveFlagShorthandConstant, false, interactiveFlagUsageConstant)
	command.Flags().BoolP(forceFlagNameConstant, forceFlagShorthandConstant, false, forceFlagUsageConstant)

	if markError := command.MarkFlagRequired(upstreamFlagNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CommandBuilder) runSync(command *cobra.Command, arguments []string) error {
	options, interactive, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(executor)
	if managerError != nil {
		return managerError
	}

	prompter := builder.resolvePrompter(command, interactive)

	service, serviceError := builder.resolveService(ServiceDependencies{
		Logger:     logger,
		Repository: repositoryManager,
		Prompter:   prompter,
		Output:     command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, executionError := service.Execute(command.Context(), options)
	return executionError
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (SyncOptions, bool, error) {
	configuration := builder.resolveConfiguration()

	downstream, downstreamError := ParseRepositoryReference(arguments[0])
	if downstreamError != nil {
		return SyncOptions{}, false, downstreamError
	}

	upstreamArgument, _ := command.Flags().GetString(upstreamFlagNameConstant)
	upstream, upstreamError := ParseRepositoryReference(upstreamArgument)
	if upstreamError != nil {
		return SyncOptions{}, false, upstreamError
	}

	disableCherryPick := configuration.DisableCherryPick
	if command.Flags().Changed(noCherryPickFlagNameConstant) {
		disableCherryPick, _ = command.Flags().GetBool(noCherryPickFlagNameConstant)
	}

	interactive := configuration.Interactive
	if command.Flags().Changed(interactiveFlagNameConstant) {
		interactive, _ = command.Flags().GetBool(interactiveFlagNameConstant)
	}

	forceClean, _ := command.Flags().GetBool(forceFlagNameConstant)

	repositoryPath := builder.WorkingDirectory
	if len(repositoryPath) == 0 {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return SyncOptions{}, false, workingDirectoryError
		}
		repositoryPath = currentDirectory
	}

	options := SyncOptions{
		RepositoryPath:     repositoryPath,
		Downstream:         downstream,
		Upstream:           upstream,
		RemoteName:         configuration.RemoteName,
		WorkspaceDirectory: configuration.WorkspaceDirectory,
		ReplayEnabled:      !disableCherryPick,
		ForceClean:         forceClean,
	}

	return options, interactive, nil
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

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (GitExecutor, error) {
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

func (builder *CommandBuilder) resolvePrompter(command *cobra.Command, interactive bool) CommitPrompter {
	if builder.Prompter != nil {
		return builder.Prompter
	}
	if interactive {
		return NewTerminalPrompter(command.InOrStdin(), command.OutOrStdout())
	}
	return NewAutomaticPrompter()
}

func (builder *CommandBuilder) resolveService(dependencies ServiceDependencies) (SyncExecutor, error) {
	if builder.ServiceProvider != nil {
		return builder.ServiceProvider(dependencies)
	}
	return NewService(dependencies)
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}
