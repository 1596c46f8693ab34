package vendorrefresh

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kestrelworks/forksync/internal/execshell"
)

const (
	vendorCommitMessageConstant              = "refresh vendored dependencies"
	goModSubcommandConstant                  = "mod"
	goVendorSubcommandConstant               = "vendor"
	goGenerateSubcommandConstant             = "generate"
	repositoryMissingMessageConstant         = "git repository not configured"
	goExecutorMissingMessageConstant         = "go executor not configured"
	sourcePathRequiredMessageConstant        = "source path argument required"
	notRepositoryRootMessageTemplateConstant = "%s is not the repository root (%s); run from the root"
	vendorRefreshStartedMessageConstant      = "Refreshing vendored dependencies"
	vendorCommitCreatedMessageConstant       = "Vendored dependency changes committed"
	vendorTreeUnchangedMessageConstant       = "Vendored dependency tree unchanged"
	committedNoticeConstant                  = "Committed vendored dependency changes.\n"
	unchangedNoticeConstant                  = "Vendored dependencies already up to date; nothing to commit.\n"
	logFieldSourcePathConstant               = "source_path"
	logFieldRepositoryConstant               = "repository"
)

// ConfigurationError reports invalid command input.
type ConfigurationError struct {
	Message string
}

// Error describes the configuration failure.
func (configurationError ConfigurationError) Error() string {
	return configurationError.Message
}

// ExitCode returns the process exit code for configuration failures.
func (configurationError ConfigurationError) ExitCode() int {
	return 1
}

// PreconditionError reports a repository state that prevents the refresh.
type PreconditionError struct {
	Message string
}

// Error describes the precondition failure.
func (preconditionError PreconditionError) Error() string {
	return preconditionError.Message
}

// ExitCode returns the process exit code for precondition failures.
func (preconditionError PreconditionError) ExitCode() int {
	return 2
}

// GitRepository captures the repository operations the refresh performs.
type GitRepository interface {
	TopLevelDirectory(executionContext context.Context, repositoryPath string) (string, error)
	StageAll(executionContext context.Context, repositoryPath string) error
	HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error)
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
}

// GoExecutor runs go toolchain commands.
type GoExecutor interface {
	ExecuteGo(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ServiceDependencies describes required collaborators for the refresh.
type ServiceDependencies struct {
	Logger     *zap.Logger
	Repository GitRepository
	GoExecutor GoExecutor
	Output     io.Writer
}

// RefreshOptions configures one refresh run.
type RefreshOptions struct {
	RepositoryPath string
	SourcePath     string
}

// RefreshResult captures the observable outcome of a run.
type RefreshResult struct {
	CommitCreated bool
}

// Service regenerates the vendored dependency tree and commits changes.
type Service struct {
	logger     *zap.Logger
	repository GitRepository
	goExecutor GoExecutor
	output     io.Writer
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ConfigurationError{Message: repositoryMissingMessageConstant}
	}
	if dependencies.GoExecutor == nil {
		return nil, ConfigurationError{Message: goExecutorMissingMessageConstant}
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	output := dependencies.Output
	if output == nil {
		output = io.Discard
	}

	return &Service{
		logger:     logger,
		repository: dependencies.Repository,
		goExecutor: dependencies.GoExecutor,
		output:     output,
	}, nil
}

// Execute performs the vendor refresh workflow.
func (service *Service) Execute(executionContext context.Context, options RefreshOptions) (RefreshResult, error) {
	sourcePath := strings.TrimSpace(options.SourcePath)
	if len(sourcePath) == 0 {
		return RefreshResult{}, ConfigurationError{Message: sourcePathRequiredMessageConstant}
	}

	topLevelDirectory, topLevelError := service.repository.TopLevelDirectory(executionContext, options.RepositoryPath)
	if topLevelError != nil {
		return RefreshResult{}, topLevelError
	}
	if filepath.Clean(topLevelDirectory) != filepath.Clean(options.RepositoryPath) {
		return RefreshResult{}, PreconditionError{Message: fmt.Sprintf(notRepositoryRootMessageTemplateConstant, options.RepositoryPath, topLevelDirectory)}
	}

	service.logger.Info(
		vendorRefreshStartedMessageConstant,
		zap.String(logFieldRepositoryConstant, options.RepositoryPath),
		zap.String(logFieldSourcePathConstant, sourcePath),
	)

	if _, vendorError := service.goExecutor.ExecuteGo(executionContext, execshell.CommandDetails{
		Arguments:        []string{goModSubcommandConstant, goVendorSubcommandConstant},
		WorkingDirectory: options.RepositoryPath,
	}); vendorError != nil {
		return RefreshResult{}, vendorError
	}

	if _, generateError := service.goExecutor.ExecuteGo(executionContext, execshell.CommandDetails{
		Arguments:        []string{goGenerateSubcommandConstant, sourcePath},
		WorkingDirectory: options.RepositoryPath,
	}); generateError != nil {
		return RefreshResult{}, generateError
	}

	if stageError := service.repository.StageAll(executionContext, options.RepositoryPath); stageError != nil {
		return RefreshResult{}, stageError
	}

	stagedChanges, diffError := service.repository.HasStagedChanges(executionContext, options.RepositoryPath)
	if diffError != nil {
		return RefreshResult{}, diffError
	}
	if !stagedChanges {
		service.logger.Info(vendorTreeUnchangedMessageConstant, zap.String(logFieldRepositoryConstant, options.RepositoryPath))
		fmt.Fprint(service.output, unchangedNoticeConstant)
		return RefreshResult{}, nil
	}

	if commitError := service.repository.CreateCommit(executionContext, options.RepositoryPath, vendorCommitMessageConstant); commitError != nil {
		return RefreshResult{}, commitError
	}

	service.logger.Info(vendorCommitCreatedMessageConstant, zap.String(logFieldRepositoryConstant, options.RepositoryPath))
	fmt.Fprint(service.output, committedNoticeConstant)
	return RefreshResult{CommitCreated: true}, nil
}
