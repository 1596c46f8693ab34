package sync

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/kestrelworks/forksync/internal/gitrepo"
)

const (
	downstreamRemoteNameConstant                  = "origin"
	repositoryMissingMessageConstant              = "git repository not configured"
	prompterMissingMessageConstant                = "commit prompter not configured"
	branchMissingMessageTemplateConstant          = "branch %s not found under remote %s; fetch the remote or check the triple"
	remoteMismatchMessageTemplateConstant         = "remote %s points at %s, expected %s"
	remoteURLParseFailedMessageTemplateConstant   = "remote %s has an unparseable url %q"
	missingCountsMessageTemplateConstant          = "%d upstream commits missing downstream, %d downstream commits unknown upstream\n"
	upToDateMessageTemplateConstant               = "Branch %s is up to date with %s.\n"
	replayDisabledHeaderMessageConstant           = "Commits to replay, oldest first:\n"
	replayListEntryTemplateConstant               = "%s\n"
	synchronizationStartedMessageConstant         = "Starting synchronization"
	commitLogsComparedMessageConstant             = "Commit logs compared"
	logFieldDownstreamConstant                    = "downstream"
	logFieldUpstreamConstant                      = "upstream"
	logFieldWorkspaceConstant                     = "workspace"
	logFieldUpstreamCommitCountConstant           = "upstream_commits"
	logFieldDownstreamEntryCountConstant          = "downstream_entries"
	logFieldMissingDownstreamCountConstant        = "missing_downstream"
	logFieldMissingUpstreamCountConstant          = "missing_upstream"
	headReferenceConstant                         = "HEAD"
	remoteTrackingReferenceTemplateConstant       = "refs/remotes/%s/%s"
	downstreamOwnerFieldNameConstant              = "downstream owner"
	downstreamNameFieldNameConstant               = "downstream repository"
	downstreamBranchFieldNameConstant             = "downstream branch"
	upstreamOwnerFieldNameConstant                = "upstream owner"
	upstreamNameFieldNameConstant                 = "upstream repository"
	upstreamBranchFieldNameConstant               = "upstream branch"
	referenceFieldRequiredMessageTemplateConstant = "%s must not be empty"
)

// GitRepository captures the repository operations the orchestrator performs.
type GitRepository interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error)
	AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
	FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error
	RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error)
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	ListCommitIdentifiers(executionContext context.Context, repositoryPath string, reference string) ([]string, error)
	ListCommitRecords(executionContext context.Context, repositoryPath string, reference string) ([]gitrepo.CommitRecord, error)
	HeadCommitMessage(executionContext context.Context, repositoryPath string) (string, error)
	CommitSubject(executionContext context.Context, repositoryPath string, commitIdentifier string) (string, error)
	CherryPick(executionContext context.Context, repositoryPath string, commitIdentifier string) error
	AbortCherryPick(executionContext context.Context, repositoryPath string) error
	AmendCommitMessage(executionContext context.Context, repositoryPath string, commitMessage string) error
	CreateEmptyCommit(executionContext context.Context, repositoryPath string, commitMessage string) error
}

// ServiceDependencies describes required collaborators for synchronization.
type ServiceDependencies struct {
	Logger     *zap.Logger
	Repository GitRepository
	Prompter   CommitPrompter
	Output     io.Writer
}

// SyncOptions configures one synchronization run.
type SyncOptions struct {
	RepositoryPath     string
	Downstream         RepositoryReference
	Upstream           RepositoryReference
	RemoteName         string
	WorkspaceDirectory string
	ReplayEnabled      bool
	ForceClean         bool
}

// SyncResult captures the observable outcomes of a run.
type SyncResult struct {
	MissingDownstream []string
	MissingUpstream   []string
	AppliedCommits    []string
	SkippedCommits    []string
	DeferredCommits   []string
}

// Service orchestrates upstream to downstream synchronization.
type Service struct {
	logger     *zap.Logger
	repository GitRepository
	prompter   CommitPrompter
	output     io.Writer
}

// NewService constructs a Service with the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.Repository == nil {
		return nil, ConfigurationError{Message: repositoryMissingMessageConstant}
	}
	if dependencies.Prompter == nil {
		return nil, ConfigurationError{Message: prompterMissingMessageConstant}
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
		prompter:   dependencies.Prompter,
		output:     output,
	}, nil
}

// Execute performs the synchronization workflow.
func (service *Service) Execute(executionContext context.Context, options SyncOptions) (SyncResult, error) {
	if validationError := validateSyncOptions(options); validationError != nil {
		return SyncResult{}, validationError
	}

	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = options.Upstream.Owner
	}
	options.RemoteName = remoteName

	workspace := NewWorkspace(options.WorkspaceDirectory)
	if workspaceError := workspace.EnsureExists(); workspaceError != nil {
		return SyncResult{}, workspaceError
	}
	if options.ForceClean {
		if clearError := workspace.ClearGeneratedFiles(options.Downstream.Name); clearError != nil {
			return SyncResult{}, clearError
		}
	}

	service.logger.Info(
		synchronizationStartedMessageConstant,
		zap.String(logFieldDownstreamConstant, options.Downstream.String()),
		zap.String(logFieldUpstreamConstant, options.Upstream.String()),
		zap.String(logFieldWorkspaceConstant, workspace.RootDirectory()),
	)

	if remoteError := service.ensureUpstreamRemote(executionContext, options, remoteName); remoteError != nil {
		return SyncResult{}, remoteError
	}
	if fetchError := service.repository.FetchRemote(executionContext, options.RepositoryPath, remoteName); fetchError != nil {
		return SyncResult{}, fetchError
	}
	if branchError := service.verifyRemoteBranch(executionContext, options.RepositoryPath, downstreamRemoteNameConstant, options.Downstream.Branch); branchError != nil {
		return SyncResult{}, branchError
	}
	if branchError := service.verifyRemoteBranch(executionContext, options.RepositoryPath, remoteName, options.Upstream.Branch); branchError != nil {
		return SyncResult{}, branchError
	}
	if checkoutError := service.repository.CheckoutBranch(executionContext, options.RepositoryPath, options.Downstream.Branch); checkoutError != nil {
		return SyncResult{}, checkoutError
	}

	upstreamReference := fmt.Sprintf(remoteTrackingReferenceTemplateConstant, remoteName, options.Upstream.Branch)
	upstreamIdentifiers, upstreamError := service.repository.ListCommitIdentifiers(executionContext, options.RepositoryPath, upstreamReference)
	if upstreamError != nil {
		return SyncResult{}, upstreamError
	}
	if writeError := workspace.WriteIdentifierFile(workspace.UpstreamLogPath(options.Downstream.Name), upstreamIdentifiers); writeError != nil {
		return SyncResult{}, writeError
	}

	downstreamEntries, downstreamError := service.collectDownstreamEntries(executionContext, options)
	if downstreamError != nil {
		return SyncResult{}, downstreamError
	}
	if writeError := workspace.WriteIdentifierFile(workspace.DownstreamLogPath(options.Downstream.Name), downstreamEntries); writeError != nil {
		return SyncResult{}, writeError
	}

	missingDownstream := ComputeMissingIdentifiers(upstreamIdentifiers, downstreamEntries)
	missingUpstream := ComputeMissingIdentifiers(downstreamEntries, upstreamIdentifiers)
	if writeError := workspace.WriteIdentifierFile(workspace.MissingDownstreamPath(), missingDownstream); writeError != nil {
		return SyncResult{}, writeError
	}
	if writeError := workspace.WriteIdentifierFile(workspace.MissingUpstreamPath(), missingUpstream); writeError != nil {
		return SyncResult{}, writeError
	}

	service.logger.Info(
		commitLogsComparedMessageConstant,
		zap.Int(logFieldUpstreamCommitCountConstant, len(upstreamIdentifiers)),
		zap.Int(logFieldDownstreamEntryCountConstant, len(downstreamEntries)),
		zap.Int(logFieldMissingDownstreamCountConstant, len(missingDownstream)),
		zap.Int(logFieldMissingUpstreamCountConstant, len(missingUpstream)),
	)
	fmt.Fprintf(service.output, missingCountsMessageTemplateConstant, len(missingDownstream), len(missingUpstream))

	result := SyncResult{MissingDownstream: missingDownstream, MissingUpstream: missingUpstream}

	if len(missingDownstream) == 0 {
		fmt.Fprintf(service.output, upToDateMessageTemplateConstant, options.Downstream.String(), options.Upstream.String())
		return result, nil
	}

	replayOrder := reverseIdentifiers(missingDownstream)

	if !options.ReplayEnabled {
		fmt.Fprint(service.output, replayDisabledHeaderMessageConstant)
		for _, commitIdentifier := range replayOrder {
			fmt.Fprintf(service.output, replayListEntryTemplateConstant, commitIdentifier)
		}
		return result, nil
	}

	for _, commitIdentifier := range replayOrder {
		if replayError := service.replayCommit(executionContext, options, &result, commitIdentifier); replayError != nil {
			return result, replayError
		}
	}

	return result, nil
}

func (service *Service) ensureUpstreamRemote(executionContext context.Context, options SyncOptions, remoteName string) error {
	remoteURL, remotePresent, lookupError := service.repository.GetRemoteURL(executionContext, options.RepositoryPath, remoteName)
	if lookupError != nil {
		return lookupError
	}

	if remotePresent {
		parsedRemote, parseError := gitrepo.ParseRemoteURL(remoteURL)
		if parseError != nil {
			return PreconditionError{Message: fmt.Sprintf(remoteURLParseFailedMessageTemplateConstant, remoteName, remoteURL)}
		}
		if !parsedRemote.References(options.Upstream.Owner, options.Upstream.Name) {
			return PreconditionError{Message: fmt.Sprintf(remoteMismatchMessageTemplateConstant, remoteName, remoteURL, options.Upstream.Slug())}
		}
		return nil
	}

	upstreamRemoteURL, buildError := gitrepo.BuildHostedRemoteURL(options.Upstream.Owner, options.Upstream.Name)
	if buildError != nil {
		return buildError
	}
	return service.repository.AddRemote(executionContext, options.RepositoryPath, remoteName, upstreamRemoteURL)
}

func (service *Service) verifyRemoteBranch(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	branchExists, lookupError := service.repository.RemoteBranchExists(executionContext, repositoryPath, remoteName, branchName)
	if lookupError != nil {
		return lookupError
	}
	if !branchExists {
		return PreconditionError{Message: fmt.Sprintf(branchMissingMessageTemplateConstant, branchName, remoteName)}
	}
	return nil
}

// collectDownstreamEntries walks the downstream history translating annotated
// commits into the upstream identifiers they originated from.
func (service *Service) collectDownstreamEntries(executionContext context.Context, options SyncOptions) ([]string, error) {
	commitRecords, listError := service.repository.ListCommitRecords(executionContext, options.RepositoryPath, headReferenceConstant)
	if listError != nil {
		return nil, listError
	}

	downstreamEntries := []string{}
	for _, commitRecord := range commitRecords {
		annotatedIdentifiers := ExtractAnnotatedIdentifiers(commitRecord.Message, options.Upstream)
		if len(annotatedIdentifiers) == 0 {
			downstreamEntries = append(downstreamEntries, commitRecord.Identifier)
			continue
		}
		downstreamEntries = append(downstreamEntries, annotatedIdentifiers...)
	}
	return downstreamEntries, nil
}

func validateSyncOptions(options SyncOptions) error {
	referenceFields := []struct {
		fieldName  string
		fieldValue string
	}{
		{fieldName: downstreamOwnerFieldNameConstant, fieldValue: options.Downstream.Owner},
		{fieldName: downstreamNameFieldNameConstant, fieldValue: options.Downstream.Name},
		{fieldName: downstreamBranchFieldNameConstant, fieldValue: options.Downstream.Branch},
		{fieldName: upstreamOwnerFieldNameConstant, fieldValue: options.Upstream.Owner},
		{fieldName: upstreamNameFieldNameConstant, fieldValue: options.Upstream.Name},
		{fieldName: upstreamBranchFieldNameConstant, fieldValue: options.Upstream.Branch},
	}
	for _, referenceField := range referenceFields {
		if len(strings.TrimSpace(referenceField.fieldValue)) == 0 {
			return ConfigurationError{Message: fmt.Sprintf(referenceFieldRequiredMessageTemplateConstant, referenceField.fieldName)}
		}
	}
	return nil
}

func reverseIdentifiers(identifiers []string) []string {
	reversed := make([]string, 0, len(identifiers))
	for identifierIndex := len(identifiers) - 1; identifierIndex >= 0; identifierIndex-- {
		reversed = append(reversed, identifiers[identifierIndex])
	}
	return reversed
}
