package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/kestrelworks/forksync/internal/execshell"
)

const (
	requiredValueMessageConstant           = "value required"
	executorNotConfiguredMessageConstant   = "git executor not configured"
	gitRevParseSubcommandConstant          = "rev-parse"
	gitShowTopLevelFlagConstant            = "--show-toplevel"
	gitVerifyFlagConstant                  = "--verify"
	gitQuietFlagConstant                   = "--quiet"
	gitRemoteSubcommandConstant            = "remote"
	gitRemoteGetURLSubcommandConstant      = "get-url"
	gitRemoteAddSubcommandConstant         = "add"
	gitFetchSubcommandConstant             = "fetch"
	gitNoTagsFlagConstant                  = "--no-tags"
	gitCheckoutSubcommandConstant          = "checkout"
	gitRevListSubcommandConstant           = "rev-list"
	gitLogSubcommandConstant               = "log"
	gitMaxCountOneFlagConstant             = "-1"
	gitFormatFlagPrefixConstant            = "--format="
	gitCherryPickSubcommandConstant        = "cherry-pick"
	gitCherryPickAbortFlagConstant         = "--abort"
	gitCommitSubcommandConstant            = "commit"
	gitCommitMessageFlagConstant           = "-m"
	gitCommitAmendFlagConstant             = "--amend"
	gitCommitAllowEmptyFlagConstant        = "--allow-empty"
	gitAddSubcommandConstant               = "add"
	gitAddAllFlagConstant                  = "-A"
	gitDiffSubcommandConstant              = "diff"
	gitDiffCachedFlagConstant              = "--cached"
	remoteTrackingReferencePrefixConstant  = "refs/remotes/"
	referenceSegmentSeparatorConstant      = "/"
	commitSubjectFormatConstant            = "%s"
	commitBodyFormatConstant               = "%B"
	commitRecordFormatConstant             = "%H\x1f%s\x1f%B\x1e"
	commitRecordFieldSeparatorConstant     = "\x1f"
	commitRecordSeparatorConstant          = "\x1e"
	commitRecordExpectedFieldCountConstant = 3
	malformedCommitRecordMessageConstant   = "malformed commit record"
	commitLogLineSeparatorConstant         = "\n"
)

// GitExecutor exposes the subset of shell execution required by repository operations.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommitRecord captures one commit's identifier, subject, and full message body.
type CommitRecord struct {
	Identifier string
	Subject    string
	Message    string
}

// RepositoryManager performs git operations through a shell executor.
type RepositoryManager struct {
	executor GitExecutor
}

var errExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// NewRepositoryManager constructs a RepositoryManager bound to the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, errExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// TopLevelDirectory resolves the root of the repository containing the provided path.
func (manager *RepositoryManager) TopLevelDirectory(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetRemoteURL returns the URL of the named remote and whether the remote is configured.
func (manager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return "", false, nil
		}
		return "", false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), true, nil
}

// AddRemote registers a remote pointing at the provided URL.
func (manager *RepositoryManager) AddRemote(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitRemoteAddSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// FetchRemote refreshes remote-tracking references for the named remote.
func (manager *RepositoryManager) FetchRemote(executionContext context.Context, repositoryPath string, remoteName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitFetchSubcommandConstant, gitNoTagsFlagConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// RemoteBranchExists reports whether the remote-tracking reference for the branch resolves.
func (manager *RepositoryManager) RemoteBranchExists(executionContext context.Context, repositoryPath string, remoteName string, branchName string) (bool, error) {
	trackingReference := remoteTrackingReferencePrefixConstant + remoteName + referenceSegmentSeparatorConstant + branchName
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitVerifyFlagConstant, gitQuietFlagConstant, trackingReference},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return false, nil
		}
		return false, executionError
	}
	return true, nil
}

// CheckoutBranch switches the working tree to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, branchName},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// ListCommitIdentifiers returns the linear history of the reference, newest first, as full-length identifiers.
func (manager *RepositoryManager) ListCommitIdentifiers(executionContext context.Context, repositoryPath string, reference string) ([]string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevListSubcommandConstant, reference},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	identifiers := []string{}
	for _, line := range strings.Split(executionResult.StandardOutput, commitLogLineSeparatorConstant) {
		trimmedLine := strings.TrimSpace(line)
		if len(trimmedLine) == 0 {
			continue
		}
		identifiers = append(identifiers, trimmedLine)
	}
	return identifiers, nil
}

// ListCommitRecords returns the linear history of the reference, newest first, with subjects and message bodies.
func (manager *RepositoryManager) ListCommitRecords(executionContext context.Context, repositoryPath string, reference string) ([]CommitRecord, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitFormatFlagPrefixConstant + commitRecordFormatConstant, reference},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, executionError
	}

	return parseCommitRecords(executionResult.StandardOutput)
}

// HeadCommitMessage returns the full message body of the current branch tip.
func (manager *RepositoryManager) HeadCommitMessage(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitMaxCountOneFlagConstant, gitFormatFlagPrefixConstant + commitBodyFormatConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimRight(executionResult.StandardOutput, commitLogLineSeparatorConstant), nil
}

// CommitSubject returns the subject line of the identified commit.
func (manager *RepositoryManager) CommitSubject(executionContext context.Context, repositoryPath string, commitIdentifier string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitLogSubcommandConstant, gitMaxCountOneFlagConstant, gitFormatFlagPrefixConstant + commitSubjectFormatConstant, commitIdentifier},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// CherryPick applies the identified commit onto the current branch tip.
func (manager *RepositoryManager) CherryPick(executionContext context.Context, repositoryPath string, commitIdentifier string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCherryPickSubcommandConstant, commitIdentifier},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// AbortCherryPick abandons an in-progress cherry-pick.
func (manager *RepositoryManager) AbortCherryPick(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCherryPickSubcommandConstant, gitCherryPickAbortFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// AmendCommitMessage rewrites the message of the current branch tip without touching its tree.
func (manager *RepositoryManager) AmendCommitMessage(executionContext context.Context, repositoryPath string, commitMessage string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitAmendFlagConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// CreateEmptyCommit records a commit with no tree changes carrying the provided message.
func (manager *RepositoryManager) CreateEmptyCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitAllowEmptyFlagConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// CreateCommit records the staged tree with the provided message.
func (manager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCommitSubcommandConstant, gitCommitMessageFlagConstant, commitMessage},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// StageAll stages every working tree change.
func (manager *RepositoryManager) StageAll(executionContext context.Context, repositoryPath string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitAddSubcommandConstant, gitAddAllFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	return executionError
}

// HasStagedChanges reports whether the index differs from the current branch tip.
func (manager *RepositoryManager) HasStagedChanges(executionContext context.Context, repositoryPath string) (bool, error) {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitDiffSubcommandConstant, gitDiffCachedFlagConstant, gitQuietFlagConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return true, nil
		}
		return false, executionError
	}
	return false, nil
}

func parseCommitRecords(commandOutput string) ([]CommitRecord, error) {
	records := []CommitRecord{}
	for _, rawRecord := range strings.Split(commandOutput, commitRecordSeparatorConstant) {
		trimmedRecord := strings.TrimLeft(rawRecord, commitLogLineSeparatorConstant)
		if len(strings.TrimSpace(trimmedRecord)) == 0 {
			continue
		}
		recordFields := strings.SplitN(trimmedRecord, commitRecordFieldSeparatorConstant, commitRecordExpectedFieldCountConstant)
		if len(recordFields) != commitRecordExpectedFieldCountConstant {
			return nil, errors.New(malformedCommitRecordMessageConstant)
		}
		records = append(records, CommitRecord{
			Identifier: strings.TrimSpace(recordFields[0]),
			Subject:    strings.TrimSpace(recordFields[1]),
			Message:    strings.TrimRight(recordFields[2], commitLogLineSeparatorConstant),
		})
	}
	return records, nil
}
