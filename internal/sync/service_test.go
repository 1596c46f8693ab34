package sync_test

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kestrelworks/forksync/internal/execshell"
	"github.com/kestrelworks/forksync/internal/gitrepo"
	"github.com/kestrelworks/forksync/internal/sync"
)

const (
	repositoryPathConstant     = "/workspace/project"
	downstreamOwnerConstant    = "fork-org"
	downstreamBranchConstant   = "main"
	upstreamBranchConstant     = "main"
	upstreamRemoteURLConstant  = "https://github.com/origin-org/project.git"
	downstreamTrackingConstant = "origin/main"
	upstreamTrackingConstant   = "origin-org/main"
	defaultCommitSubjectPrefix = "subject of "
	annotationPrefixConstant   = "(cherry picked from commit origin-org/project@"
	annotationSuffixConstant   = ")"
)

type fakeRepository struct {
	remoteURLs             map[string]string
	trackedBranches        map[string]bool
	upstreamIdentifiers    []string
	downstreamRecords      []gitrepo.CommitRecord
	commitSubjects         map[string]string
	conflictingIdentifiers map[string]bool

	addedRemotes        map[string]string
	fetchedRemotes      []string
	checkedOutBranches  []string
	appliedIdentifiers  []string
	emptyCommitMessages []string
	amendedMessages     []string
	abortedCherryPicks  int
	headMessage         string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		remoteURLs:             map[string]string{"origin-org": upstreamRemoteURLConstant},
		trackedBranches:        map[string]bool{downstreamTrackingConstant: true, upstreamTrackingConstant: true},
		commitSubjects:         map[string]string{},
		conflictingIdentifiers: map[string]bool{},
		addedRemotes:           map[string]string{},
	}
}

func (repository *fakeRepository) subjectFor(commitIdentifier string) string {
	if subject, subjectKnown := repository.commitSubjects[commitIdentifier]; subjectKnown {
		return subject
	}
	return defaultCommitSubjectPrefix + commitIdentifier
}

func (repository *fakeRepository) GetRemoteURL(_ context.Context, _ string, remoteName string) (string, bool, error) {
	remoteURL, remotePresent := repository.remoteURLs[remoteName]
	return remoteURL, remotePresent, nil
}

func (repository *fakeRepository) AddRemote(_ context.Context, _ string, remoteName string, remoteURL string) error {
	repository.addedRemotes[remoteName] = remoteURL
	return nil
}

func (repository *fakeRepository) FetchRemote(_ context.Context, _ string, remoteName string) error {
	repository.fetchedRemotes = append(repository.fetchedRemotes, remoteName)
	return nil
}

func (repository *fakeRepository) RemoteBranchExists(_ context.Context, _ string, remoteName string, branchName string) (bool, error) {
	return repository.trackedBranches[remoteName+"/"+branchName], nil
}

func (repository *fakeRepository) CheckoutBranch(_ context.Context, _ string, branchName string) error {
	repository.checkedOutBranches = append(repository.checkedOutBranches, branchName)
	return nil
}

func (repository *fakeRepository) ListCommitIdentifiers(_ context.Context, _ string, _ string) ([]string, error) {
	return repository.upstreamIdentifiers, nil
}

func (repository *fakeRepository) ListCommitRecords(_ context.Context, _ string, _ string) ([]gitrepo.CommitRecord, error) {
	return repository.downstreamRecords, nil
}

func (repository *fakeRepository) HeadCommitMessage(_ context.Context, _ string) (string, error) {
	return repository.headMessage, nil
}

func (repository *fakeRepository) CommitSubject(_ context.Context, _ string, commitIdentifier string) (string, error) {
	return repository.subjectFor(commitIdentifier), nil
}

func (repository *fakeRepository) CherryPick(_ context.Context, _ string, commitIdentifier string) error {
	if repository.conflictingIdentifiers[commitIdentifier] {
		return execshell.CommandFailedError{
			Command: execshell.ShellCommand{Name: execshell.CommandGit},
			Result:  execshell.ExecutionResult{ExitCode: 1},
		}
	}
	repository.appliedIdentifiers = append(repository.appliedIdentifiers, commitIdentifier)
	repository.headMessage = repository.subjectFor(commitIdentifier)
	return nil
}

func (repository *fakeRepository) AbortCherryPick(_ context.Context, _ string) error {
	repository.abortedCherryPicks++
	return nil
}

func (repository *fakeRepository) AmendCommitMessage(_ context.Context, _ string, commitMessage string) error {
	repository.amendedMessages = append(repository.amendedMessages, commitMessage)
	repository.headMessage = commitMessage
	return nil
}

func (repository *fakeRepository) CreateEmptyCommit(_ context.Context, _ string, commitMessage string) error {
	repository.emptyCommitMessages = append(repository.emptyCommitMessages, commitMessage)
	return nil
}

type scriptedPrompter struct {
	promptChoices   []sync.PromptChoice
	conflictChoices []sync.ConflictChoice
	promptIndex     int
	conflictIndex   int
}

func (prompter *scriptedPrompter) SelectCommitAction(string, string) (sync.PromptChoice, error) {
	if prompter.promptIndex < len(prompter.promptChoices) {
		choice := prompter.promptChoices[prompter.promptIndex]
		prompter.promptIndex++
		return choice, nil
	}
	return sync.PromptChoiceCherryPick, nil
}

func (prompter *scriptedPrompter) SelectConflictAction(string, string) (sync.ConflictChoice, error) {
	if prompter.conflictIndex < len(prompter.conflictChoices) {
		choice := prompter.conflictChoices[prompter.conflictIndex]
		prompter.conflictIndex++
		return choice, nil
	}
	return sync.ConflictChoiceManualFix, nil
}

func newSyncService(testInstance *testing.T, repository sync.GitRepository, prompter sync.CommitPrompter, output *bytes.Buffer) *sync.Service {
	service, constructionError := sync.NewService(sync.ServiceDependencies{
		Logger:     zap.NewNop(),
		Repository: repository,
		Prompter:   prompter,
		Output:     output,
	})
	require.NoError(testInstance, constructionError)
	return service
}

func syncOptions(testInstance *testing.T) sync.SyncOptions {
	return sync.SyncOptions{
		RepositoryPath:     repositoryPathConstant,
		Downstream:         sync.RepositoryReference{Owner: downstreamOwnerConstant, Name: upstreamRepositoryConstant, Branch: downstreamBranchConstant},
		Upstream:           upstreamReference(),
		WorkspaceDirectory: testInstance.TempDir(),
		ReplayEnabled:      true,
	}
}

func readWorkspaceFile(testInstance *testing.T, filePath string) string {
	fileContent, readError := os.ReadFile(filePath)
	require.NoError(testInstance, readError)
	return string(fileContent)
}

func TestServiceExecuteReplaysMissingCommitsOldestFirst(testInstance *testing.T) {
	firstIdentifier := fullIdentifier("1")
	secondIdentifier := fullIdentifier("2")
	thirdIdentifier := fullIdentifier("3")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{thirdIdentifier, secondIdentifier, firstIdentifier}

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	options := syncOptions(testInstance)
	result, executionError := service.Execute(context.Background(), options)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, []string{firstIdentifier, secondIdentifier, thirdIdentifier}, repository.appliedIdentifiers)
	require.Equal(testInstance, repository.appliedIdentifiers, result.AppliedCommits)
	require.Equal(testInstance, []string{downstreamBranchConstant}, repository.checkedOutBranches)
	require.Equal(testInstance, []string{upstreamOwnerConstant}, repository.fetchedRemotes)

	require.Len(testInstance, repository.amendedMessages, 3)
	for amendIndex, appliedIdentifier := range repository.appliedIdentifiers {
		expectedAnnotation := annotationPrefixConstant + appliedIdentifier + annotationSuffixConstant
		require.Contains(testInstance, repository.amendedMessages[amendIndex], expectedAnnotation)
		require.True(testInstance, strings.HasPrefix(repository.amendedMessages[amendIndex], repository.subjectFor(appliedIdentifier)))
	}

	workspace := sync.NewWorkspace(options.WorkspaceDirectory)
	upstreamLog := readWorkspaceFile(testInstance, workspace.UpstreamLogPath(upstreamRepositoryConstant))
	require.Equal(testInstance, thirdIdentifier+"\n"+secondIdentifier+"\n"+firstIdentifier+"\n", upstreamLog)
	missingDownstream := readWorkspaceFile(testInstance, workspace.MissingDownstreamPath())
	require.Equal(testInstance, thirdIdentifier+"\n"+secondIdentifier+"\n"+firstIdentifier+"\n", missingDownstream)
}

func TestServiceExecuteRecognizesAnnotatedDownstreamCommits(testInstance *testing.T) {
	firstIdentifier := fullIdentifier("1")
	secondIdentifier := fullIdentifier("2")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{secondIdentifier, firstIdentifier}
	repository.downstreamRecords = []gitrepo.CommitRecord{
		{
			Identifier: fullIdentifier("d"),
			Subject:    "squashed updates",
			Message: "squashed updates\n\n" +
				annotationPrefixConstant + firstIdentifier + annotationSuffixConstant + "\n" +
				annotationPrefixConstant + secondIdentifier + annotationSuffixConstant,
		},
	}

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	options := syncOptions(testInstance)
	result, executionError := service.Execute(context.Background(), options)
	require.NoError(testInstance, executionError)

	require.Empty(testInstance, result.MissingDownstream)
	require.Empty(testInstance, repository.appliedIdentifiers)
	require.Contains(testInstance, outputBuffer.String(), "up to date")

	workspace := sync.NewWorkspace(options.WorkspaceDirectory)
	downstreamLog := readWorkspaceFile(testInstance, workspace.DownstreamLogPath(upstreamRepositoryConstant))
	require.Equal(testInstance, firstIdentifier+"\n"+secondIdentifier+"\n", downstreamLog)
}

func TestServiceExecuteListsCommitsWhenReplayDisabled(testInstance *testing.T) {
	firstIdentifier := fullIdentifier("1")
	secondIdentifier := fullIdentifier("2")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{secondIdentifier, firstIdentifier}

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	options := syncOptions(testInstance)
	options.ReplayEnabled = false
	result, executionError := service.Execute(context.Background(), options)
	require.NoError(testInstance, executionError)

	require.Empty(testInstance, repository.appliedIdentifiers)
	require.Equal(testInstance, []string{secondIdentifier, firstIdentifier}, result.MissingDownstream)

	firstPosition := strings.Index(outputBuffer.String(), firstIdentifier)
	secondPosition := strings.Index(outputBuffer.String(), secondIdentifier)
	require.GreaterOrEqual(testInstance, firstPosition, 0)
	require.GreaterOrEqual(testInstance, secondPosition, 0)
	require.Less(testInstance, firstPosition, secondPosition)
}

func TestServiceExecuteSkipCreatesPlaceholderCommit(testInstance *testing.T) {
	commitIdentifier := fullIdentifier("1")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{commitIdentifier}
	repository.commitSubjects[commitIdentifier] = "add parser"

	outputBuffer := &bytes.Buffer{}
	prompter := &scriptedPrompter{promptChoices: []sync.PromptChoice{sync.PromptChoiceSkip}}
	service := newSyncService(testInstance, repository, prompter, outputBuffer)

	result, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.NoError(testInstance, executionError)

	require.Empty(testInstance, repository.appliedIdentifiers)
	require.Equal(testInstance, []string{commitIdentifier}, result.SkippedCommits)
	require.Len(testInstance, repository.emptyCommitMessages, 1)
	expectedMessage := "skipped: add parser\n\n" + annotationPrefixConstant + commitIdentifier + annotationSuffixConstant
	require.Equal(testInstance, expectedMessage, repository.emptyCommitMessages[0])
}

func TestServiceExecuteDeferLeavesCommitUnapplied(testInstance *testing.T) {
	commitIdentifier := fullIdentifier("1")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{commitIdentifier}

	outputBuffer := &bytes.Buffer{}
	prompter := &scriptedPrompter{promptChoices: []sync.PromptChoice{sync.PromptChoiceDefer}}
	service := newSyncService(testInstance, repository, prompter, outputBuffer)

	result, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.NoError(testInstance, executionError)

	require.Empty(testInstance, repository.appliedIdentifiers)
	require.Empty(testInstance, repository.emptyCommitMessages)
	require.Equal(testInstance, []string{commitIdentifier}, result.DeferredCommits)
	require.Contains(testInstance, outputBuffer.String(), "Deferred "+commitIdentifier)
}

func TestServiceExecuteQuitStopsReplay(testInstance *testing.T) {
	firstIdentifier := fullIdentifier("1")
	secondIdentifier := fullIdentifier("2")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{secondIdentifier, firstIdentifier}

	outputBuffer := &bytes.Buffer{}
	prompter := &scriptedPrompter{promptChoices: []sync.PromptChoice{sync.PromptChoiceCherryPick, sync.PromptChoiceQuit}}
	service := newSyncService(testInstance, repository, prompter, outputBuffer)

	result, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.Error(testInstance, executionError)

	var quitError sync.OperatorQuitError
	require.ErrorAs(testInstance, executionError, &quitError)
	require.Equal(testInstance, secondIdentifier, quitError.CommitIdentifier)
	require.Equal(testInstance, 3, quitError.ExitCode())
	require.Equal(testInstance, []string{firstIdentifier}, result.AppliedCommits)
}

func TestServiceExecuteConflictEscalatesToManualFix(testInstance *testing.T) {
	commitIdentifier := fullIdentifier("c")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{commitIdentifier}
	repository.conflictingIdentifiers[commitIdentifier] = true

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	_, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.Error(testInstance, executionError)

	var manualFixError sync.ManualFixRequiredError
	require.ErrorAs(testInstance, executionError, &manualFixError)
	require.Equal(testInstance, commitIdentifier, manualFixError.CommitIdentifier)
	require.Equal(testInstance, 3, manualFixError.ExitCode())

	recipeOutput := outputBuffer.String()
	require.Contains(testInstance, recipeOutput, "git cherry-pick "+commitIdentifier)
	require.Contains(testInstance, recipeOutput, annotationPrefixConstant+commitIdentifier+annotationSuffixConstant)
	require.Zero(testInstance, repository.abortedCherryPicks)
}

func TestServiceExecuteConflictAbortChoices(testInstance *testing.T) {
	testCases := []struct {
		name              string
		conflictChoice    sync.ConflictChoice
		expectSkipCommit  bool
		expectDeferRecord bool
	}{
		{name: "abort_skip", conflictChoice: sync.ConflictChoiceAbortSkip, expectSkipCommit: true},
		{name: "abort_defer", conflictChoice: sync.ConflictChoiceAbortDefer, expectDeferRecord: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			commitIdentifier := fullIdentifier("c")

			repository := newFakeRepository()
			repository.upstreamIdentifiers = []string{commitIdentifier}
			repository.conflictingIdentifiers[commitIdentifier] = true

			outputBuffer := &bytes.Buffer{}
			prompter := &scriptedPrompter{conflictChoices: []sync.ConflictChoice{testCase.conflictChoice}}
			service := newSyncService(subtest, repository, prompter, outputBuffer)

			result, executionError := service.Execute(context.Background(), syncOptions(subtest))
			require.NoError(subtest, executionError)
			require.Equal(subtest, 1, repository.abortedCherryPicks)

			if testCase.expectSkipCommit {
				require.Len(subtest, repository.emptyCommitMessages, 1)
				require.Equal(subtest, []string{commitIdentifier}, result.SkippedCommits)
			}
			if testCase.expectDeferRecord {
				require.Empty(subtest, repository.emptyCommitMessages)
				require.Equal(subtest, []string{commitIdentifier}, result.DeferredCommits)
			}
		})
	}
}

func TestServiceExecuteAddsAbsentUpstreamRemote(testInstance *testing.T) {
	repository := newFakeRepository()
	delete(repository.remoteURLs, upstreamOwnerConstant)

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	_, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, upstreamRemoteURLConstant, repository.addedRemotes[upstreamOwnerConstant])
}

func TestServiceExecuteRejectsMismatchedUpstreamRemote(testInstance *testing.T) {
	repository := newFakeRepository()
	repository.remoteURLs[upstreamOwnerConstant] = "https://github.com/someone-else/project.git"

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	_, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.Error(testInstance, executionError)

	var preconditionError sync.PreconditionError
	require.ErrorAs(testInstance, executionError, &preconditionError)
	require.Equal(testInstance, 2, preconditionError.ExitCode())
	require.Empty(testInstance, repository.fetchedRemotes)
	require.Empty(testInstance, repository.checkedOutBranches)
}

func TestServiceExecuteRequiresTrackedBranches(testInstance *testing.T) {
	repository := newFakeRepository()
	delete(repository.trackedBranches, downstreamTrackingConstant)

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	_, executionError := service.Execute(context.Background(), syncOptions(testInstance))
	require.Error(testInstance, executionError)

	var preconditionError sync.PreconditionError
	require.ErrorAs(testInstance, executionError, &preconditionError)
	require.Empty(testInstance, repository.checkedOutBranches)
}

func TestServiceExecuteRejectsIncompleteReferences(testInstance *testing.T) {
	repository := newFakeRepository()
	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	options := syncOptions(testInstance)
	options.Upstream.Branch = ""
	_, executionError := service.Execute(context.Background(), options)
	require.Error(testInstance, executionError)

	var configurationError sync.ConfigurationError
	require.ErrorAs(testInstance, executionError, &configurationError)
	require.Equal(testInstance, 1, configurationError.ExitCode())
	require.Empty(testInstance, repository.fetchedRemotes)
	require.Empty(testInstance, repository.addedRemotes)
}

func TestServiceExecuteForceCleanReplacesStaleFiles(testInstance *testing.T) {
	firstIdentifier := fullIdentifier("1")

	repository := newFakeRepository()
	repository.upstreamIdentifiers = []string{firstIdentifier}
	repository.downstreamRecords = []gitrepo.CommitRecord{
		{
			Identifier: fullIdentifier("d"),
			Subject:    "add parser",
			Message:    "add parser\n\n" + annotationPrefixConstant + firstIdentifier + annotationSuffixConstant,
		},
	}

	options := syncOptions(testInstance)
	options.ForceClean = true

	workspace := sync.NewWorkspace(options.WorkspaceDirectory)
	require.NoError(testInstance, workspace.EnsureExists())
	require.NoError(testInstance, os.WriteFile(workspace.MissingDownstreamPath(), []byte("stale\n"), 0o644))

	outputBuffer := &bytes.Buffer{}
	service := newSyncService(testInstance, repository, sync.NewAutomaticPrompter(), outputBuffer)

	_, executionError := service.Execute(context.Background(), options)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "", readWorkspaceFile(testInstance, workspace.MissingDownstreamPath()))
}
