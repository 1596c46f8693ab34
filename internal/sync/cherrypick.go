package sync

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kestrelworks/forksync/internal/execshell"
)

const (
	skippedSubjectPrefixConstant         = "skipped: "
	skipCommitMessageTemplateConstant    = "%s%s\n\n%s"
	annotatedMessageTemplateConstant     = "%s\n\n%s"
	commitAppliedMessageConstant         = "Commit cherry-picked"
	commitSkippedMessageConstant         = "Commit skipped"
	commitDeferredMessageConstant        = "Commit deferred"
	cherryPickConflictMessageConstant    = "Cherry-pick stopped on conflicts"
	logFieldCommitConstant               = "commit"
	deferredNoticeTemplateConstant       = "Deferred %s; it will be offered again on the next run.\n"
	manualRecoveryRecipeTemplateConstant = `Cherry-pick of %[1]s could not be applied cleanly. Resolve it manually:

    git clone https://github.com/%[2]s.git
    cd %[3]s
    git remote add %[4]s https://github.com/%[5]s.git
    git fetch %[4]s
    git checkout %[6]s
    git cherry-pick %[1]s
    # resolve the conflicts, then
    git add -A
    git cherry-pick --continue
    # append the provenance line to the commit message
    git commit --amend -m "$(git log -1 --format=%%B)

%[7]s"
    git push origin %[6]s
`
)

// replayCommit drives one missing commit through the prompt and cherry-pick
// states, recording the outcome on the result.
func (service *Service) replayCommit(executionContext context.Context, options SyncOptions, result *SyncResult, commitIdentifier string) error {
	commitSubject, subjectError := service.repository.CommitSubject(executionContext, options.RepositoryPath, commitIdentifier)
	if subjectError != nil {
		return subjectError
	}

	promptChoice, promptError := service.prompter.SelectCommitAction(commitIdentifier, commitSubject)
	if promptError != nil {
		return promptError
	}

	switch promptChoice {
	case PromptChoiceQuit:
		return OperatorQuitError{CommitIdentifier: commitIdentifier}
	case PromptChoiceDefer:
		return service.deferCommit(result, commitIdentifier)
	case PromptChoiceSkip:
		return service.skipCommit(executionContext, options, result, commitIdentifier, commitSubject)
	default:
		return service.cherryPickCommit(executionContext, options, result, commitIdentifier, commitSubject)
	}
}

func (service *Service) cherryPickCommit(executionContext context.Context, options SyncOptions, result *SyncResult, commitIdentifier string, commitSubject string) error {
	cherryPickError := service.repository.CherryPick(executionContext, options.RepositoryPath, commitIdentifier)
	if cherryPickError == nil {
		if annotateError := service.annotateHeadCommit(executionContext, options, commitIdentifier); annotateError != nil {
			return annotateError
		}
		service.logger.Info(commitAppliedMessageConstant, zap.String(logFieldCommitConstant, commitIdentifier))
		result.AppliedCommits = append(result.AppliedCommits, commitIdentifier)
		return nil
	}

	var commandFailure execshell.CommandFailedError
	if !errors.As(cherryPickError, &commandFailure) {
		return cherryPickError
	}

	service.logger.Warn(cherryPickConflictMessageConstant, zap.String(logFieldCommitConstant, commitIdentifier))

	conflictChoice, promptError := service.prompter.SelectConflictAction(commitIdentifier, commitSubject)
	if promptError != nil {
		return promptError
	}

	switch conflictChoice {
	case ConflictChoiceAbortSkip:
		if abortError := service.repository.AbortCherryPick(executionContext, options.RepositoryPath); abortError != nil {
			return abortError
		}
		return service.skipCommit(executionContext, options, result, commitIdentifier, commitSubject)
	case ConflictChoiceAbortDefer:
		if abortError := service.repository.AbortCherryPick(executionContext, options.RepositoryPath); abortError != nil {
			return abortError
		}
		return service.deferCommit(result, commitIdentifier)
	default:
		service.printManualRecoveryRecipe(options, commitIdentifier)
		return ManualFixRequiredError{CommitIdentifier: commitIdentifier}
	}
}

// annotateHeadCommit amends the freshly created commit so its message keeps
// the original body followed by the provenance annotation.
func (service *Service) annotateHeadCommit(executionContext context.Context, options SyncOptions, commitIdentifier string) error {
	originalMessage, messageError := service.repository.HeadCommitMessage(executionContext, options.RepositoryPath)
	if messageError != nil {
		return messageError
	}
	annotation := FormatProvenanceAnnotation(options.Upstream, commitIdentifier)
	annotatedMessage := fmt.Sprintf(annotatedMessageTemplateConstant, originalMessage, annotation)
	return service.repository.AmendCommitMessage(executionContext, options.RepositoryPath, annotatedMessage)
}

// skipCommit records an empty placeholder commit so later runs treat the
// upstream commit as handled.
func (service *Service) skipCommit(executionContext context.Context, options SyncOptions, result *SyncResult, commitIdentifier string, commitSubject string) error {
	annotation := FormatProvenanceAnnotation(options.Upstream, commitIdentifier)
	skipMessage := fmt.Sprintf(skipCommitMessageTemplateConstant, skippedSubjectPrefixConstant, commitSubject, annotation)
	if commitError := service.repository.CreateEmptyCommit(executionContext, options.RepositoryPath, skipMessage); commitError != nil {
		return commitError
	}
	service.logger.Info(commitSkippedMessageConstant, zap.String(logFieldCommitConstant, commitIdentifier))
	result.SkippedCommits = append(result.SkippedCommits, commitIdentifier)
	return nil
}

func (service *Service) deferCommit(result *SyncResult, commitIdentifier string) error {
	service.logger.Info(commitDeferredMessageConstant, zap.String(logFieldCommitConstant, commitIdentifier))
	fmt.Fprintf(service.output, deferredNoticeTemplateConstant, commitIdentifier)
	result.DeferredCommits = append(result.DeferredCommits, commitIdentifier)
	return nil
}

func (service *Service) printManualRecoveryRecipe(options SyncOptions, commitIdentifier string) {
	annotation := FormatProvenanceAnnotation(options.Upstream, commitIdentifier)
	fmt.Fprintf(
		service.output,
		manualRecoveryRecipeTemplateConstant,
		commitIdentifier,
		options.Downstream.Slug(),
		options.Downstream.Name,
		options.RemoteName,
		options.Upstream.Slug(),
		options.Downstream.Branch,
		annotation,
	)
}
