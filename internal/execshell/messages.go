package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitRevParseSubcommandNameConstant   = "rev-parse"
	gitRemoteSubcommandNameConstant     = "remote"
	gitRemoteAddSubcommandNameConstant  = "add"
	gitFetchSubcommandNameConstant      = "fetch"
	gitCheckoutSubcommandNameConstant   = "checkout"
	gitRevListSubcommandNameConstant    = "rev-list"
	gitLogSubcommandNameConstant        = "log"
	gitCherryPickSubcommandNameConstant = "cherry-pick"
	gitCherryPickAbortFlagConstant      = "--abort"
	gitCommitSubcommandNameConstant     = "commit"
	gitCommitAmendFlagConstant          = "--amend"
	gitCommitAllowEmptyFlagConstant     = "--allow-empty"
	gitAddSubcommandNameConstant        = "add"
	gitDiffSubcommandNameConstant       = "diff"
	goModSubcommandNameConstant         = "mod"
	goVendorSubcommandNameConstant      = "vendor"
	goGenerateSubcommandNameConstant    = "generate"
)

const (
	gitRevisionStartTemplateConstant               = "Resolving %s in %s"
	gitRevisionSuccessTemplateConstant             = "Resolved %s in %s"
	gitRevisionFailureTemplateConstant             = "Failed to resolve %s in %s (exit code %d%s)"
	gitRevisionExecutionFailureTemplateConstant    = "Unable to resolve %s in %s: %s"
	gitRemoteAddStartTemplateConstant              = "Adding remote %s in %s"
	gitRemoteAddSuccessTemplateConstant            = "Added remote %s in %s"
	gitRemoteAddFailureTemplateConstant            = "Failed to add remote %s in %s (exit code %d%s)"
	gitRemoteAddExecutionFailureTemplateConstant   = "Unable to add remote %s in %s: %s"
	gitFetchStartTemplateConstant                  = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant       = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                = "all remotes"
	gitCheckoutStartTemplateConstant               = "Switching %s to %s"
	gitCheckoutSuccessTemplateConstant             = "%s now on %s"
	gitCheckoutFailureTemplateConstant             = "Failed to switch %s to %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant    = "Unable to switch %s to %s: %s"
	gitHistoryStartTemplateConstant                = "Listing history of %s in %s"
	gitHistorySuccessTemplateConstant              = "Listed history of %s in %s"
	gitHistoryFailureTemplateConstant              = "Failed to list history of %s in %s (exit code %d%s)"
	gitHistoryExecutionFailureTemplateConstant     = "Unable to list history of %s in %s: %s"
	gitCherryPickStartTemplateConstant             = "Cherry-picking %s in %s"
	gitCherryPickSuccessTemplateConstant           = "Cherry-picked %s in %s"
	gitCherryPickFailureTemplateConstant           = "Cherry-pick of %s in %s failed (exit code %d%s)"
	gitCherryPickExecutionFailureTemplateConstant  = "Unable to cherry-pick %s in %s: %s"
	gitCherryPickAbortStartTemplateConstant        = "Aborting cherry-pick in %s"
	gitCherryPickAbortSuccessTemplateConstant      = "Aborted cherry-pick in %s"
	gitCherryPickAbortFailureTemplateConstant      = "Failed to abort cherry-pick in %s (exit code %d%s)"
	gitCherryPickAbortExecutionFailureTemplate     = "Unable to abort cherry-pick in %s: %s"
	gitCommitStartTemplateConstant                 = "Creating commit in %s"
	gitCommitSuccessTemplateConstant               = "Created commit in %s"
	gitCommitFailureTemplateConstant               = "Failed to create commit in %s (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant      = "Unable to create commit in %s: %s"
	gitCommitAmendStartTemplateConstant            = "Amending commit in %s"
	gitCommitAmendSuccessTemplateConstant          = "Amended commit in %s"
	gitCommitAmendFailureTemplateConstant          = "Failed to amend commit in %s (exit code %d%s)"
	gitCommitAmendExecutionFailureTemplateConstant = "Unable to amend commit in %s: %s"
	gitCommitEmptyStartTemplateConstant            = "Creating placeholder commit in %s"
	gitCommitEmptySuccessTemplateConstant          = "Created placeholder commit in %s"
	gitCommitEmptyFailureTemplateConstant          = "Failed to create placeholder commit in %s (exit code %d%s)"
	gitCommitEmptyExecutionFailureTemplateConstant = "Unable to create placeholder commit in %s: %s"
	gitAddStartTemplateConstant                    = "Staging %s in %s"
	gitAddSuccessTemplateConstant                  = "Staged %s in %s"
	gitAddFailureTemplateConstant                  = "Failed to stage %s in %s (exit code %d%s)"
	gitAddExecutionFailureTemplateConstant         = "Unable to stage %s in %s: %s"
	gitDiffStartTemplateConstant                   = "Comparing staged changes in %s"
	gitDiffSuccessTemplateConstant                 = "Compared staged changes in %s"
	gitDiffFailureTemplateConstant                 = "Failed to compare staged changes in %s (exit code %d%s)"
	gitDiffExecutionFailureTemplateConstant        = "Unable to compare staged changes in %s: %s"
	goModVendorStartTemplateConstant               = "Vendoring module dependencies in %s"
	goModVendorSuccessTemplateConstant             = "Vendored module dependencies in %s"
	goModVendorFailureTemplateConstant             = "Failed to vendor module dependencies in %s (exit code %d%s)"
	goModVendorExecutionFailureTemplateConstant    = "Unable to vendor module dependencies in %s: %s"
	goGenerateStartTemplateConstant                = "Generating code for %s in %s"
	goGenerateSuccessTemplateConstant              = "Generated code for %s in %s"
	goGenerateFailureTemplateConstant              = "Failed to generate code for %s in %s (exit code %d%s)"
	goGenerateExecutionFailureTemplateConstant     = "Unable to generate code for %s in %s: %s"
	cherryPickReferenceFallbackLabelConstant       = "commit"
	historyReferenceFallbackLabelConstant          = "HEAD"
	checkoutTargetFallbackLabelConstant            = "target"
	generateTargetFallbackLabelConstant            = "packages"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGo:
		return formatter.describeGoMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitRevListSubcommandNameConstant, gitLogSubcommandNameConstant:
		return formatter.describeGitHistoryMessage(command, result, failure, stage)
	case gitCherryPickSubcommandNameConstant:
		return formatter.describeGitCherryPickMessage(command, result, failure, stage)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitAddSubcommandNameConstant:
		return formatter.describeGitAddMessage(command, result, failure, stage)
	case gitDiffSubcommandNameConstant:
		return formatter.describeGitDiffMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	reference := formatter.resolveLastArgument(command.Details.Arguments)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitRevisionStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitRevisionSuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitRevisionFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitRevisionExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if len(arguments) > 1 && strings.TrimSpace(arguments[1]) == gitRemoteAddSubcommandNameConstant {
		remoteName := formatter.ensureValue(formatter.argumentAtIndex(arguments, 2))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitRemoteAddStartTemplateConstant, remoteName, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitRemoteAddSuccessTemplateConstant, remoteName, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitRemoteAddFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitRemoteAddExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(remoteName) == 0 {
		remoteName = gitFetchAllRemotesLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchStartTemplateConstant, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchSuccessTemplateConstant, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchFailureTemplateConstant, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	target := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(target) == 0 {
		target = checkoutTargetFallbackLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, target)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, target)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, target, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, target, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHistoryMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	reference := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
	if len(reference) == 0 {
		reference = historyReferenceFallbackLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitHistoryStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitHistorySuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitHistoryFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitHistoryExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCherryPickMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitCherryPickAbortFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCherryPickAbortStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitCherryPickAbortSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitCherryPickAbortFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCherryPickAbortExecutionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
		}
	}

	reference := formatter.extractFirstNonFlagArgument(arguments[1:])
	if len(reference) == 0 {
		reference = cherryPickReferenceFallbackLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCherryPickStartTemplateConstant, reference, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitCherryPickSuccessTemplateConstant, reference, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitCherryPickFailureTemplateConstant, reference, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCherryPickExecutionFailureTemplateConstant, reference, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	startTemplate := gitCommitStartTemplateConstant
	successTemplate := gitCommitSuccessTemplateConstant
	failureTemplate := gitCommitFailureTemplateConstant
	executionFailureTemplate := gitCommitExecutionFailureTemplateConstant

	switch {
	case containsArgument(arguments, gitCommitAmendFlagConstant):
		startTemplate = gitCommitAmendStartTemplateConstant
		successTemplate = gitCommitAmendSuccessTemplateConstant
		failureTemplate = gitCommitAmendFailureTemplateConstant
		executionFailureTemplate = gitCommitAmendExecutionFailureTemplateConstant
	case containsArgument(arguments, gitCommitAllowEmptyFlagConstant):
		startTemplate = gitCommitEmptyStartTemplateConstant
		successTemplate = gitCommitEmptySuccessTemplateConstant
		failureTemplate = gitCommitEmptyFailureTemplateConstant
		executionFailureTemplate = gitCommitEmptyExecutionFailureTemplateConstant
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitAddMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetPath := formatter.ensureValue(formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]))
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitAddStartTemplateConstant, targetPath, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitAddSuccessTemplateConstant, targetPath, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitAddFailureTemplateConstant, targetPath, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitAddExecutionFailureTemplateConstant, targetPath, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitDiffMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitDiffStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitDiffSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitDiffFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitDiffExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGoMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	subcommand := strings.TrimSpace(command.Details.Arguments[0])

	if subcommand == goModSubcommandNameConstant && containsArgument(command.Details.Arguments, goVendorSubcommandNameConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(goModVendorStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(goModVendorSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(goModVendorFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(goModVendorExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if subcommand == goGenerateSubcommandNameConstant {
		targetPackages := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
		if len(targetPackages) == 0 {
			targetPackages = generateTargetFallbackLabelConstant
		}
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(goGenerateStartTemplateConstant, targetPackages, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(goGenerateSuccessTemplateConstant, targetPackages, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(goGenerateFailureTemplateConstant, targetPackages, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(goGenerateExecutionFailureTemplateConstant, targetPackages, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) resolveLastArgument(arguments []string) string {
	if len(arguments) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	lastArgument := strings.TrimSpace(arguments[len(arguments)-1])
	if len(lastArgument) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return lastArgument
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
