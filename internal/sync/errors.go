package sync

import "fmt"

const (
	configurationExitCodeConstant            = 1
	preconditionExitCodeConstant             = 2
	replayFailureExitCodeConstant            = 3
	operatorQuitMessageTemplateConstant      = "synchronization stopped by operator at commit %s"
	manualFixRequiredMessageTemplateConstant = "manual conflict resolution required for commit %s"
)

// ConfigurationError reports invalid command input detected before any side effect.
type ConfigurationError struct {
	Message string
}

// Error describes the configuration failure.
func (configurationError ConfigurationError) Error() string {
	return configurationError.Message
}

// ExitCode returns the process exit code for configuration failures.
func (configurationError ConfigurationError) ExitCode() int {
	return configurationExitCodeConstant
}

// PreconditionError reports a repository state that prevents synchronization.
type PreconditionError struct {
	Message string
}

// Error describes the precondition failure.
func (preconditionError PreconditionError) Error() string {
	return preconditionError.Message
}

// ExitCode returns the process exit code for precondition failures.
func (preconditionError PreconditionError) ExitCode() int {
	return preconditionExitCodeConstant
}

// OperatorQuitError reports that the operator chose to stop the replay.
type OperatorQuitError struct {
	CommitIdentifier string
}

// Error describes where the replay stopped.
func (quitError OperatorQuitError) Error() string {
	return fmt.Sprintf(operatorQuitMessageTemplateConstant, quitError.CommitIdentifier)
}

// ExitCode returns the process exit code for an operator quit.
func (quitError OperatorQuitError) ExitCode() int {
	return replayFailureExitCodeConstant
}

// ManualFixRequiredError reports an unresolved cherry-pick conflict.
type ManualFixRequiredError struct {
	CommitIdentifier string
}

// Error describes the conflicted commit.
func (manualFixError ManualFixRequiredError) Error() string {
	return fmt.Sprintf(manualFixRequiredMessageTemplateConstant, manualFixError.CommitIdentifier)
}

// ExitCode returns the process exit code for unresolved conflicts.
func (manualFixError ManualFixRequiredError) ExitCode() int {
	return replayFailureExitCodeConstant
}
