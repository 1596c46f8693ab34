package sync

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kestrelworks/forksync/internal/utils"
)

// PromptChoice enumerates the replay actions offered for a missing commit.
type PromptChoice int

// Replay actions.
const (
	PromptChoiceCherryPick PromptChoice = iota
	PromptChoiceSkip
	PromptChoiceDefer
	PromptChoiceQuit
)

// ConflictChoice enumerates the recovery actions offered after a cherry-pick conflict.
type ConflictChoice int

// Conflict recovery actions.
const (
	ConflictChoiceManualFix ConflictChoice = iota
	ConflictChoiceAbortSkip
	ConflictChoiceAbortDefer
)

// CommitPrompter selects replay actions for commits offered during synchronization.
type CommitPrompter interface {
	SelectCommitAction(commitIdentifier string, commitSubject string) (PromptChoice, error)
	SelectConflictAction(commitIdentifier string, commitSubject string) (ConflictChoice, error)
}

const (
	commitPromptTemplateConstant   = "Apply %s %q? [c]herry-pick [s]kip [d]efer [q]uit: "
	conflictPromptTemplateConstant = "Cherry-pick of %s %q stopped on conflicts. [s]kip [d]efer [m]anual fix: "
	cherryPickKeyConstant          = "c"
	skipKeyConstant                = "s"
	deferKeyConstant               = "d"
	quitKeyConstant                = "q"
	manualFixKeyConstant           = "m"
	promptReadErrorMessageConstant = "prompt input closed"
)

type automaticPrompter struct{}

// NewAutomaticPrompter returns the non-interactive prompter: every commit is
// cherry-picked and every conflict escalates to manual resolution.
func NewAutomaticPrompter() CommitPrompter {
	return automaticPrompter{}
}

func (automaticPrompter) SelectCommitAction(string, string) (PromptChoice, error) {
	return PromptChoiceCherryPick, nil
}

func (automaticPrompter) SelectConflictAction(string, string) (ConflictChoice, error) {
	return ConflictChoiceManualFix, nil
}

type terminalPrompter struct {
	input  *bufio.Reader
	output io.Writer
}

// NewTerminalPrompter returns a prompter that shows each commit on the output
// writer and reads a single-character choice per line from the input reader.
func NewTerminalPrompter(input io.Reader, output io.Writer) CommitPrompter {
	return &terminalPrompter{
		input:  bufio.NewReader(input),
		output: utils.NewFlushingWriter(output),
	}
}

func (prompter *terminalPrompter) SelectCommitAction(commitIdentifier string, commitSubject string) (PromptChoice, error) {
	for {
		fmt.Fprintf(prompter.output, commitPromptTemplateConstant, commitIdentifier, commitSubject)
		pressedKey, readError := prompter.readKey()
		if readError != nil {
			return PromptChoiceQuit, readError
		}
		switch pressedKey {
		case cherryPickKeyConstant:
			return PromptChoiceCherryPick, nil
		case skipKeyConstant:
			return PromptChoiceSkip, nil
		case deferKeyConstant:
			return PromptChoiceDefer, nil
		case quitKeyConstant:
			return PromptChoiceQuit, nil
		}
	}
}

func (prompter *terminalPrompter) SelectConflictAction(commitIdentifier string, commitSubject string) (ConflictChoice, error) {
	for {
		fmt.Fprintf(prompter.output, conflictPromptTemplateConstant, commitIdentifier, commitSubject)
		pressedKey, readError := prompter.readKey()
		if readError != nil {
			return ConflictChoiceManualFix, readError
		}
		switch pressedKey {
		case skipKeyConstant:
			return ConflictChoiceAbortSkip, nil
		case deferKeyConstant:
			return ConflictChoiceAbortDefer, nil
		case manualFixKeyConstant:
			return ConflictChoiceManualFix, nil
		}
	}
}

func (prompter *terminalPrompter) readKey() (string, error) {
	inputLine, readError := prompter.input.ReadString('\n')
	trimmedLine := strings.ToLower(strings.TrimSpace(inputLine))
	if len(trimmedLine) > 0 {
		return trimmedLine[:1], nil
	}
	if readError != nil {
		return "", errors.New(promptReadErrorMessageConstant)
	}
	return "", nil
}
