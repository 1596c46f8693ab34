package sync

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultWorkspaceDirectoryNameConstant = "forksync"
	upstreamLogFileTemplateConstant       = "%s-upstream.log"
	downstreamLogFileTemplateConstant     = "%s-downstream.log"
	missingDownstreamFileNameConstant     = "missing-downstream"
	missingUpstreamFileNameConstant       = "missing-upstream"
	identifierLineSeparatorConstant       = "\n"
	workspaceDirectoryPermissionsConstant = 0o755
	workspaceFilePermissionsConstant      = 0o644
)

// Workspace locates the ephemeral files a synchronization run produces.
type Workspace struct {
	rootDirectory string
}

// NewWorkspace constructs a workspace rooted at the provided directory,
// defaulting to a forksync directory under the system temporary directory.
func NewWorkspace(rootDirectory string) Workspace {
	trimmedRoot := strings.TrimSpace(rootDirectory)
	if len(trimmedRoot) == 0 {
		trimmedRoot = filepath.Join(os.TempDir(), defaultWorkspaceDirectoryNameConstant)
	}
	return Workspace{rootDirectory: trimmedRoot}
}

// RootDirectory returns the workspace root.
func (workspace Workspace) RootDirectory() string {
	return workspace.rootDirectory
}

// EnsureExists creates the workspace directory when absent.
func (workspace Workspace) EnsureExists() error {
	return os.MkdirAll(workspace.rootDirectory, workspaceDirectoryPermissionsConstant)
}

// UpstreamLogPath returns the upstream commit log path for the repository.
func (workspace Workspace) UpstreamLogPath(repositoryName string) string {
	return filepath.Join(workspace.rootDirectory, fmt.Sprintf(upstreamLogFileTemplateConstant, repositoryName))
}

// DownstreamLogPath returns the downstream commit log path for the repository.
func (workspace Workspace) DownstreamLogPath(repositoryName string) string {
	return filepath.Join(workspace.rootDirectory, fmt.Sprintf(downstreamLogFileTemplateConstant, repositoryName))
}

// MissingDownstreamPath returns the missing-downstream set file path.
func (workspace Workspace) MissingDownstreamPath() string {
	return filepath.Join(workspace.rootDirectory, missingDownstreamFileNameConstant)
}

// MissingUpstreamPath returns the missing-upstream set file path.
func (workspace Workspace) MissingUpstreamPath() string {
	return filepath.Join(workspace.rootDirectory, missingUpstreamFileNameConstant)
}

// WriteIdentifierFile persists identifiers as a newline-delimited file.
func (workspace Workspace) WriteIdentifierFile(filePath string, identifiers []string) error {
	fileContent := strings.Join(identifiers, identifierLineSeparatorConstant)
	if len(identifiers) > 0 {
		fileContent += identifierLineSeparatorConstant
	}
	return os.WriteFile(filePath, []byte(fileContent), workspaceFilePermissionsConstant)
}

// ClearGeneratedFiles removes files produced by a previous run for the repository.
func (workspace Workspace) ClearGeneratedFiles(repositoryName string) error {
	generatedFilePaths := []string{
		workspace.UpstreamLogPath(repositoryName),
		workspace.DownstreamLogPath(repositoryName),
		workspace.MissingDownstreamPath(),
		workspace.MissingUpstreamPath(),
	}
	for _, generatedFilePath := range generatedFilePaths {
		removalError := os.Remove(generatedFilePath)
		if removalError != nil && !errors.Is(removalError, fs.ErrNotExist) {
			return removalError
		}
	}
	return nil
}
