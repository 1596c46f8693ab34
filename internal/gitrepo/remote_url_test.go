package gitrepo_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelworks/forksync/internal/gitrepo"
)

const (
	sshRemoteTestCaseNameConstant           = "ssh_remote"
	sshProtocolRemoteTestCaseNameConstant   = "ssh_protocol_remote"
	httpsRemoteTestCaseNameConstant         = "https_remote"
	httpsWithoutSuffixTestCaseNameConstant  = "https_without_suffix"
	emptyRemoteTestCaseNameConstant         = "empty_remote"
	unparseableRemoteTestCaseNameConstant   = "unparseable_remote"
	missingRepositoryTestCaseNameConstant   = "missing_repository"
	formatSSHTestCaseNameConstant           = "format_ssh"
	formatHTTPSTestCaseNameConstant         = "format_https"
	formatUnknownProtocolTestCaseConstant   = "format_unknown_protocol"
	formatMissingOwnerTestCaseNameConstant  = "format_missing_owner"
	matchingReferenceTestCaseNameConstant   = "matching_reference"
	caseInsensitiveMatchTestCaseConstant    = "case_insensitive_match"
	mismatchedReferenceTestCaseNameConstant = "mismatched_reference"
)

func TestParseRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      gitrepo.RemoteURL
		expectFailure bool
	}{
		{
			name:     sshRemoteTestCaseNameConstant,
			input:    "git@github.com:origin-org/project.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "origin-org", Repository: "project"},
		},
		{
			name:     sshProtocolRemoteTestCaseNameConstant,
			input:    "ssh://git@github.com/origin-org/project.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "origin-org", Repository: "project"},
		},
		{
			name:     httpsRemoteTestCaseNameConstant,
			input:    "https://github.com/origin-org/project.git",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "origin-org", Repository: "project"},
		},
		{
			name:     httpsWithoutSuffixTestCaseNameConstant,
			input:    "https://github.com/origin-org/project",
			expected: gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "origin-org", Repository: "project"},
		},
		{
			name:          emptyRemoteTestCaseNameConstant,
			input:         "   ",
			expectFailure: true,
		},
		{
			name:          unparseableRemoteTestCaseNameConstant,
			input:         "ftp://github.com/origin-org/project",
			expectFailure: true,
		},
		{
			name:          missingRepositoryTestCaseNameConstant,
			input:         "https://github.com/origin-org",
			expectFailure: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			parsedRemote, parseError := gitrepo.ParseRemoteURL(testCase.input)
			if testCase.expectFailure {
				require.Error(subtest, parseError)
				return
			}
			require.NoError(subtest, parseError)
			require.Equal(subtest, testCase.expected, parsedRemote)
		})
	}
}

func TestFormatRemoteURL(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         gitrepo.RemoteURL
		expected      string
		expectFailure bool
	}{
		{
			name:     formatSSHTestCaseNameConstant,
			input:    gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolSSH, Host: "github.com", Owner: "origin-org", Repository: "project"},
			expected: "git@github.com:origin-org/project.git",
		},
		{
			name:     formatHTTPSTestCaseNameConstant,
			input:    gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "origin-org", Repository: "project"},
			expected: "https://github.com/origin-org/project.git",
		},
		{
			name:          formatUnknownProtocolTestCaseConstant,
			input:         gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocol("svn"), Host: "github.com", Owner: "origin-org", Repository: "project"},
			expectFailure: true,
		},
		{
			name:          formatMissingOwnerTestCaseNameConstant,
			input:         gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Repository: "project"},
			expectFailure: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			formattedRemote, formatError := gitrepo.FormatRemoteURL(testCase.input)
			if testCase.expectFailure {
				require.Error(subtest, formatError)
				return
			}
			require.NoError(subtest, formatError)
			require.Equal(subtest, testCase.expected, formattedRemote)
		})
	}
}

func TestBuildHostedRemoteURL(testInstance *testing.T) {
	remoteURL, buildError := gitrepo.BuildHostedRemoteURL("origin-org", "project")
	require.NoError(testInstance, buildError)
	require.Equal(testInstance, "https://github.com/origin-org/project.git", remoteURL)
}

func TestRemoteURLReferences(testInstance *testing.T) {
	parsedRemote := gitrepo.RemoteURL{Protocol: gitrepo.RemoteProtocolHTTPS, Host: "github.com", Owner: "origin-org", Repository: "project"}

	testCases := []struct {
		name       string
		owner      string
		repository string
		expected   bool
	}{
		{name: matchingReferenceTestCaseNameConstant, owner: "origin-org", repository: "project", expected: true},
		{name: caseInsensitiveMatchTestCaseConstant, owner: "Origin-Org", repository: "Project", expected: true},
		{name: mismatchedReferenceTestCaseNameConstant, owner: "origin-org", repository: "other", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			require.Equal(subtest, testCase.expected, parsedRemote.References(testCase.owner, testCase.repository))
		})
	}
}
