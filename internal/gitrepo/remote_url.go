package gitrepo

import (
	"fmt"
	"strings"
)

const (
	sshProtocolPrefixConstant            = "ssh://"
	sshUserDelimiterConstant             = "@"
	sshPathDelimiterConstant             = ":"
	httpsProtocolPrefixConstant          = "https://"
	gitUserPrefixConstant                = "git@"
	pathSeparatorConstant                = "/"
	gitRepositorySuffixConstant          = ".git"
	defaultRemoteHostConstant            = "github.com"
	remoteURLErrorTemplateConstant       = "%s: %s"
	invalidRemoteURLMessageConstant      = "invalid remote url"
	unsupportedProtocolMessageConstant   = "unsupported remote protocol"
	httpsRemoteURLFormatTemplateConstant = "%s%s%s%s%s%s%s"
	sshRemoteURLFormatTemplateConstant   = "%s%s%s%s%s%s%s"
)

// RemoteProtocol enumerates supported git remote protocols.
type RemoteProtocol string

// Supported remote protocols.
const (
	RemoteProtocolSSH   RemoteProtocol = RemoteProtocol("ssh")
	RemoteProtocolHTTPS RemoteProtocol = RemoteProtocol("https")
)

// RemoteURL represents a structured git remote URL.
type RemoteURL struct {
	Protocol   RemoteProtocol
	Host       string
	Owner      string
	Repository string
}

// References reports whether the remote addresses the provided owner and repository.
func (remote RemoteURL) References(owner string, repository string) bool {
	return strings.EqualFold(remote.Owner, owner) && strings.EqualFold(remote.Repository, repository)
}

// RemoteURLParseError indicates a remote string could not be parsed.
type RemoteURLParseError struct {
	Input   string
	Message string
}

// Error describes the parse failure.
func (parseError RemoteURLParseError) Error() string {
	return fmt.Sprintf(remoteURLErrorTemplateConstant, parseError.Input, parseError.Message)
}

// UnsupportedProtocolError indicates the provided protocol cannot be formatted.
type UnsupportedProtocolError struct {
	Protocol RemoteProtocol
}

// Error describes the unsupported protocol.
func (protocolError UnsupportedProtocolError) Error() string {
	return fmt.Sprintf(remoteURLErrorTemplateConstant, protocolError.Protocol, unsupportedProtocolMessageConstant)
}

// BuildHostedRemoteURL creates the HTTPS remote URL for an owner and repository on the default host.
func BuildHostedRemoteURL(owner string, repository string) (string, error) {
	return FormatRemoteURL(RemoteURL{
		Protocol:   RemoteProtocolHTTPS,
		Host:       defaultRemoteHostConstant,
		Owner:      owner,
		Repository: repository,
	})
}

// ParseRemoteURL converts a textual remote URL into a structured representation.
func ParseRemoteURL(remote string) (RemoteURL, error) {
	trimmedRemote := strings.TrimSpace(remote)
	if len(trimmedRemote) == 0 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: requiredValueMessageConstant}
	}

	switch {
	case strings.HasPrefix(trimmedRemote, sshProtocolPrefixConstant):
		return parseSSHRemote(strings.TrimPrefix(trimmedRemote, sshProtocolPrefixConstant))
	case strings.HasPrefix(trimmedRemote, gitUserPrefixConstant):
		return parseSSHRemote(trimmedRemote)
	case strings.HasPrefix(trimmedRemote, httpsProtocolPrefixConstant):
		return parseHTTPSRemote(strings.TrimPrefix(trimmedRemote, httpsProtocolPrefixConstant))
	default:
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
}

func parseSSHRemote(remote string) (RemoteURL, error) {
	userDelimiterIndex := strings.Index(remote, sshUserDelimiterConstant)
	if userDelimiterIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	hostAndPath := remote[userDelimiterIndex+1:]
	pathDelimiterIndex := strings.IndexAny(hostAndPath, sshPathDelimiterConstant+pathSeparatorConstant)
	if pathDelimiterIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	remoteHost := hostAndPath[:pathDelimiterIndex]
	remotePath := hostAndPath[pathDelimiterIndex+1:]
	owner, repository, parseError := splitOwnerAndRepository(remotePath)
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Protocol: RemoteProtocolSSH, Host: remoteHost, Owner: owner, Repository: repository}, nil
}

func parseHTTPSRemote(remote string) (RemoteURL, error) {
	firstSeparatorIndex := strings.Index(remote, pathSeparatorConstant)
	if firstSeparatorIndex == -1 {
		return RemoteURL{}, RemoteURLParseError{Input: remote, Message: invalidRemoteURLMessageConstant}
	}
	remoteHost := remote[:firstSeparatorIndex]
	owner, repository, parseError := splitOwnerAndRepository(remote[firstSeparatorIndex+1:])
	if parseError != nil {
		return RemoteURL{}, parseError
	}
	return RemoteURL{Protocol: RemoteProtocolHTTPS, Host: remoteHost, Owner: owner, Repository: repository}, nil
}

func splitOwnerAndRepository(remotePath string) (string, string, error) {
	pathSegments := strings.Split(strings.Trim(remotePath, pathSeparatorConstant), pathSeparatorConstant)
	if len(pathSegments) != 2 {
		return "", "", RemoteURLParseError{Input: remotePath, Message: invalidRemoteURLMessageConstant}
	}
	repositoryName := strings.TrimSuffix(pathSegments[1], gitRepositorySuffixConstant)
	if len(pathSegments[0]) == 0 || len(repositoryName) == 0 {
		return "", "", RemoteURLParseError{Input: remotePath, Message: invalidRemoteURLMessageConstant}
	}
	return pathSegments[0], repositoryName, nil
}

// FormatRemoteURL creates a textual remote URL from a structured representation.
func FormatRemoteURL(remote RemoteURL) (string, error) {
	if len(strings.TrimSpace(remote.Host)) == 0 {
		return "", RemoteURLParseError{Input: remote.Host, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remote.Owner)) == 0 {
		return "", RemoteURLParseError{Input: remote.Owner, Message: requiredValueMessageConstant}
	}
	if len(strings.TrimSpace(remote.Repository)) == 0 {
		return "", RemoteURLParseError{Input: remote.Repository, Message: requiredValueMessageConstant}
	}

	switch remote.Protocol {
	case RemoteProtocolSSH:
		return fmt.Sprintf(sshRemoteURLFormatTemplateConstant, gitUserPrefixConstant, remote.Host, sshPathDelimiterConstant, remote.Owner, pathSeparatorConstant, remote.Repository, gitRepositorySuffixConstant), nil
	case RemoteProtocolHTTPS:
		return fmt.Sprintf(httpsRemoteURLFormatTemplateConstant, httpsProtocolPrefixConstant, remote.Host, pathSeparatorConstant, remote.Owner, pathSeparatorConstant, remote.Repository, gitRepositorySuffixConstant), nil
	default:
		return "", UnsupportedProtocolError{Protocol: remote.Protocol}
	}
}
