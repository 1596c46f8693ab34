package sync

import "strings"

// CommandConfiguration captures persisted configuration for synchronization.
type CommandConfiguration struct {
	WorkspaceDirectory string `mapstructure:"workspace"`
	RemoteName         string `mapstructure:"remote_name"`
	DisableCherryPick  bool   `mapstructure:"no_cherry_pick"`
	Interactive        bool   `mapstructure:"interactive"`
}

// DefaultCommandConfiguration returns baseline configuration values for synchronization.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		WorkspaceDirectory: "",
		RemoteName:         "",
		DisableCherryPick:  false,
		Interactive:        false,
	}
}

const (
	workspaceConfigurationKeySuffixConstant    = ".workspace"
	remoteNameConfigurationKeySuffixConstant   = ".remote_name"
	noCherryPickConfigurationKeySuffixConstant = ".no_cherry_pick"
	interactiveConfigurationKeySuffixConstant  = ".interactive"
)

// DefaultConfigurationValues exposes synchronization defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + workspaceConfigurationKeySuffixConstant:    defaults.WorkspaceDirectory,
		configurationKeyPrefix + remoteNameConfigurationKeySuffixConstant:   defaults.RemoteName,
		configurationKeyPrefix + noCherryPickConfigurationKeySuffixConstant: defaults.DisableCherryPick,
		configurationKeyPrefix + interactiveConfigurationKeySuffixConstant:  defaults.Interactive,
	}
}

// Sanitize trims configured values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WorkspaceDirectory = strings.TrimSpace(configuration.WorkspaceDirectory)
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	return sanitized
}
