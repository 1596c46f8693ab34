// Package cli assembles the forksync command-line application: the Cobra root
// command, configuration loading with environment overrides, and structured
// logging shared by the sync and vendor subcommands.
package cli
