// Package sync synchronizes a downstream repository branch with commits from
// an upstream repository branch. It computes the upstream commits not yet
// reflected downstream by comparing commit logs, accounting for provenance
// annotations embedded in downstream commit messages, and replays the missing
// commits oldest-first through an interactive or automatic cherry-pick
// procedure.
package sync
