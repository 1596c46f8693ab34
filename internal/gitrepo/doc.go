// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for verifying branches and remotes, reading
// commit history, and producing cherry-picks and commits, along with RemoteURL
// utilities consumed by the sync service to construct upstream remote URLs.
package gitrepo
