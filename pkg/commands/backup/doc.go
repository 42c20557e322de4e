// Package backup mirrors the tracked paths of the active profile into the
// backup repository and records the result as a commit.
//
// Files are overwritten in place. Directories are copied additively: a
// file that disappears from a tracked directory stays in the repository
// unless Prune is set. Untracking a path never deletes its stored copy;
// that takes an explicit `fuxi path remove --purge`.
package backup
