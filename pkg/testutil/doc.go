// Package testutil provides the shared fixtures of fuxi's tests.
//
// Key components:
//   - TestEnvironment: isolated HOME, XDG and repository directories on a
//     real temp dir (EnvIsolated) or an afero memory filesystem (EnvMemoryOnly)
//   - FakeGit: an in-memory git.Client with a scriptable remote
//   - RequireGit: skips tests needing the git binary and pins an identity
package testutil
