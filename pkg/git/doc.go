// Package git is fuxi's adapter over the git command line. Client is the
// narrow set of operations the engines need; CLI implements it by running
// the git binary in the backup repository. Network operations (fetch,
// pull, push) run under a timeout and fail with ErrNetworkTimeout or
// ErrNetworkFailure. Everything else fails with ErrGit.
package git
