package git

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/logging"
	"github.com/arthur-debert/fuxi/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultNetworkTimeout bounds fetch, pull and push.
const DefaultNetworkTimeout = 2 * time.Minute

const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// CLI implements Client by running the git binary.
type CLI struct {
	dir            string
	binary         string
	networkTimeout time.Duration
	logger         zerolog.Logger
}

// New returns a CLI for the repository at dir. A zero timeout uses
// DefaultNetworkTimeout.
func New(dir string, networkTimeout time.Duration) *CLI {
	if networkTimeout <= 0 {
		networkTimeout = DefaultNetworkTimeout
	}
	return &CLI{
		dir:            dir,
		binary:         "git",
		networkTimeout: networkTimeout,
		logger:         logging.GetLogger("git"),
	}
}

// Available reports whether the git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

func (c *CLI) Dir() string {
	return c.dir
}

// run executes git in the repository and returns trimmed stdout.
func (c *CLI) run(ctx context.Context, args ...string) (string, error) {
	out, err := c.runRaw(ctx, args...)
	return strings.TrimSpace(string(out)), err
}

func (c *CLI) runRaw(ctx context.Context, args ...string) ([]byte, error) {
	logging.LogCommand(c.binary, args)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Dir = c.dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "LC_ALL=C")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		c.logger.Debug().
			Err(err).
			Strs("args", args).
			Str("stderr", stderr.String()).
			Msg("git command failed")
		return stdout.Bytes(), &commandError{
			args:   args,
			stderr: strings.TrimSpace(stderr.String()),
			err:    err,
			ctxErr: ctx.Err(),
		}
	}
	return stdout.Bytes(), nil
}

// commandError carries git's stderr so it reaches the user.
type commandError struct {
	args   []string
	stderr string
	err    error
	ctxErr error
}

func (e *commandError) Error() string {
	if e.stderr != "" {
		return e.stderr
	}
	return e.err.Error()
}

func (e *commandError) Unwrap() error { return e.err }

// wrapLocal classifies failures of commands that do not touch the network.
func wrapLocal(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var execErr *exec.Error
	if stderrors.As(err, &execErr) {
		return errors.Wrap(err, errors.ErrGit, "git is not installed or not on PATH")
	}
	return errors.Wrapf(err, errors.ErrGit, format, args...)
}

// wrapNetwork classifies failures of fetch, pull and push.
func wrapNetwork(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var cmdErr *commandError
	if stderrors.As(err, &cmdErr) && stderrors.Is(cmdErr.ctxErr, context.DeadlineExceeded) {
		return errors.Wrapf(err, errors.ErrNetworkTimeout, format+" (timed out)", args...)
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrapf(err, errors.ErrNetworkTimeout, format+" (timed out)", args...)
	}
	var execErr *exec.Error
	if stderrors.As(err, &execErr) {
		return errors.Wrap(err, errors.ErrGit, "git is not installed or not on PATH")
	}
	return errors.Wrapf(err, errors.ErrNetworkFailure, format, args...)
}

func (c *CLI) withNetworkTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.networkTimeout)
}

func (c *CLI) Init(ctx context.Context) error {
	_, err := c.run(ctx, "init")
	return wrapLocal(err, "git init failed in %s", c.dir)
}

func (c *CLI) IsRepo(ctx context.Context) bool {
	out, err := c.run(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil || out != "true" {
		return false
	}
	top, err := c.run(ctx, "rev-parse", "--show-toplevel")
	return err == nil && samePath(top, c.dir)
}

func (c *CLI) SetBranch(ctx context.Context, branch string) error {
	_, err := c.run(ctx, "symbolic-ref", "HEAD", "refs/heads/"+branch)
	return wrapLocal(err, "cannot switch to branch %s", branch)
}

func (c *CLI) EnsureRemote(ctx context.Context, name, url string) error {
	if url == "" {
		return nil
	}
	current, err := c.run(ctx, "remote", "get-url", name)
	if err != nil {
		_, err = c.run(ctx, "remote", "add", name, url)
		return wrapLocal(err, "cannot add remote %s", name)
	}
	if current == url {
		return nil
	}
	_, err = c.run(ctx, "remote", "set-url", name, url)
	return wrapLocal(err, "cannot update remote %s", name)
}

func (c *CLI) Add(ctx context.Context, paths ...string) error {
	args := []string{"add", "-A"}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	_, err := c.run(ctx, args...)
	return wrapLocal(err, "git add failed")
}

func (c *CLI) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"rm", "-r", "-q", "--cached", "--ignore-unmatch", "--"}, paths...)
	_, err := c.run(ctx, args...)
	return wrapLocal(err, "git rm failed")
}

func (c *CLI) Commit(ctx context.Context, message string) (string, error) {
	if _, err := c.run(ctx, "commit", "-q", "-m", message); err != nil {
		return "", wrapLocal(err, "git commit failed")
	}
	hash, err := c.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", wrapLocal(err, "cannot read new commit")
	}
	return hash, nil
}

func (c *CLI) HasPendingChanges(ctx context.Context) (bool, error) {
	out, err := c.run(ctx, "status", "--porcelain", "--ignore-submodules=all")
	if err != nil {
		return false, wrapLocal(err, "git status failed")
	}
	return out != "", nil
}

func (c *CLI) HasStagedChanges(ctx context.Context) (bool, error) {
	_, err := c.run(ctx, "diff", "--cached", "--quiet", "--ignore-submodules=all")
	if err == nil {
		return false, nil
	}
	if code, ok := exitCode(err); ok && code == 1 {
		return true, nil
	}
	return false, wrapLocal(err, "git diff failed")
}

func (c *CLI) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	_, err := c.run(ctx, "merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	if code, ok := exitCode(err); ok && code == 1 {
		return false, nil
	}
	return false, wrapLocal(err, "cannot compare %s and %s", ancestor, descendant)
}

// exitCode returns the status git exited with, if it ran at all.
func exitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if !stderrors.As(err, &exitErr) {
		return 0, false
	}
	return exitErr.ExitCode(), true
}

func (c *CLI) Push(ctx context.Context, remote, branch string) error {
	ctx, cancel := c.withNetworkTimeout(ctx)
	defer cancel()
	_, err := c.run(ctx, "push", "--set-upstream", remote, branch)
	return wrapNetwork(err, "push to %s failed", remote)
}

func (c *CLI) Fetch(ctx context.Context, remote string) error {
	ctx, cancel := c.withNetworkTimeout(ctx)
	defer cancel()
	_, err := c.run(ctx, "fetch", "--quiet", remote)
	return wrapNetwork(err, "fetch from %s failed", remote)
}

func (c *CLI) Pull(ctx context.Context, remote, branch string) error {
	ctx, cancel := c.withNetworkTimeout(ctx)
	defer cancel()
	_, err := c.run(ctx, "pull", "--quiet", "--no-rebase", "--no-edit", remote, branch)
	return wrapNetwork(err, "pull from %s failed", remote)
}

func (c *CLI) Log(ctx context.Context, all bool) ([]types.Backup, error) {
	args := []string{"log", "--format=%H" + fieldSep + "%ct" + fieldSep + "%s" + recordSep}
	if all {
		refs, err := c.run(ctx, "for-each-ref", "--count=1", "--format=%(refname)")
		if err != nil || refs == "" {
			return nil, wrapLocal(err, "cannot list refs")
		}
		args = append(args, "--all")
	} else {
		if _, ok, err := c.ResolveRef(ctx, "HEAD"); err != nil || !ok {
			return nil, err
		}
		args = append(args, "HEAD")
	}

	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, wrapLocal(err, "git log failed")
	}
	return parseLog(out)
}

func parseLog(out string) ([]types.Backup, error) {
	var backups []types.Backup
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, fieldSep, 3)
		if len(fields) != 3 {
			return nil, errors.Newf(errors.ErrGit, "unexpected git log record %q", record)
		}
		secs, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrGit, "bad commit time in %q", record)
		}
		backups = append(backups, types.Backup{
			Hash:      fields[0],
			Timestamp: time.Unix(secs, 0),
			Message:   fields[2],
		})
	}
	return backups, nil
}

func (c *CLI) ResolveRef(ctx context.Context, ref string) (string, bool, error) {
	out, err := c.run(ctx, "rev-parse", "--verify", "--quiet", ref+"^{commit}")
	if err != nil {
		var cmdErr *commandError
		var exitErr *exec.ExitError
		if stderrors.As(err, &cmdErr) && stderrors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, wrapLocal(err, "cannot resolve %s", ref)
	}
	return out, true, nil
}

func (c *CLI) ListFiles(ctx context.Context, commit, prefix string) ([]FileEntry, error) {
	args := []string{"ls-tree", "-r", "-z", "--full-tree", commit}
	if prefix != "" {
		args = append(args, "--", prefix)
	}
	out, err := c.runRaw(ctx, args...)
	if err != nil {
		return nil, wrapLocal(err, "cannot list files of %s", commit)
	}
	return parseTree(out)
}

// parseTree reads `ls-tree -z` records: "<mode> <type> <object>\t<path>".
func parseTree(out []byte) ([]FileEntry, error) {
	var entries []FileEntry
	for _, record := range strings.Split(string(out), "\x00") {
		if record == "" {
			continue
		}
		meta, path, ok := strings.Cut(record, "\t")
		if !ok {
			return nil, errors.Newf(errors.ErrGit, "unexpected ls-tree record %q", record)
		}
		fields := strings.Fields(meta)
		if len(fields) != 3 {
			return nil, errors.Newf(errors.ErrGit, "unexpected ls-tree record %q", record)
		}
		if fields[1] != "blob" {
			continue
		}
		entries = append(entries, FileEntry{Path: path, Executable: fields[0] == "100755"})
	}
	return entries, nil
}

func (c *CLI) ReadFile(ctx context.Context, commit, path string) ([]byte, error) {
	out, err := c.runRaw(ctx, "cat-file", "blob", fmt.Sprintf("%s:%s", commit, path))
	if err != nil {
		return nil, wrapLocal(err, "cannot read %s at %s", path, commit)
	}
	return out, nil
}
