// pkg/testutil/fakegit.go
// DEPENDENCIES: filesystem, git, types
// PURPOSE: In-memory git.Client for engine tests

package testutil

import (
	"context"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/filesystem"
	"github.com/arthur-debert/fuxi/pkg/git"
	"github.com/arthur-debert/fuxi/pkg/types"
)

type fakeFile struct {
	data []byte
	exec bool
}

type fakeCommit struct {
	hash    string
	message string
	time    time.Time
	files   map[string]fakeFile
}

// FakeRemote is a remote shared between FakeGit instances.
type FakeRemote struct {
	branches map[string][]*fakeCommit
}

// NewFakeRemote returns an empty remote.
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{branches: make(map[string][]*fakeCommit)}
}

// Tip returns the newest commit hash on branch, or "".
func (r *FakeRemote) Tip(branch string) string {
	history := r.branches[branch]
	if len(history) == 0 {
		return ""
	}
	return history[len(history)-1].hash
}

// FakeGit implements git.Client in memory. The working tree lives on a
// types.FS so engines can write to it as they would on disk.
type FakeGit struct {
	dir    string
	fs     types.FS
	remote *FakeRemote

	initialized bool
	branch      string
	remotes     map[string]string
	history     []*fakeCommit
	tracking    map[string][]*fakeCommit
	staged      map[string]fakeFile
	clock       time.Time

	// NextHashes forces the hashes of upcoming commits, in order.
	NextHashes []string
	// Errors makes the named operation ("push", "fetch", "pull",
	// "commit", "add", "diff") fail with the given error.
	Errors map[string]error
	// Calls records every operation in order.
	Calls []string
}

var _ git.Client = (*FakeGit)(nil)

// NewFakeGit returns an uninitialized repository at dir on fsys.
func NewFakeGit(fsys types.FS, dir string) *FakeGit {
	return &FakeGit{
		dir:      dir,
		fs:       fsys,
		branch:   "main",
		remotes:  make(map[string]string),
		tracking: make(map[string][]*fakeCommit),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Errors:   make(map[string]error),
	}
}

// WithRemote attaches remote as origin.
func (g *FakeGit) WithRemote(remote *FakeRemote) *FakeGit {
	g.remote = remote
	return g
}

// Initialized returns a FakeGit on which Init already ran.
func (g *FakeGit) Initialized() *FakeGit {
	_ = g.Init(context.Background())
	return g
}

func (g *FakeGit) record(op string) error {
	g.Calls = append(g.Calls, op)
	return g.Errors[op]
}

// Called reports whether op was invoked.
func (g *FakeGit) Called(op string) bool {
	for _, c := range g.Calls {
		if c == op {
			return true
		}
	}
	return false
}

func (g *FakeGit) Dir() string { return g.dir }

func (g *FakeGit) Init(ctx context.Context) error {
	if err := g.record("init"); err != nil {
		return err
	}
	if err := g.fs.MkdirAll(g.dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrGit, "git init failed")
	}
	g.initialized = true
	return nil
}

func (g *FakeGit) IsRepo(ctx context.Context) bool { return g.initialized }

func (g *FakeGit) SetBranch(ctx context.Context, branch string) error {
	if err := g.record("set-branch"); err != nil {
		return err
	}
	g.branch = branch
	return nil
}

func (g *FakeGit) EnsureRemote(ctx context.Context, name, url string) error {
	if err := g.record("remote"); err != nil {
		return err
	}
	if url != "" {
		g.remotes[name] = url
	}
	return nil
}

// RemoteURL returns the URL configured for name.
func (g *FakeGit) RemoteURL(name string) string { return g.remotes[name] }

// Branch returns the branch HEAD points at.
func (g *FakeGit) Branch() string { return g.branch }

func (g *FakeGit) head() *fakeCommit {
	if len(g.history) == 0 {
		return nil
	}
	return g.history[len(g.history)-1]
}

// snapshot reads the working tree.
func (g *FakeGit) snapshot() (map[string]fakeFile, error) {
	files := make(map[string]fakeFile)
	if !filesystem.Exists(g.fs, g.dir) {
		return files, nil
	}
	rels, err := filesystem.WalkFiles(g.fs, g.dir)
	if err != nil {
		return nil, err
	}
	for _, rel := range rels {
		slash := filepath.ToSlash(rel)
		full := filepath.Join(g.dir, rel)
		data, err := g.fs.ReadFile(full)
		if err != nil {
			return nil, err
		}
		info, err := g.fs.Stat(full)
		if err != nil {
			return nil, err
		}
		files[slash] = fakeFile{data: data, exec: info.Mode().Perm()&0100 != 0}
	}
	return files, nil
}

func (g *FakeGit) Add(ctx context.Context, paths ...string) error {
	if err := g.record("add"); err != nil {
		return err
	}
	files, err := g.snapshot()
	if err != nil {
		return errors.Wrap(err, errors.ErrGit, "git add failed")
	}
	g.staged = files
	return nil
}

func (g *FakeGit) Remove(ctx context.Context, paths ...string) error {
	if err := g.record("rm"); err != nil {
		return err
	}
	if g.staged == nil {
		return nil
	}
	for p := range g.staged {
		for _, prefix := range paths {
			if p == prefix || strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/") {
				delete(g.staged, p)
			}
		}
	}
	return nil
}

func (g *FakeGit) HasPendingChanges(ctx context.Context) (bool, error) {
	if err := g.record("status"); err != nil {
		return false, err
	}
	files, err := g.snapshot()
	if err != nil {
		return false, errors.Wrap(err, errors.ErrGit, "git status failed")
	}
	return !sameFiles(files, g.headFiles()), nil
}

func (g *FakeGit) HasStagedChanges(ctx context.Context) (bool, error) {
	if err := g.record("diff"); err != nil {
		return false, err
	}
	return g.staged != nil && !sameFiles(g.staged, g.headFiles()), nil
}

func (g *FakeGit) headFiles() map[string]fakeFile {
	if h := g.head(); h != nil {
		return h.files
	}
	return map[string]fakeFile{}
}

func sameFiles(a, b map[string]fakeFile) bool {
	if len(a) != len(b) {
		return false
	}
	for k, fa := range a {
		fb, ok := b[k]
		if !ok || fa.exec != fb.exec || string(fa.data) != string(fb.data) {
			return false
		}
	}
	return true
}

func (g *FakeGit) Commit(ctx context.Context, message string) (string, error) {
	if err := g.record("commit"); err != nil {
		return "", err
	}
	if g.staged == nil || sameFiles(g.staged, g.headFiles()) {
		return "", errors.New(errors.ErrGit, "nothing to commit, working tree clean")
	}

	g.clock = g.clock.Add(time.Minute)
	c := &fakeCommit{message: message, time: g.clock, files: g.staged}
	if len(g.NextHashes) > 0 {
		c.hash, g.NextHashes = g.NextHashes[0], g.NextHashes[1:]
	} else {
		c.hash = fmt.Sprintf("%x", sha1.Sum([]byte(fmt.Sprintf("%s|%d|%s", message, len(g.history), g.clock))))
	}
	g.history = append(g.history, c)
	g.staged = nil
	return c.hash, nil
}

func (g *FakeGit) Push(ctx context.Context, remote, branch string) error {
	if err := g.record("push"); err != nil {
		return err
	}
	if g.remote == nil {
		return errors.Newf(errors.ErrNetworkFailure, "push to %s failed: no such remote", remote)
	}
	g.remote.branches[branch] = append([]*fakeCommit(nil), g.history...)
	g.tracking[branch] = g.remote.branches[branch]
	return nil
}

func (g *FakeGit) Fetch(ctx context.Context, remote string) error {
	if err := g.record("fetch"); err != nil {
		return err
	}
	if g.remote == nil {
		return nil
	}
	for branch, history := range g.remote.branches {
		g.tracking[branch] = history
	}
	return nil
}

// Pull fast-forwards to the fetched branch and rewrites the working tree.
func (g *FakeGit) Pull(ctx context.Context, remote, branch string) error {
	if err := g.record("pull"); err != nil {
		return err
	}
	if err := g.Fetch(ctx, remote); err != nil {
		return err
	}
	incoming := g.tracking[branch]
	if len(incoming) <= len(g.history) {
		return nil
	}

	old := g.headFiles()
	g.history = append([]*fakeCommit(nil), incoming...)
	for p := range old {
		if _, keep := g.headFiles()[p]; !keep {
			_ = g.fs.Remove(filepath.Join(g.dir, filepath.FromSlash(p)))
		}
	}
	for p, f := range g.headFiles() {
		target := filepath.Join(g.dir, filepath.FromSlash(p))
		if err := g.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return errors.Wrap(err, errors.ErrGit, "pull failed")
		}
		mode := os.FileMode(0644)
		if f.exec {
			mode = 0755
		}
		_ = g.fs.Remove(target)
		if err := g.fs.WriteFile(target, f.data, mode); err != nil {
			return errors.Wrap(err, errors.ErrGit, "pull failed")
		}
	}
	return nil
}

func (g *FakeGit) Log(ctx context.Context, all bool) ([]types.Backup, error) {
	if err := g.record("log"); err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var commits []*fakeCommit
	add := func(history []*fakeCommit) {
		for _, c := range history {
			if !seen[c.hash] {
				seen[c.hash] = true
				commits = append(commits, c)
			}
		}
	}
	add(g.history)
	if all {
		branches := make([]string, 0, len(g.tracking))
		for b := range g.tracking {
			branches = append(branches, b)
		}
		sort.Strings(branches)
		for _, b := range branches {
			add(g.tracking[b])
		}
	}

	sort.SliceStable(commits, func(i, j int) bool { return commits[i].time.After(commits[j].time) })

	backups := make([]types.Backup, len(commits))
	for i, c := range commits {
		backups[i] = types.Backup{Hash: c.hash, Message: c.message, Timestamp: c.time}
	}
	return backups, nil
}

func (g *FakeGit) find(hash string) *fakeCommit {
	for _, history := range append([][]*fakeCommit{g.history}, g.trackingHistories()...) {
		for _, c := range history {
			if c.hash == hash {
				return c
			}
		}
	}
	return nil
}

func (g *FakeGit) trackingHistories() [][]*fakeCommit {
	out := make([][]*fakeCommit, 0, len(g.tracking))
	for _, h := range g.tracking {
		out = append(out, h)
	}
	return out
}

func (g *FakeGit) ResolveRef(ctx context.Context, ref string) (string, bool, error) {
	switch {
	case ref == "HEAD":
		if h := g.head(); h != nil {
			return h.hash, true, nil
		}
		return "", false, nil
	case strings.HasPrefix(ref, "refs/remotes/"+git.DefaultRemote+"/"):
		history := g.tracking[strings.TrimPrefix(ref, "refs/remotes/"+git.DefaultRemote+"/")]
		if len(history) == 0 {
			return "", false, nil
		}
		return history[len(history)-1].hash, true, nil
	}
	if c := g.find(ref); c != nil {
		return c.hash, true, nil
	}
	return "", false, nil
}

// IsAncestor walks every known line of history. Histories are linear,
// so ancestor must appear at or before descendant in one of them.
func (g *FakeGit) IsAncestor(ctx context.Context, ancestor, descendant string) (bool, error) {
	if err := g.record("merge-base"); err != nil {
		return false, err
	}
	if g.find(ancestor) == nil || g.find(descendant) == nil {
		return false, errors.Newf(errors.ErrGit, "unknown commit %s", ancestor+".."+descendant)
	}
	for _, history := range append([][]*fakeCommit{g.history}, g.trackingHistories()...) {
		found := false
		for _, c := range history {
			if c.hash == ancestor {
				found = true
			}
			if c.hash == descendant {
				if found {
					return true, nil
				}
				break
			}
		}
	}
	return false, nil
}

func (g *FakeGit) ListFiles(ctx context.Context, commit, prefix string) ([]git.FileEntry, error) {
	if err := g.record("ls-tree"); err != nil {
		return nil, err
	}
	c := g.find(commit)
	if c == nil {
		return nil, errors.Newf(errors.ErrGit, "unknown commit %s", commit)
	}
	var entries []git.FileEntry
	for p, f := range c.files {
		if prefix == "" || strings.HasPrefix(p, prefix) {
			entries = append(entries, git.FileEntry{Path: p, Executable: f.exec})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (g *FakeGit) ReadFile(ctx context.Context, commit, path string) ([]byte, error) {
	if err := g.record("cat-file"); err != nil {
		return nil, err
	}
	c := g.find(commit)
	if c == nil {
		return nil, errors.Newf(errors.ErrGit, "unknown commit %s", commit)
	}
	f, ok := c.files[path]
	if !ok {
		return nil, errors.Newf(errors.ErrGit, "%s does not exist in %s", path, commit)
	}
	return append([]byte(nil), f.data...), nil
}

// CommitCount returns the number of local commits.
func (g *FakeGit) CommitCount() int { return len(g.history) }

// HeadFile returns a file's content in the local HEAD commit.
func (g *FakeGit) HeadFile(path string) (string, bool) {
	f, ok := g.headFiles()[path]
	return string(f.data), ok
}
