package git

import (
	"context"
	"sort"
	"strings"

	"github.com/arthur-debert/fuxi/pkg/errors"
	"github.com/arthur-debert/fuxi/pkg/types"
)

// LatestReference selects the newest backup on the remote branch.
const LatestReference = "latest"

// MatchReference resolves a hash or unambiguous hash prefix against
// history. A full hash always wins over longer candidates.
func MatchReference(token string, history []types.Backup) (types.Backup, error) {
	needle := strings.ToLower(strings.TrimSpace(token))
	if needle == "" || !isHex(needle) {
		return types.Backup{}, errors.Newf(errors.ErrUnknownReference, "%q is not a backup id", token).
			WithDetail("reference", token)
	}

	seen := make(map[string]bool)
	var matches []types.Backup
	for _, b := range history {
		h := strings.ToLower(b.Hash)
		if seen[h] {
			continue
		}
		seen[h] = true
		if h == needle {
			return b, nil
		}
		if strings.HasPrefix(h, needle) {
			matches = append(matches, b)
		}
	}

	switch len(matches) {
	case 0:
		return types.Backup{}, errors.Newf(errors.ErrUnknownReference, "no backup matches %q", token).
			WithDetail("reference", token)
	case 1:
		return matches[0], nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.ShortHash()
	}
	sort.Strings(candidates)
	return types.Backup{}, errors.Newf(errors.ErrAmbiguousReference,
		"%q matches %d backups, use more characters", token, len(matches)).
		WithDetail("reference", token).
		WithDetail("candidates", candidates)
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// RemoteBranchRef is the remote-tracking ref of branch on DefaultRemote.
func RemoteBranchRef(branch string) string {
	return "refs/remotes/" + DefaultRemote + "/" + branch
}

// Resolve turns a user-supplied backup id into a commit hash. "latest"
// (or an empty id) is the branch tip a pull would leave behind, see
// latest. Anything else is matched against the history of every ref.
func Resolve(ctx context.Context, c Client, branch, token string) (string, error) {
	if token == "" || strings.EqualFold(token, LatestReference) {
		return latest(ctx, c, branch)
	}

	history, err := c.Log(ctx, true)
	if err != nil {
		return "", err
	}
	backup, err := MatchReference(token, history)
	if err != nil {
		return "", err
	}
	return backup.Hash, nil
}

// latest picks between HEAD and the fetched remote branch. Whichever
// contains the other wins, so unpushed local backups are never skipped.
// When the two diverged, the newer commit wins.
func latest(ctx context.Context, c Client, branch string) (string, error) {
	remote, remoteOK, err := c.ResolveRef(ctx, RemoteBranchRef(branch))
	if err != nil {
		return "", err
	}
	head, headOK, err := c.ResolveRef(ctx, "HEAD")
	if err != nil {
		return "", err
	}

	switch {
	case !remoteOK && !headOK:
		return "", errors.New(errors.ErrUnknownReference, "the repository has no backups yet").
			WithDetail("reference", LatestReference)
	case !remoteOK:
		return head, nil
	case !headOK || remote == head:
		return remote, nil
	}

	localAhead, err := c.IsAncestor(ctx, remote, head)
	if err != nil {
		return "", err
	}
	if localAhead {
		return head, nil
	}
	remoteAhead, err := c.IsAncestor(ctx, head, remote)
	if err != nil {
		return "", err
	}
	if remoteAhead {
		return remote, nil
	}

	history, err := c.Log(ctx, true)
	if err != nil {
		return "", err
	}
	for _, b := range history {
		if b.Hash == head || b.Hash == remote {
			return b.Hash, nil
		}
	}
	return remote, nil
}
