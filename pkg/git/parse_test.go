package git

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	out := "aaa\x1f1700000000\x1fBackup 2023-11-14 22:13:20\x1e\n" +
		"bbb\x1f1600000000\x1fsubject with \x1f inside\x1e\n"

	backups, err := parseLog(out)
	require.NoError(t, err)
	require.Len(t, backups, 2)

	assert.Equal(t, "aaa", backups[0].Hash)
	assert.Equal(t, time.Unix(1700000000, 0), backups[0].Timestamp)
	assert.Equal(t, "Backup 2023-11-14 22:13:20", backups[0].Message)
	assert.Equal(t, "subject with \x1f inside", backups[1].Message)

	_, err = parseLog("garbage\x1e")
	assert.Error(t, err)

	empty, err := parseLog("")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestParseTree(t *testing.T) {
	out := []byte("100644 blob 1111\tmain/home/u/.zshrc\x00" +
		"100755 blob 2222\tmain/home/u/bin/run me\x00" +
		"160000 commit 3333\tmain/vendor/sub\x00")

	entries, err := parseTree(out)
	require.NoError(t, err)

	assert.Equal(t, []FileEntry{
		{Path: "main/home/u/.zshrc"},
		{Path: "main/home/u/bin/run me", Executable: true},
	}, entries)

	_, err = parseTree([]byte("nonsense\x00"))
	assert.Error(t, err)
}
