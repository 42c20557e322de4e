package git_test

import (
	"context"
	"os/exec"
)

func bareInit(ctx context.Context, dir string) ([]byte, error) {
	return exec.CommandContext(ctx, "git", "init", "--bare", "-q", "-b", "main", dir).CombinedOutput()
}
