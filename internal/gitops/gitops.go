// Package gitops runs the git commands a statements project uses: creating
// the project repository and stamping reports with the ledger revision.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotRepo is returned by Head when dir is not a git repository.
var ErrNotRepo = errors.New("not a git repository")

// Author identifies who commits project changes.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string { return fmt.Sprintf("%s <%s>", a.Name, a.Email) }

// DefaultAuthor commits project scaffolding.
var DefaultAuthor = Author{Name: "Statements", Email: "statements@cleared.dev"}

func git(ctx context.Context, dir string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd
}

// Init initializes a new git repository at dir.
func Init(ctx context.Context, dir string) error {
	if out, err := git(ctx, dir, "init", "--quiet").CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// CommitAll stages all files and creates a commit by author, who is also
// the committer. Returns the short commit hash.
func CommitAll(ctx context.Context, dir, message string, author Author) (string, error) {
	if out, err := git(ctx, dir, "add", "-A").CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	commit := git(ctx, dir, "commit", "--quiet", "-m", message, "--author", author.String())
	commit.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+author.Name,
		"GIT_COMMITTER_EMAIL="+author.Email,
	)
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}
	return Head(ctx, dir)
}

// Head returns the short hash of the commit checked out in dir.
func Head(ctx context.Context, dir string) (string, error) {
	if !IsRepo(dir) {
		return "", fmt.Errorf("%w: %s", ErrNotRepo, dir)
	}
	out, err := git(ctx, dir, "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
