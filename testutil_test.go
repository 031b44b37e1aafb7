package mirror

import (
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// initRepo creates a throwaway repository under t.TempDir.
func initRepo(t *testing.T, bare bool) *git.Repository {
	repo, _ := initRepoDir(t, bare)
	return repo
}

// initRepoDir creates a throwaway repository and also returns its path, for
// tests that feed the path into a [Config].
func initRepoDir(t *testing.T, bare bool) (*git.Repository, string) {
	t.Helper()

	dir := t.TempDir()

	repo, err := git.PlainInit(dir, bare)
	if err != nil {
		t.Fatal(err)
	}

	return repo, dir
}

// setUser writes user.name and user.email into the repository local config.
func setUser(t *testing.T, repo *git.Repository, name, email string) {
	t.Helper()

	cfg, err := repo.Config()
	if err != nil {
		t.Fatal(err)
	}
	cfg.User.Name = name
	cfg.User.Email = email

	if err := repo.SetConfig(cfg); err != nil {
		t.Fatal(err)
	}
}

// addCommit records a commit with the current index contents, authored by
// email at when.
func addCommit(t *testing.T, repo *git.Repository, email string, when time.Time, message string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	h, err := wt.Commit(message, &git.CommitOptions{
		AllowEmptyCommits: true,
		Author: &object.Signature{
			Name:  "Test Author",
			Email: email,
			When:  when,
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	return h
}

// addFileCommit writes a file into the worktree, stages it, and commits.
func addFileCommit(t *testing.T, repo *git.Repository, name, content, email string, when time.Time, message string) plumbing.Hash {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	f, err := wt.Filesystem.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	if _, err := wt.Add(name); err != nil {
		t.Fatal(err)
	}

	return addCommit(t, repo, email, when, message)
}

// commitOf loads a commit from the repository.
func commitOf(t *testing.T, repo *git.Repository, h plumbing.Hash) *object.Commit {
	t.Helper()

	c, err := repo.CommitObject(h)
	if err != nil {
		t.Fatal(err)
	}

	return c
}

// headHash resolves the repository head commit hash.
func headHash(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()

	head, err := repo.Head()
	if err != nil {
		t.Fatal(err)
	}

	return head.Hash()
}

func ts(s string) time.Time {
	v, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}

	return v
}
